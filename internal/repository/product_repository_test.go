package repository

import (
	"testing"

	"github.com/silkloom/storefront/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) (*models.Category, *models.Category) {
	t.Helper()
	sarees := createTestCategory(t, db, "sarees")
	lehengas := createTestCategory(t, db, "lehengas")
	createTestProduct(t, db, models.Product{
		Name: "Royal Ghazi Silk Saree", Slug: "royal-ghazi-silk-saree",
		Description: "Handwoven saree", Price: models.MustMoney("25000"),
		CategoryID: &sarees.ID, Fabric: "Ghazi Silk", WorkDetails: "Gotta Patti, Jardozi",
		InStock: true, Featured: true,
	})
	createTestProduct(t, db, models.Product{
		Name: "Pink Bandni Lehenga", Slug: "pink-bandni-lehenga",
		Description: "Bright lehenga with mirror work", Price: models.MustMoney("35000"),
		CategoryID: &lehengas.ID, Fabric: "Bandni", WorkDetails: "Mirror Work, Golden Embroidery",
		InStock: true, Featured: true,
	})
	createTestProduct(t, db, models.Product{
		Name: "Casual Cotton Saree", Slug: "casual-cotton-saree",
		Description: "100% cotton for daily wear", Price: models.MustMoney("5000"),
		CategoryID: &sarees.ID, Fabric: "Cotton", WorkDetails: "Block Print",
		InStock: false, Featured: false,
	})
	return sarees, lehengas
}

func productSlugs(products []models.Product) []string {
	slugs := make([]string, 0, len(products))
	for _, p := range products {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}

func TestProductListNoFilterKeepsInsertionOrder(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewProductRepository(db)

	rows, total, err := repo.List(ProductListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("want 3 products got total=%d len=%d", total, len(rows))
	}
	want := []string{"royal-ghazi-silk-saree", "pink-bandni-lehenga", "casual-cotton-saree"}
	got := productSlugs(rows)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order want %v got %v", want, got)
		}
	}
}

func TestProductListCombinesFilters(t *testing.T) {
	db := openTestDB(t)
	sarees, _ := seedCatalog(t, db)
	repo := NewProductRepository(db)
	featured := true

	rows, _, err := repo.List(ProductListFilter{CategoryID: &sarees.ID, Featured: &featured})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Slug != "royal-ghazi-silk-saree" {
		t.Fatalf("category+featured want royal saree got %v", productSlugs(rows))
	}

	notFeatured := false
	rows, _, err = repo.List(ProductListFilter{Featured: &notFeatured})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Slug != "casual-cotton-saree" {
		t.Fatalf("featured=false want cotton saree got %v", productSlugs(rows))
	}
}

func TestProductListPriceRangeInclusive(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewProductRepository(db)
	minPrice := decimal.NewFromInt(25000)
	maxPrice := decimal.NewFromInt(35000)

	rows, _, err := repo.List(ProductListFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("price range want 2 got %v", productSlugs(rows))
	}

	inverted := decimal.NewFromInt(1000)
	rows, _, err = repo.List(ProductListFilter{MinPrice: &minPrice, MaxPrice: &inverted})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("inverted range want empty got %v", productSlugs(rows))
	}
}

func TestProductListSearchAcrossColumns(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewProductRepository(db)

	cases := map[string][]string{
		"SILK":        {"royal-ghazi-silk-saree"},
		"mirror":      {"pink-bandni-lehenga"},
		"block print": {"casual-cotton-saree"},
		"saree":       {"royal-ghazi-silk-saree", "casual-cotton-saree"},
		"100%":        {"casual-cotton-saree"},
		"%":           {"casual-cotton-saree"},
		"_":           {},
	}
	for search, want := range cases {
		rows, _, err := repo.List(ProductListFilter{Search: search})
		if err != nil {
			t.Fatalf("search %q failed: %v", search, err)
		}
		got := productSlugs(rows)
		if len(got) != len(want) {
			t.Fatalf("search %q want %v got %v", search, want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("search %q want %v got %v", search, want, got)
			}
		}
	}
}

func TestProductListFacetsAndStock(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewProductRepository(db)

	rows, _, err := repo.List(ProductListFilter{Fabric: "Bandni"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Slug != "pink-bandni-lehenga" {
		t.Fatalf("fabric facet want bandni got %v", productSlugs(rows))
	}

	rows, _, err = repo.List(ProductListFilter{Fabric: "Silk"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("fabric facet is exact match, got %v", productSlugs(rows))
	}

	inStock := false
	rows, _, err = repo.List(ProductListFilter{InStock: &inStock, WorkDetails: "Block Print"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Slug != "casual-cotton-saree" {
		t.Fatalf("stock+work details want cotton saree got %v", productSlugs(rows))
	}
}

func TestProductSoftDeleteHidesAndKeepsSlugReserved(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewProductRepository(db)

	product, err := repo.GetBySlug("pink-bandni-lehenga")
	if err != nil || product == nil {
		t.Fatalf("get by slug failed: %v %v", product, err)
	}
	if product.Category == nil || product.Category.Slug != "lehengas" {
		t.Fatalf("category should be preloaded")
	}
	if err := repo.Delete(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	deleted, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if deleted != nil {
		t.Fatalf("deleted product should not be returned")
	}
	count, err := repo.CountBySlug("pink-bandni-lehenga", nil)
	if err != nil {
		t.Fatalf("count by slug failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("deleted slug should stay reserved, count=%d", count)
	}
}

func TestProductListPagination(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)
	repo := NewProductRepository(db)

	rows, total, err := repo.List(ProductListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(rows) != 1 || rows[0].Slug != "casual-cotton-saree" {
		t.Fatalf("page 2 want cotton saree, total=%d got %v", total, productSlugs(rows))
	}
}
