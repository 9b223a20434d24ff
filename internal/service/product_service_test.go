package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/silkloom/storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

func TestListPublicResolvesCategorySlug(t *testing.T) {
	env := newTestEnv(t)
	sarees := env.createCategory(t, "Sarees", "sarees")
	suits := env.createCategory(t, "Suits", "suits")
	env.createProduct(t, "banarasi", "25000", &sarees.ID)
	env.createProduct(t, "anarkali", "18000", &suits.ID)
	env.createProduct(t, "kanjivaram", "32000", &sarees.ID)
	svc := NewProductService(env.productRepo, env.categoryRepo, 0)
	ctx := context.Background()

	products, err := svc.ListPublic(ctx, ProductQuery{CategorySlug: "sarees"})
	if err != nil {
		t.Fatalf("list by slug failed: %v", err)
	}
	if len(products) != 2 || products[0].Slug != "banarasi" || products[1].Slug != "kanjivaram" {
		t.Fatalf("unexpected products for slug: %+v", products)
	}
	if products[0].Category == nil || products[0].Category.Slug != "sarees" {
		t.Fatalf("category should be preloaded")
	}

	products, err = svc.ListPublic(ctx, ProductQuery{CategorySlug: "sarees", CategoryID: &suits.ID})
	if err != nil {
		t.Fatalf("list by id and slug failed: %v", err)
	}
	if len(products) != 1 || products[0].Slug != "anarkali" {
		t.Fatalf("category id should win over slug: %+v", products)
	}

	products, err = svc.ListPublic(ctx, ProductQuery{CategorySlug: "lehengas"})
	if err != nil {
		t.Fatalf("unknown slug should not error: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Fatalf("unknown slug want empty list got %+v", products)
	}
}

func TestListPublicPriceRange(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "a", "100", nil)
	env.createProduct(t, "b", "200", nil)
	env.createProduct(t, "c", "300", nil)
	svc := NewProductService(env.productRepo, env.categoryRepo, 0)

	minPrice := decimal.NewFromInt(200)
	maxPrice := decimal.NewFromInt(300)
	products, err := svc.ListPublic(context.Background(), ProductQuery{MinPrice: &minPrice, MaxPrice: &maxPrice})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 2 || products[0].Slug != "b" || products[1].Slug != "c" {
		t.Fatalf("inclusive range want [b c] got %+v", products)
	}
}

func TestProductCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	env.createProduct(t, "taken", "100", nil)
	svc := NewProductService(env.productRepo, env.categoryRepo, 0)
	ctx := context.Background()
	missingCategory := uint(999)

	cases := []struct {
		name  string
		input ProductInput
		want  error
	}{
		{"zero price", ProductInput{Name: "A", Slug: "a", Price: decimal.Zero}, ErrProductPriceInvalid},
		{"negative price", ProductInput{Name: "A", Slug: "a", Price: decimal.NewFromInt(-5)}, ErrProductPriceInvalid},
		{"missing name", ProductInput{Slug: "a", Price: decimal.NewFromInt(5)}, ErrProductInvalid},
		{"slug exists", ProductInput{Name: "A", Slug: " Taken ", Price: decimal.NewFromInt(5)}, ErrSlugExists},
		{"missing category", ProductInput{Name: "A", Slug: "a", Price: decimal.NewFromInt(5), CategoryID: &missingCategory}, ErrCategoryNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}
}

func TestProductCreateDefaultsInStock(t *testing.T) {
	env := newTestEnv(t)
	svc := NewProductService(env.productRepo, env.categoryRepo, 0)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{
		Name:      "Chikankari Kurta",
		Slug:      "Chikankari-Kurta",
		Price:     decimal.RequireFromString("4500.499"),
		ImageURLs: []string{" /a.jpg ", "", "/b.jpg"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !created.InStock || created.Featured {
		t.Fatalf("defaults want in_stock=true featured=false got %+v", created)
	}
	if created.Slug != "chikankari-kurta" {
		t.Fatalf("slug should be lowercased, got %s", created.Slug)
	}
	if created.Price.String() != "4500.50" {
		t.Fatalf("price want 4500.50 got %s", created.Price.String())
	}
	if len(created.ImageURLs) != 2 || created.ImageURLs[0] != "/a.jpg" {
		t.Fatalf("image urls should be compacted in order: %+v", created.ImageURLs)
	}

	outOfStock := false
	updated, err := svc.Update(ctx, created.ID, ProductInput{
		Name:    "Chikankari Kurta",
		Slug:    "chikankari-kurta",
		Price:   decimal.NewFromInt(4000),
		InStock: &outOfStock,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.InStock {
		t.Fatalf("explicit false in_stock should persist")
	}
}

func TestProductDeleteOrphansCartRows(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer", "Buyer")
	product := env.createProduct(t, "saree", "100", nil)
	svc := NewProductService(env.productRepo, env.categoryRepo, 0)
	cartSvc := NewCartService(env.cartRepo, env.productRepo)

	if _, err := cartSvc.AddItem(user.ID, product.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.Delete(context.Background(), product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetPublicBySlug("saree"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("deleted product want not found got %v", err)
	}
	items, err := cartSvc.List(user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("orphan cart rows should be dropped, got %d", len(items))
	}
	var raw int64
	env.db.Model(&models.CartItem{}).Count(&raw)
	if raw != 1 {
		t.Fatalf("orphan row should remain stored, got %d", raw)
	}
}

func TestResolveByIDOrSlug(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, "phulkari-dupatta", "100", nil)
	svc := NewProductService(env.productRepo, env.categoryRepo, 0)

	byID, err := svc.Resolve("1")
	if err != nil || byID.ID != product.ID {
		t.Fatalf("resolve by id failed: %v %+v", err, byID)
	}
	bySlug, err := svc.Resolve("phulkari-dupatta")
	if err != nil || bySlug.ID != product.ID {
		t.Fatalf("resolve by slug failed: %v %+v", err, bySlug)
	}
	if _, err := svc.Resolve("404"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown id want not found got %v", err)
	}
}

func TestCategoryDeleteInUse(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Sarees", "sarees")
	product := env.createProduct(t, "saree", "100", &category.ID)
	productSvc := NewProductService(env.productRepo, env.categoryRepo, 0)
	svc := NewCategoryService(env.categoryRepo, env.productRepo, 0)
	ctx := context.Background()

	if err := svc.Delete(ctx, category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("delete in-use category want ErrCategoryInUse got %v", err)
	}
	if err := productSvc.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := svc.Delete(ctx, category.ID); err != nil {
		t.Fatalf("delete empty category failed: %v", err)
	}
	if _, err := svc.GetBySlug("sarees"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("deleted category want not found got %v", err)
	}
}

func TestCategoryCreateAndUpdateSlugConflict(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCategoryService(env.categoryRepo, env.productRepo, 0)
	ctx := context.Background()

	first, err := svc.Create(ctx, CategoryInput{Name: "Sarees", Slug: "sarees"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := svc.Create(ctx, CategoryInput{Name: "Suits", Slug: "suits"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, CategoryInput{Name: "Dup", Slug: "SAREES"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("duplicate slug want ErrSlugExists got %v", err)
	}
	if _, err := svc.Update(ctx, second.ID, CategoryInput{Name: "Suits", Slug: "sarees"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("update to taken slug want ErrSlugExists got %v", err)
	}
	if _, err := svc.Update(ctx, first.ID, CategoryInput{Name: "Silk Sarees", Slug: "sarees"}); err != nil {
		t.Fatalf("update keeping own slug failed: %v", err)
	}
	list, err := svc.List(ctx)
	if err != nil || len(list) != 2 || list[0].Name != "Silk Sarees" {
		t.Fatalf("unexpected category list: %v %+v", err, list)
	}
}

func TestExportProducts(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Sarees", "sarees")
	env.createProduct(t, "banarasi", "25000", &category.ID)
	env.createProduct(t, "anarkali", "18000.5", nil)
	svc := NewProductService(env.productRepo, env.categoryRepo, 0)

	var buf bytes.Buffer
	if err := svc.ExportProducts(&buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	file, err := xlsx.OpenBinary(buf.Bytes())
	if err != nil {
		t.Fatalf("open exported workbook failed: %v", err)
	}
	sheet, ok := file.Sheet[productExportSheet]
	if !ok {
		t.Fatalf("sheet %s missing", productExportSheet)
	}
	if len(sheet.Rows) != 3 {
		t.Fatalf("rows want 3 got %d", len(sheet.Rows))
	}
	if got := sheet.Rows[1].Cells[3].Value; got != "Sarees" {
		t.Fatalf("category cell want Sarees got %s", got)
	}
	if got := sheet.Rows[2].Cells[4].Value; got != "18000.50" {
		t.Fatalf("price cell want 18000.50 got %s", got)
	}
}
