package repository

import (
	"sync"
	"testing"

	"github.com/silkloom/storefront/internal/models"
)

func TestCartAddQuantityUpsertsAndIncrements(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "buyer", "Buyer")
	product := createTestProduct(t, db, models.Product{Name: "Saree", Slug: "saree", Price: models.MustMoney("25000")})
	repo := NewCartRepository(db)

	first, err := repo.AddQuantity(user.ID, product.ID, 1)
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if first.Quantity != 1 {
		t.Fatalf("first add quantity want 1 got %d", first.Quantity)
	}
	second, err := repo.AddQuantity(user.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert should reuse row %d got %d", first.ID, second.ID)
	}
	if second.Quantity != 3 {
		t.Fatalf("quantity want 3 got %d", second.Quantity)
	}

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Fatalf("cart rows want 1 got %d", count)
	}
}

func TestCartAddQuantityConcurrent(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "buyer", "Buyer")
	product := createTestProduct(t, db, models.Product{Name: "Saree", Slug: "saree"})
	repo := NewCartRepository(db)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AddQuantity(user.ID, product.ID, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent add failed: %v", err)
	}

	items, err := repo.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != workers {
		t.Fatalf("want single row with quantity %d got %+v", workers, items)
	}
}

func TestCartListDropsOrphanedRows(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "buyer", "Buyer")
	kept := createTestProduct(t, db, models.Product{Name: "Kept", Slug: "kept", Price: models.MustMoney("10")})
	removed := createTestProduct(t, db, models.Product{Name: "Removed", Slug: "removed", Price: models.MustMoney("20")})
	repo := NewCartRepository(db)

	if _, err := repo.AddQuantity(user.ID, kept.ID, 1); err != nil {
		t.Fatalf("add kept failed: %v", err)
	}
	if _, err := repo.AddQuantity(user.ID, removed.ID, 1); err != nil {
		t.Fatalf("add removed failed: %v", err)
	}
	if err := NewProductRepository(db).Delete(removed.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := db.Create(&models.CartItem{UserID: user.ID, ProductID: 9999, Quantity: 1}).Error; err != nil {
		t.Fatalf("create dangling row failed: %v", err)
	}

	items, err := repo.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != kept.ID {
		t.Fatalf("only live product should remain, got %+v", items)
	}
	if items[0].Product == nil || items[0].Product.Price.String() != "10.00" {
		t.Fatalf("live product should be joined, got %+v", items[0].Product)
	}

	var stored int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&stored)
	if stored != 3 {
		t.Fatalf("orphaned rows are not cleaned up, want 3 got %d", stored)
	}
}

func TestCartLivePriceFollowsProduct(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "buyer", "Buyer")
	product := createTestProduct(t, db, models.Product{Name: "Saree", Slug: "saree", Price: models.MustMoney("100")})
	repo := NewCartRepository(db)
	if _, err := repo.AddQuantity(user.ID, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", models.MustMoney("80")).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	items, err := repo.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if got := items[0].Product.Price.String(); got != "80.00" {
		t.Fatalf("price want live 80.00 got %s", got)
	}
}

func TestCartSetQuantityDeleteAndClear(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "buyer", "Buyer")
	other := createTestUser(t, db, "other", "Other")
	a := createTestProduct(t, db, models.Product{Name: "A", Slug: "a"})
	b := createTestProduct(t, db, models.Product{Name: "B", Slug: "b"})
	repo := NewCartRepository(db)

	itemA, _ := repo.AddQuantity(user.ID, a.ID, 1)
	if _, err := repo.AddQuantity(user.ID, b.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := repo.AddQuantity(other.ID, a.ID, 4); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := repo.SetQuantity(itemA.ID, 7); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	reloaded, err := repo.GetByID(itemA.ID)
	if err != nil || reloaded == nil || reloaded.Quantity != 7 {
		t.Fatalf("quantity want 7 got %+v err=%v", reloaded, err)
	}

	if err := repo.Delete(itemA.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if missing, _ := repo.GetByID(itemA.ID); missing != nil {
		t.Fatalf("deleted row should be gone")
	}

	if err := repo.ClearByUser(user.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, _ := repo.ListByUser(user.ID)
	if len(items) != 0 {
		t.Fatalf("cart should be empty, got %d", len(items))
	}
	otherItems, _ := repo.ListByUser(other.ID)
	if len(otherItems) != 1 || otherItems[0].Quantity != 4 {
		t.Fatalf("other user's cart must be untouched, got %+v", otherItems)
	}
}
