package service

import (
	"errors"
	"testing"

	"github.com/silkloom/storefront/internal/models"
)

func TestCartAddItemValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer", "Buyer")
	product := env.createProduct(t, "saree", "100", nil)
	svc := NewCartService(env.cartRepo, env.productRepo)

	for _, quantity := range []int{0, -1} {
		if _, err := svc.AddItem(user.ID, product.ID, quantity); !errors.Is(err, ErrCartQuantityInvalid) {
			t.Fatalf("quantity %d want ErrCartQuantityInvalid got %v", quantity, err)
		}
	}
	if _, err := svc.AddItem(user.ID, 999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product want ErrProductNotFound got %v", err)
	}
}

func TestCartAddItemAccumulates(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer", "Buyer")
	product := env.createProduct(t, "saree", "100", nil)
	svc := NewCartService(env.cartRepo, env.productRepo)

	if _, err := svc.AddItem(user.ID, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	item, err := svc.AddItem(user.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if item.Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", item.Quantity)
	}
	if item.Product == nil || item.Product.ID != product.ID {
		t.Fatalf("returned item should carry product")
	}
}

func TestCartOwnershipRules(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", "Owner")
	other := env.createUser(t, "other", "Other")
	product := env.createProduct(t, "saree", "100", nil)
	svc := NewCartService(env.cartRepo, env.productRepo)

	item, err := svc.AddItem(owner.ID, product.ID, 1)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := svc.SetQuantity(other.ID, item.ID, 4); !errors.Is(err, ErrCartItemForbidden) {
		t.Fatalf("foreign set want ErrCartItemForbidden got %v", err)
	}
	if err := svc.Remove(other.ID, item.ID); !errors.Is(err, ErrCartItemForbidden) {
		t.Fatalf("foreign remove want ErrCartItemForbidden got %v", err)
	}
	if _, err := svc.SetQuantity(owner.ID, 999, 4); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("missing set want ErrCartItemNotFound got %v", err)
	}
	if _, err := svc.SetQuantity(owner.ID, item.ID, 0); !errors.Is(err, ErrCartQuantityInvalid) {
		t.Fatalf("zero set want ErrCartQuantityInvalid got %v", err)
	}

	updated, err := svc.SetQuantity(owner.ID, item.ID, 4)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if updated.Quantity != 4 {
		t.Fatalf("quantity want 4 got %d", updated.Quantity)
	}
	if err := svc.Remove(owner.ID, item.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Remove(owner.ID, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("second remove want ErrCartItemNotFound got %v", err)
	}
}

func TestCartSummaryUsesLivePrice(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer", "Buyer")
	saree := env.createProduct(t, "saree", "100.50", nil)
	dupatta := env.createProduct(t, "dupatta", "20", nil)
	svc := NewCartService(env.cartRepo, env.productRepo)

	if _, err := svc.AddItem(user.ID, saree.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddItem(user.ID, dupatta.ID, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := env.db.Model(&models.Product{}).Where("id = ?", dupatta.ID).Update("price", models.MustMoney("25")).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	summary, err := svc.Summary(user.ID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalItems != 5 {
		t.Fatalf("total items want 5 got %d", summary.TotalItems)
	}
	if summary.Subtotal.String() != "276.00" {
		t.Fatalf("subtotal want 276.00 got %s", summary.Subtotal.String())
	}

	if err := svc.Clear(user.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	summary, err = svc.Summary(user.ID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(summary.Items) != 0 || summary.TotalItems != 0 || summary.Subtotal.String() != "0.00" {
		t.Fatalf("empty cart summary unexpected: %+v", summary)
	}
}

func TestSummarizeCartSkipsMissingProducts(t *testing.T) {
	price := models.MustMoney("10")
	summary := SummarizeCart([]models.CartItem{
		{ID: 1, Quantity: 2, Product: &models.Product{Price: price}},
		{ID: 2, Quantity: 7},
	})
	if len(summary.Items) != 1 || summary.TotalItems != 2 || summary.Subtotal.String() != "20.00" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
