package service

import (
	"errors"
	"testing"

	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/repository"
)

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer", "Buyer")
	svc := NewOrderService(env.orderRepo, env.cartRepo, env.queueClient)

	if _, err := svc.Checkout(CheckoutInput{UserID: user.ID}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("empty cart want ErrCartEmpty got %v", err)
	}
}

func TestCheckoutSnapshotsPricesAndClearsCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "buyer", "Buyer")
	saree := env.createProduct(t, "saree", "1500", nil)
	stole := env.createProduct(t, "stole", "250.25", nil)
	removed := env.createProduct(t, "removed", "99", nil)
	cartSvc := NewCartService(env.cartRepo, env.productRepo)
	svc := NewOrderService(env.orderRepo, env.cartRepo, env.queueClient)

	for _, add := range []struct {
		productID uint
		quantity  int
	}{{saree.ID, 1}, {stole.ID, 2}, {removed.ID, 1}} {
		if _, err := cartSvc.AddItem(user.ID, add.productID, add.quantity); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	if err := env.db.Delete(&models.Product{}, removed.ID).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	order, err := svc.Checkout(CheckoutInput{UserID: user.ID, ShippingAddress: " 12 MG Road "})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", order.Status)
	}
	if order.TotalAmount.String() != "2000.50" {
		t.Fatalf("total want 2000.50 got %s", order.TotalAmount.String())
	}
	if len(order.Items) != 2 {
		t.Fatalf("order items want 2 got %d", len(order.Items))
	}
	if order.PaymentMethod != defaultPaymentMethod || order.ShippingAddress != "12 MG Road" {
		t.Fatalf("unexpected order fields: %+v", order)
	}

	if err := env.db.Model(&models.Product{}).Where("id = ?", saree.ID).Update("price", models.MustMoney("9999")).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	stored, err := svc.GetForUser(user.ID, order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if stored.Items[0].Price.String() != "1500.00" {
		t.Fatalf("order item price should be a snapshot, got %s", stored.Items[0].Price.String())
	}

	items, err := cartSvc.List(user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart should be cleared, got %d items", len(items))
	}
}

func TestOrderVisibilityAndStatus(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", "Owner")
	other := env.createUser(t, "other", "Other")
	product := env.createProduct(t, "saree", "100", nil)
	cartSvc := NewCartService(env.cartRepo, env.productRepo)
	svc := NewOrderService(env.orderRepo, env.cartRepo, env.queueClient)

	if _, err := cartSvc.AddItem(owner.ID, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := svc.Checkout(CheckoutInput{UserID: owner.ID})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := svc.GetForUser(other.ID, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign order want ErrOrderNotFound got %v", err)
	}
	orders, total, err := svc.ListByUser(owner.ID, 1, 10)
	if err != nil || total != 1 || len(orders) != 1 {
		t.Fatalf("owner orders want 1 got %d (%v)", total, err)
	}

	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("pending -> delivered want ErrOrderTransitionInvalid got %v", err)
	}
	if _, err := svc.UpdateStatus(order.ID, "refunded"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("unknown status want ErrOrderStatusInvalid got %v", err)
	}
	for _, status := range []string{constants.OrderStatusProcessing, constants.OrderStatusShipped, constants.OrderStatusDelivered} {
		updated, err := svc.UpdateStatus(order.ID, status)
		if err != nil {
			t.Fatalf("update to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("status want %s got %s", status, updated.Status)
		}
	}
	if _, err := svc.UpdateStatus(order.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("delivered -> cancelled want ErrOrderTransitionInvalid got %v", err)
	}

	delivered, total, err := svc.ListAdmin(repository.OrderListFilter{Status: constants.OrderStatusDelivered})
	if err != nil || total != 1 || delivered[0].ID != order.ID {
		t.Fatalf("admin status filter unexpected: %v total=%d", err, total)
	}
}
