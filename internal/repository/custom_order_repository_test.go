package repository

import (
	"testing"

	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/models"
)

func TestCustomOrderConditionalStatusUpdate(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomOrderRepository(db)
	request := &models.CustomOrderRequest{
		Name:         "Riya",
		Email:        "riya@example.com",
		Requirements: "Bridal lehenga in maroon",
		Status:       constants.CustomOrderStatusNew,
	}
	if err := repo.Create(request); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	affected, err := repo.UpdateStatus(request.ID, constants.CustomOrderStatusNew, constants.CustomOrderStatusInProgress)
	if err != nil || affected != 1 {
		t.Fatalf("first update want 1 row got %d err=%v", affected, err)
	}
	affected, err = repo.UpdateStatus(request.ID, constants.CustomOrderStatusNew, constants.CustomOrderStatusCancelled)
	if err != nil {
		t.Fatalf("stale update failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("stale from-status must not match, got %d rows", affected)
	}

	reloaded, err := repo.GetByID(request.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reloaded.Status != constants.CustomOrderStatusInProgress {
		t.Fatalf("status want in-progress got %s", reloaded.Status)
	}
	if reloaded.Budget != nil {
		t.Fatalf("budget should stay nil")
	}
}

func TestCustomOrderListFilterAndOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewCustomOrderRepository(db)
	budget := models.MustMoney("15000")
	for i, status := range []string{constants.CustomOrderStatusNew, constants.CustomOrderStatusCompleted, constants.CustomOrderStatusNew} {
		request := &models.CustomOrderRequest{
			Name:         "Client",
			Email:        "client@example.com",
			Requirements: "Custom saree",
			Status:       status,
		}
		if i == 0 {
			request.Budget = &budget
		}
		if err := repo.Create(request); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	rows, total, err := repo.List(CustomOrderListFilter{Status: constants.CustomOrderStatusNew})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("want 2 new requests got total=%d len=%d", total, len(rows))
	}
	if rows[0].ID < rows[1].ID {
		t.Fatalf("list should be newest first")
	}
	if rows[1].Budget == nil || rows[1].Budget.String() != "15000.00" {
		t.Fatalf("budget should round-trip, got %v", rows[1].Budget)
	}
}
