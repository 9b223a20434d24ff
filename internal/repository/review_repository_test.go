package repository

import (
	"sync"
	"testing"

	"github.com/silkloom/storefront/internal/models"
)

func TestReviewUpsertOverwritesAndKeepsHelpfulCount(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "reviewer", "Asha")
	product := createTestProduct(t, db, models.Product{Name: "Saree", Slug: "saree"})
	repo := NewReviewRepository(db)

	first, created, err := repo.Upsert(&models.Review{UserID: user.ID, ProductID: product.ID, Rating: 3, Comment: "Nice fabric"})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if !created {
		t.Fatalf("first upsert should report created")
	}
	if first.User == nil || first.User.Name != "Asha" {
		t.Fatalf("upsert should load the author, got %+v", first.User)
	}
	if first.HelpfulCount != 0 {
		t.Fatalf("new review helpful count want 0 got %d", first.HelpfulCount)
	}
	if _, err := repo.IncrementHelpful(first.ID); err != nil {
		t.Fatalf("increment failed: %v", err)
	}

	second, created, err := repo.Upsert(&models.Review{UserID: user.ID, ProductID: product.ID, Rating: 5, Comment: "Loved it after wearing"})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if created {
		t.Fatalf("second upsert should report an update")
	}
	if second.ID != first.ID {
		t.Fatalf("upsert should keep row %d got %d", first.ID, second.ID)
	}
	if second.Rating != 5 || second.Comment != "Loved it after wearing" {
		t.Fatalf("rating/comment should be overwritten, got %+v", second)
	}
	if second.HelpfulCount != 1 {
		t.Fatalf("helpful count should be preserved, got %d", second.HelpfulCount)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at should be preserved, want %v got %v", first.CreatedAt, second.CreatedAt)
	}
}

func TestReviewIncrementHelpfulConcurrent(t *testing.T) {
	db := openTestDB(t)
	user := createTestUser(t, db, "reviewer", "Asha")
	product := createTestProduct(t, db, models.Product{Name: "Saree", Slug: "saree"})
	repo := NewReviewRepository(db)
	review, _, err := repo.Upsert(&models.Review{UserID: user.ID, ProductID: product.ID, Rating: 4, Comment: "Good"})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.IncrementHelpful(review.ID)
		}()
	}
	wg.Wait()

	reloaded, err := repo.GetByID(review.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if reloaded.HelpfulCount != workers {
		t.Fatalf("helpful count want %d got %d", workers, reloaded.HelpfulCount)
	}
}

func TestReviewIncrementHelpfulMissing(t *testing.T) {
	db := openTestDB(t)
	repo := NewReviewRepository(db)
	affected, err := repo.IncrementHelpful(404)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("missing review should affect 0 rows, got %d", affected)
	}
}

func TestReviewListNewestFirstWithAuthor(t *testing.T) {
	db := openTestDB(t)
	first := createTestUser(t, db, "first", "")
	second := createTestUser(t, db, "second", "Meera")
	gone := createTestUser(t, db, "gone", "Gone")
	product := createTestProduct(t, db, models.Product{Name: "Saree", Slug: "saree"})
	repo := NewReviewRepository(db)

	for _, userID := range []uint{first.ID, second.ID, gone.ID} {
		if _, _, err := repo.Upsert(&models.Review{UserID: userID, ProductID: product.ID, Rating: 5, Comment: "Lovely"}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}
	if err := db.Delete(&models.User{}, gone.ID).Error; err != nil {
		t.Fatalf("delete user failed: %v", err)
	}

	reviews, err := repo.ListByProduct(product.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reviews) != 3 {
		t.Fatalf("want 3 reviews got %d", len(reviews))
	}
	if reviews[0].UserID != gone.ID || reviews[2].UserID != first.ID {
		t.Fatalf("reviews should be newest first, got %d..%d", reviews[0].UserID, reviews[2].UserID)
	}
	if reviews[0].User != nil {
		t.Fatalf("deleted author should not be preloaded")
	}
	if reviews[1].User == nil || reviews[1].User.DisplayName() != "Meera" {
		t.Fatalf("author should be preloaded, got %+v", reviews[1].User)
	}
	if reviews[2].User.DisplayName() != "first" {
		t.Fatalf("display name should fall back to username, got %s", reviews[2].User.DisplayName())
	}
}

func TestReviewSummaryByProduct(t *testing.T) {
	db := openTestDB(t)
	product := createTestProduct(t, db, models.Product{Name: "Saree", Slug: "saree"})
	repo := NewReviewRepository(db)

	empty, err := repo.SummaryByProduct(product.ID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if empty.Count != 0 || empty.RatingSum != 0 {
		t.Fatalf("empty summary want zero got %+v", empty)
	}

	for i, rating := range []int{5, 5, 4} {
		user := createTestUser(t, db, "u"+string(rune('a'+i)), "")
		if _, _, err := repo.Upsert(&models.Review{UserID: user.ID, ProductID: product.ID, Rating: rating, Comment: "Great"}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}
	summary, err := repo.SummaryByProduct(product.ID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Count != 3 || summary.RatingSum != 14 {
		t.Fatalf("summary want count=3 sum=14 got %+v", summary)
	}
}
