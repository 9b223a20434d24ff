package service

import (
	"testing"

	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/queue"
	"github.com/silkloom/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// testEnv 基于内存 sqlite 的服务测试环境
type testEnv struct {
	db           *gorm.DB
	productRepo  *repository.GormProductRepository
	categoryRepo *repository.GormCategoryRepository
	cartRepo     *repository.GormCartRepository
	reviewRepo   *repository.GormReviewRepository
	orderRepo    *repository.GormOrderRepository
	customRepo   *repository.GormCustomOrderRepository
	userRepo     *repository.GormUserRepository
	queueClient  *queue.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	previous := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = previous
		_ = sqlDB.Close()
	})

	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}

	return &testEnv{
		db:           db,
		productRepo:  repository.NewProductRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		cartRepo:     repository.NewCartRepository(db),
		reviewRepo:   repository.NewReviewRepository(db),
		orderRepo:    repository.NewOrderRepository(db),
		customRepo:   repository.NewCustomOrderRepository(db),
		userRepo:     repository.NewUserRepository(db),
		queueClient:  queueClient,
	}
}

func (e *testEnv) createUser(t *testing.T, username, name string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Name: name, PasswordHash: "x"}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (e *testEnv) createCategory(t *testing.T, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug}
	if err := e.db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func (e *testEnv) createProduct(t *testing.T, slug, price string, categoryID *uint) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       slug,
		Slug:       slug,
		Price:      models.MustMoney(price),
		CategoryID: categoryID,
		InStock:    true,
	}
	if err := e.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
