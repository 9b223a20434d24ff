package main

import (
	"github.com/silkloom/storefront/internal/app"
	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if err := app.PrepareDatabase(cfg); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		categories, err := seedCategories(tx)
		if err != nil {
			return err
		}
		if err := seedProducts(tx, categories); err != nil {
			return err
		}
		return seedUsers(tx)
	})
	if err != nil {
		stdLog.Fatalf("写入示例数据失败: %v", err)
	}
	logger.Infow("seed_completed")
}

func seedCategories(tx *gorm.DB) (map[string]uint, error) {
	categories := []models.Category{
		{Name: "Sarees", Slug: "sarees", Description: "Handwoven silk sarees"},
		{Name: "Dupattas", Slug: "dupattas", Description: "Light silk dupattas and stoles"},
		{Name: "Fabrics", Slug: "fabrics", Description: "Silk yardage for custom tailoring"},
	}
	ids := make(map[string]uint, len(categories))
	for _, category := range categories {
		row := category
		if err := tx.Where("slug = ?", row.Slug).FirstOrCreate(&row).Error; err != nil {
			return nil, err
		}
		ids[row.Slug] = row.ID
	}
	return ids, nil
}

func seedProducts(tx *gorm.DB, categories map[string]uint) error {
	ptr := func(slug string) *uint {
		id := categories[slug]
		return &id
	}
	products := []models.Product{
		{
			Name:        "Kanchipuram Temple Border Saree",
			Slug:        "kanchipuram-temple-border-saree",
			Description: "Pure mulberry silk with a contrast temple border.",
			Price:       models.MustMoney("18500"),
			CategoryID:  ptr("sarees"),
			ImageURLs:   models.StringArray{"/images/kanchipuram-1.jpg", "/images/kanchipuram-2.jpg"},
			Features:    models.StringArray{"Pure zari", "Handloom mark certified"},
			Fabric:      "Mulberry Silk",
			WorkDetails: "Zari Weaving",
			InStock:     true,
			Featured:    true,
		},
		{
			Name:        "Banarasi Brocade Saree",
			Slug:        "banarasi-brocade-saree",
			Description: "Dense floral brocade woven in Varanasi.",
			Price:       models.MustMoney("22400"),
			CategoryID:  ptr("sarees"),
			ImageURLs:   models.StringArray{"/images/banarasi-1.jpg"},
			Features:    models.StringArray{"Kadwa technique"},
			Fabric:      "Katan Silk",
			WorkDetails: "Brocade",
			InStock:     true,
		},
		{
			Name:        "Tussar Hand Painted Dupatta",
			Slug:        "tussar-hand-painted-dupatta",
			Description: "Wild tussar silk painted by hand.",
			Price:       models.MustMoney("3200"),
			CategoryID:  ptr("dupattas"),
			ImageURLs:   models.StringArray{"/images/tussar-dupatta.jpg"},
			Fabric:      "Tussar Silk",
			WorkDetails: "Hand Painted",
			InStock:     false,
		},
		{
			Name:        "Raw Silk Yardage",
			Slug:        "raw-silk-yardage",
			Description: "Slubbed raw silk sold per metre.",
			Price:       models.MustMoney("950"),
			CategoryID:  ptr("fabrics"),
			Fabric:      "Raw Silk",
			InStock:     true,
			Featured:    true,
		},
	}
	for _, product := range products {
		row := product
		if err := tx.Where("slug = ?", row.Slug).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(tx *gorm.DB) error {
	users := []struct {
		username string
		name     string
		email    string
		password string
		isAdmin  bool
	}{
		{username: "admin", name: "Administrator", email: "admin@example.com", password: "Admin12345", isAdmin: true},
		{username: "meera", name: "Meera", email: "meera@example.com", password: "Customer123"},
	}
	for _, item := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(item.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Username:     item.username,
			Name:         item.name,
			Email:        item.email,
			PasswordHash: string(hash),
			IsAdmin:      item.isAdmin,
		}
		if err := tx.Where("username = ?", user.Username).FirstOrCreate(&user).Error; err != nil {
			return err
		}
	}
	return nil
}
