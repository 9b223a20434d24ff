package service

import (
	"context"
	"strings"
	"time"

	"github.com/silkloom/storefront/internal/cache"
	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
	cacheTTL    time.Duration
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, productRepo repository.ProductRepository, cacheTTL time.Duration) *CategoryService {
	return &CategoryService{repo: repo, productRepo: productRepo, cacheTTL: cacheTTL}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
}

// List 获取分类列表
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	version, hit, err := cache.GetCatalogJSON(ctx, catalogScopeCategories, nil, &cached)
	cacheable := err == nil && s.cacheTTL > 0
	if err != nil {
		logger.Warnw("catalog_cache_get_failed", "scope", catalogScopeCategories, "error", err)
	} else if hit {
		return cached, nil
	}

	categories, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := cache.SetCatalogJSONAt(ctx, version, catalogScopeCategories, nil, categories, s.cacheTTL); err != nil {
			logger.Warnw("catalog_cache_set_failed", "scope", catalogScopeCategories, "error", err)
		}
	}
	return categories, nil
}

// GetBySlug 按 slug 获取分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	input = normalizeCategoryInput(input)
	if input.Name == "" || input.Slug == "" {
		return nil, ErrCategoryInvalid
	}
	count, err := s.repo.CountBySlug(input.Slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category := models.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	s.bumpCatalog(ctx)
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	input = normalizeCategoryInput(input)
	if input.Name == "" || input.Slug == "" {
		return nil, ErrCategoryInvalid
	}

	count, err := s.repo.CountBySlug(input.Slug, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category.Name = input.Name
	category.Slug = input.Slug
	category.Description = input.Description
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	s.bumpCatalog(ctx)
	return category, nil
}

// Delete 删除分类，仍有商品引用时拒绝
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.bumpCatalog(ctx)
	return nil
}

func (s *CategoryService) bumpCatalog(ctx context.Context) {
	if _, err := cache.BumpCatalogVersion(ctx); err != nil {
		logger.Warnw("catalog_cache_bump_failed", "error", err)
	}
}

func normalizeCategoryInput(input CategoryInput) CategoryInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Description = strings.TrimSpace(input.Description)
	return input
}
