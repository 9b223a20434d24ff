package service

import (
	"context"
	"strings"
	"time"

	"github.com/silkloom/storefront/internal/cache"
	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	catalogScopeProducts   = "products"
	catalogScopeCategories = "categories"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cacheTTL     time.Duration
}

// NewProductService 创建商品服务，cacheTTL <= 0 时不写入目录缓存
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, cacheTTL time.Duration) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo, cacheTTL: cacheTTL}
}

// ProductQuery 公开商品列表查询条件
// CategoryID 与 CategorySlug 同时给出时以 CategoryID 为准
type ProductQuery struct {
	CategoryID   *uint            `json:"category_id,omitempty"`
	CategorySlug string           `json:"category_slug,omitempty"`
	Featured     *bool            `json:"featured,omitempty"`
	InStock      *bool            `json:"in_stock,omitempty"`
	MinPrice     *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice     *decimal.Decimal `json:"max_price,omitempty"`
	Search       string           `json:"search,omitempty"`
	Fabric       string           `json:"fabric,omitempty"`
	WorkDetails  string           `json:"work_details,omitempty"`
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	CategoryID  *uint
	ImageURLs   []string
	Features    []string
	Fabric      string
	WorkDetails string
	InStock     *bool
	Featured    *bool
}

// ListPublic 按条件获取公开商品列表，结果按插入顺序返回且不分页
func (s *ProductService) ListPublic(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	query.CategorySlug = strings.TrimSpace(query.CategorySlug)
	query.Search = strings.TrimSpace(query.Search)
	query.Fabric = strings.TrimSpace(query.Fabric)
	query.WorkDetails = strings.TrimSpace(query.WorkDetails)

	var cached []models.Product
	version, hit, err := cache.GetCatalogJSON(ctx, catalogScopeProducts, query, &cached)
	cacheable := err == nil && s.cacheTTL > 0
	if err != nil {
		logger.Warnw("catalog_cache_get_failed", "scope", catalogScopeProducts, "error", err)
	} else if hit {
		return cached, nil
	}

	filter, ok, err := s.buildListFilter(query)
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if ok {
		products, _, err = s.repo.List(filter)
		if err != nil {
			return nil, err
		}
	}

	if cacheable {
		if err := cache.SetCatalogJSONAt(ctx, version, catalogScopeProducts, query, products, s.cacheTTL); err != nil {
			logger.Warnw("catalog_cache_set_failed", "scope", catalogScopeProducts, "error", err)
		}
	}
	return products, nil
}

// buildListFilter 将查询条件转换为仓库过滤器；分类 slug 不存在时 ok 为 false
func (s *ProductService) buildListFilter(query ProductQuery) (repository.ProductListFilter, bool, error) {
	filter := repository.ProductListFilter{
		CategoryID:   query.CategoryID,
		Featured:     query.Featured,
		InStock:      query.InStock,
		MinPrice:     query.MinPrice,
		MaxPrice:     query.MaxPrice,
		Search:       query.Search,
		Fabric:       query.Fabric,
		WorkDetails:  query.WorkDetails,
		WithCategory: true,
	}
	if filter.CategoryID == nil && query.CategorySlug != "" {
		category, err := s.categoryRepo.GetBySlug(query.CategorySlug)
		if err != nil {
			return filter, false, err
		}
		if category == nil {
			return filter, false, nil
		}
		categoryID := category.ID
		filter.CategoryID = &categoryID
	}
	return filter, true, nil
}

// GetPublicBySlug 获取公开商品详情
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetByID 获取商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Resolve 按数字 ID 或 slug 查找商品
func (s *ProductService) Resolve(idOrSlug string) (*models.Product, error) {
	if id, ok := parsePositiveUint(idOrSlug); ok {
		product, err := s.repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if product != nil {
			return product, nil
		}
	}
	return s.GetPublicBySlug(idOrSlug)
}

// ListAdmin 获取后台商品列表（分页）
func (s *ProductService) ListAdmin(search string, categoryID *uint, page, pageSize int) ([]models.Product, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.repo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       strings.TrimSpace(search),
		WithCategory: true,
	})
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	input = normalizeProductInput(input)
	if err := s.validateProductInput(input, nil); err != nil {
		return nil, err
	}

	product := models.Product{InStock: true}
	applyProductInput(&product, input)
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	s.bumpCatalog(ctx)
	return s.GetByID(product.ID)
}

// Update 更新商品
func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	input = normalizeProductInput(input)
	if err := s.validateProductInput(input, &id); err != nil {
		return nil, err
	}

	applyProductInput(product, input)
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.bumpCatalog(ctx)
	return s.GetByID(id)
}

// Delete 软删除商品，购物车中的引用在读取时被忽略
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.bumpCatalog(ctx)
	return nil
}

func (s *ProductService) validateProductInput(input ProductInput, excludeID *uint) error {
	if input.Name == "" || input.Slug == "" {
		return ErrProductInvalid
	}
	if !input.Price.GreaterThan(decimal.Zero) {
		return ErrProductPriceInvalid
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	count, err := s.repo.CountBySlug(input.Slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}

func (s *ProductService) bumpCatalog(ctx context.Context) {
	if _, err := cache.BumpCatalogVersion(ctx); err != nil {
		logger.Warnw("catalog_cache_bump_failed", "error", err)
	}
}

func normalizeProductInput(input ProductInput) ProductInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Description = strings.TrimSpace(input.Description)
	input.Fabric = strings.TrimSpace(input.Fabric)
	input.WorkDetails = strings.TrimSpace(input.WorkDetails)
	input.Price = input.Price.Round(2)
	input.ImageURLs = compactStrings(input.ImageURLs)
	input.Features = compactStrings(input.Features)
	return input
}

func applyProductInput(product *models.Product, input ProductInput) {
	product.Name = input.Name
	product.Slug = input.Slug
	product.Description = input.Description
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.CategoryID = input.CategoryID
	product.ImageURLs = models.StringArray(input.ImageURLs)
	product.Features = models.StringArray(input.Features)
	product.Fabric = input.Fabric
	product.WorkDetails = input.WorkDetails
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
}

func compactStrings(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
