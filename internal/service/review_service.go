package service

import (
	"strings"
	"unicode/utf8"

	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// ReviewStats 商品评价统计
type ReviewStats struct {
	Count   int64  `json:"count"`
	Average string `json:"average"`
}

// SubmitReviewInput 提交评价输入
type SubmitReviewInput struct {
	UserID    uint
	ProductID uint
	Rating    int
	Comment   string
}

// ReviewService 评价服务
type ReviewService struct {
	repo        repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(repo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{repo: repo, productRepo: productRepo}
}

// Submit 提交评价，同一用户对同一商品重复提交时覆盖评分与内容；created 为 false 表示覆盖了已有评价
func (s *ReviewService) Submit(input SubmitReviewInput) (*models.Review, bool, error) {
	if input.Rating < constants.ReviewRatingMin || input.Rating > constants.ReviewRatingMax {
		return nil, false, ErrReviewRatingInvalid
	}
	comment := strings.TrimSpace(input.Comment)
	if utf8.RuneCountInString(comment) < constants.ReviewCommentMinLength {
		return nil, false, ErrReviewCommentInvalid
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, false, err
	}
	if product == nil {
		return nil, false, ErrProductNotFound
	}

	review, created, err := s.repo.Upsert(&models.Review{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   comment,
	})
	if err != nil {
		return nil, false, err
	}
	review.UserName = reviewAuthorName(review.User)
	return review, created, nil
}

// MarkHelpful 有用计数加一并返回最新评价
func (s *ReviewService) MarkHelpful(reviewID uint) (*models.Review, error) {
	affected, err := s.repo.IncrementHelpful(reviewID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrReviewNotFound
	}
	review, err := s.repo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	review.UserName = reviewAuthorName(review.User)
	return review, nil
}

// ListForProduct 商品评价列表，最新在前并附带作者展示名
func (s *ReviewService) ListForProduct(productID uint) ([]models.Review, error) {
	reviews, err := s.repo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].UserName = reviewAuthorName(reviews[i].User)
	}
	return reviews, nil
}

// Summary 商品评价数量与平均分
func (s *ReviewService) Summary(productID uint) (*ReviewStats, error) {
	summary, err := s.repo.SummaryByProduct(productID)
	if err != nil {
		return nil, err
	}
	return &ReviewStats{
		Count:   summary.Count,
		Average: FormatAverageRating(summary.RatingSum, summary.Count),
	}, nil
}

// FormatAverageRating 平均分保留一位小数，四舍五入；无评价时为 "0.0"
func FormatAverageRating(sum, count int64) string {
	if count <= 0 {
		return decimal.Zero.StringFixed(1)
	}
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(count)).StringFixed(1)
}

func reviewAuthorName(user *models.User) string {
	if name := user.DisplayName(); name != "" {
		return name
	}
	return constants.ReviewAnonymousName
}
