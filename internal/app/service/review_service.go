package service

import (
	"errors"
	"strings"

	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewInvalidRating = errors.New("rating must be between 1 and 5")
	ErrReviewAuthorMissing = errors.New("review author is required")
)

type ReviewInput struct {
	ProductID uint
	Author    string
	Rating    int
	Comment   string
}

// ReviewService feeds the product's derived rating.
type ReviewService interface {
	CreateReview(input ReviewInput) (*model.Review, error)
	ListProductReviews(productID uint) ([]model.Review, error)
	DeleteReviews(ids []uint) (int64, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

func (s *reviewService) CreateReview(input ReviewInput) (*model.Review, error) {
	if strings.TrimSpace(input.Author) == "" {
		return nil, ErrReviewAuthorMissing
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrReviewInvalidRating
	}

	if _, err := s.productRepo.FindByID(input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	review := &model.Review{
		ProductID: input.ProductID,
		Author:    strings.TrimSpace(input.Author),
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": review.ProductID,
		"rating":     review.Rating,
	})
	return review, nil
}

func (s *reviewService) ListProductReviews(productID uint) ([]model.Review, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.reviewRepo.FindByProduct(productID)
}

func (s *reviewService) DeleteReviews(ids []uint) (int64, error) {
	deleted, err := s.reviewRepo.DeleteByIDs(ids)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrReviewNotFound
	}

	logger.Info("Reviews deleted", map[string]interface{}{
		"deleted": deleted,
	})
	return deleted, nil
}
