package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/repository"
)

// ReviewService creates and lists verified-purchase reviews: a review is
// only accepted when the reviewing user has a prior order referencing the
// target product or store.
type ReviewService struct {
	reviews repository.ReviewRepository
	orders  repository.OrderRepository
	logger  *zap.Logger
}

// NewReviewService creates a ReviewService.
func NewReviewService(reviews repository.ReviewRepository, orders repository.OrderRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, orders: orders, logger: logger}
}

// Create validates the review target against the user's order history and
// persists the review.
func (s *ReviewService) Create(ctx context.Context, userID primitive.ObjectID, req *models.ReviewCreateRequest) (*models.Review, error) {
	review := &models.Review{
		User:       userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		ReviewType: req.ReviewType,
	}

	switch req.ReviewType {
	case models.ReviewTypeProduct:
		productID, err := primitive.ObjectIDFromHex(req.Product)
		if err != nil {
			return nil, NewFieldError("product", "a valid product id is required for a product review")
		}
		purchased, err := s.orders.ExistsByUserAndProduct(ctx, userID, productID)
		if err != nil {
			return nil, err
		}
		if !purchased {
			return nil, ErrNotPurchased
		}
		review.Product = &productID

	case models.ReviewTypeStore:
		storeID, err := primitive.ObjectIDFromHex(req.Store)
		if err != nil {
			return nil, NewFieldError("store", "a valid store id is required for a store review")
		}
		purchased, err := s.orders.ExistsByUserAndStore(ctx, userID, storeID)
		if err != nil {
			return nil, err
		}
		if !purchased {
			return nil, ErrNotPurchased
		}
		review.Store = &storeID

	default:
		return nil, NewFieldError("reviewType", "reviewType must be \"product\" or \"store\"")
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review created",
		zap.String("review", review.ID.Hex()),
		zap.String("type", review.ReviewType))

	return review, nil
}

// ListByProduct returns the reviews for a product, newest first.
func (s *ReviewService) ListByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	return s.reviews.FindByProduct(ctx, productID)
}

// ListByStore returns the reviews for a store, newest first.
func (s *ReviewService) ListByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.Review, error) {
	return s.reviews.FindByStore(ctx, storeID)
}
