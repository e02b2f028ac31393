package service

import (
	"context"
	"fmt"

	"github.com/chinazagideon/alx-travel-app/internal/model"
	"github.com/chinazagideon/alx-travel-app/internal/repository"
	"go.uber.org/zap"
)

type ReviewService struct {
	reviewRepo   *repository.ReviewRepository
	propertyRepo *repository.PropertyRepository
	logger       *zap.Logger
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	propertyRepo *repository.PropertyRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

type CreateReviewInput struct {
	PropertyID int64
	UserID     int64
	Rating     int
	Comment    string
}

// CreateReview создаёт отзыв. Отзыв может оставить только гость
// с подтверждённым бронированием, один раз на объект.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*model.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	property, err := s.propertyRepo.GetByID(ctx, in.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	if property == nil {
		return nil, model.ErrPropertyNotFound
	}

	stayed, err := s.reviewRepo.HasConfirmedBooking(ctx, in.PropertyID, in.UserID)
	if err != nil {
		return nil, err
	}
	if !stayed {
		return nil, model.ErrNoConfirmedStay
	}

	exists, err := s.reviewRepo.Exists(ctx, in.PropertyID, in.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrAlreadyReviewed
	}

	review := &model.Review{
		PropertyID: in.PropertyID,
		UserID:     in.UserID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("property_id", review.PropertyID),
		zap.Int("rating", review.Rating),
	)

	return review, nil
}

// ListReviews получает отзывы на объект
func (s *ReviewService) ListReviews(ctx context.Context, propertyID int64) ([]*model.Review, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	if property == nil {
		return nil, model.ErrPropertyNotFound
	}

	return s.reviewRepo.GetByPropertyID(ctx, propertyID)
}
