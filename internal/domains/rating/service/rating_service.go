package service

import (
	"context"

	"library-backend/internal/domains/rating"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"

	"github.com/google/uuid"
)

// RatingService implements rating.Service.
type RatingService struct {
	repo  rating.Repository
	cache cache.Cache // nil-safe
}

func NewService(repo rating.Repository, c cache.Cache) rating.Service {
	return &RatingService{repo: repo, cache: c}
}

func (s *RatingService) Rate(ctx context.Context, bookID, userID uuid.UUID, score int) (*rating.Summary, bool, error) {
	summary, updated, err := s.repo.Upsert(ctx, bookID, userID, score)
	if err != nil {
		return nil, false, err
	}

	// A rating changes the catalog's average, so listings go stale.
	s.invalidate(ctx)
	return summary, updated, nil
}

func (s *RatingService) GetUserRating(ctx context.Context, bookID, userID uuid.UUID) (*rating.Summary, error) {
	return s.repo.Get(ctx, bookID, userID)
}

func (s *RatingService) ListForBook(ctx context.Context, bookID uuid.UUID) (*rating.BookRatings, error) {
	return s.repo.ListForBook(ctx, bookID)
}

func (s *RatingService) RemoveRating(ctx context.Context, bookID, userID uuid.UUID) (*rating.Summary, error) {
	summary, err := s.repo.Delete(ctx, bookID, userID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return summary, nil
}

func (s *RatingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "books:*"); err != nil {
		logger.Error("failed to invalidate book cache", err)
	}
}
