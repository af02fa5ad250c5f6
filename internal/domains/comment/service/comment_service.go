package service

import (
	"context"

	"library-backend/internal/domains/comment"

	"github.com/google/uuid"
)

const listLimit = 50

// CommentService implements comment.Service.
type CommentService struct {
	repo comment.Repository
}

func NewService(repo comment.Repository) comment.Service {
	return &CommentService{repo: repo}
}

func (s *CommentService) Create(ctx context.Context, bookID, userID uuid.UUID, username, content string) (*comment.Comment, error) {
	c := &comment.Comment{
		ID:       uuid.New(),
		BookID:   bookID,
		UserID:   userID,
		Username: username,
		Content:  content,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) ListForBook(ctx context.Context, bookID, viewerID uuid.UUID) ([]comment.Comment, error) {
	return s.repo.ListForBook(ctx, bookID, viewerID, listLimit)
}

func (s *CommentService) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (*comment.LikeResult, error) {
	if _, err := s.repo.Get(ctx, commentID); err != nil {
		return nil, err
	}
	return s.repo.ToggleLike(ctx, commentID, userID)
}

func (s *CommentService) Delete(ctx context.Context, commentID, userID uuid.UUID, isAdmin bool) error {
	c, err := s.repo.Get(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != userID && !isAdmin {
		return comment.ErrNotOwner
	}
	return s.repo.Delete(ctx, commentID)
}
