package book

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
)

// Service is the catalog surface: listing, search, admin upserts and
// the development seed.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Book, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)
	Search(ctx context.Context, query string, limit int) ([]Suggestion, error)

	Save(ctx context.Context, req SaveBookRequest) (*Book, error)
	DeleteByTitle(ctx context.Context, title string) error
	Seed(ctx context.Context) (int, error)

	UploadCover(ctx context.Context, bookID uuid.UUID, file *multipart.FileHeader) (string, error)
}
