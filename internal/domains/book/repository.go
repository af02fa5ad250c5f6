package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the catalog data access contract.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Book, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)
	GetByTitle(ctx context.Context, title string) (*Book, error)

	// Upsert inserts by title or updates the existing row, preserving
	// its lending state (stock, version, rating aggregates).
	Upsert(ctx context.Context, b *Book) (*Book, error)

	// DeleteByTitle removes a title; false when it was absent.
	DeleteByTitle(ctx context.Context, title string) (bool, error)

	// ReplaceAll wipes the catalog and inserts the given books. Used by
	// the seed endpoint only.
	ReplaceAll(ctx context.Context, books []Book) error

	// Search matches title, author and category case-insensitively,
	// ordered by popularity then rating.
	Search(ctx context.Context, query string, limit int) ([]Suggestion, error)

	UpdateCover(ctx context.Context, id uuid.UUID, coverURL string) error
}
