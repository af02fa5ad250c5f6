package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the user data access contract.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Update(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	AddWishlistItem(ctx context.Context, item WishlistItem) error
	ListWishlist(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, userID uuid.UUID, title string) (bool, error)

	AddReadingItem(ctx context.Context, item ReadingListItem) error
	ListReading(ctx context.Context, userID uuid.UUID) ([]ReadingListItem, error)
	UpdateReadingProgress(ctx context.Context, userID uuid.UUID, title string, progress int) (bool, error)
	RemoveReadingItem(ctx context.Context, userID uuid.UUID, title string) (bool, error)
}
