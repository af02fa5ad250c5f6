package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the account surface: auth, profile and personal lists.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, userID uuid.UUID) error

	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error

	AddToWishlist(ctx context.Context, userID uuid.UUID, req AddListItemRequest) error
	GetWishlist(ctx context.Context, userID uuid.UUID) ([]WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, userID uuid.UUID, title string) error

	AddToReadingList(ctx context.Context, userID uuid.UUID, req AddListItemRequest) error
	GetReadingList(ctx context.Context, userID uuid.UUID) ([]ReadingListItem, error)
	UpdateReadingProgress(ctx context.Context, userID uuid.UUID, title string, progress int) error
	RemoveFromReadingList(ctx context.Context, userID uuid.UUID, title string) error
}
