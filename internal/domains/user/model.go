package user

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	ProfilePicture string    `json:"profilePicture"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// WishlistItem and ReadingListItem are denormalized snapshots of a
// book: removing the title from the catalog leaves user lists intact.
type WishlistItem struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"-"`
	BookTitle  string    `json:"bookTitle"`
	BookAuthor string    `json:"bookAuthor"`
	BookCover  string    `json:"bookCover"`
	AddedAt    time.Time `json:"addedAt"`
}

type ReadingListItem struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"-"`
	BookTitle  string    `json:"bookTitle"`
	BookAuthor string    `json:"bookAuthor"`
	BookCover  string    `json:"bookCover"`
	Progress   int       `json:"progress"`
	StartDate  time.Time `json:"startDate"`
}
