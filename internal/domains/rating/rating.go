package rating

import (
	"context"
	"errors"
	"net/http"
	"time"

	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrRatingNotFound = errors.New("no rating found for this user")
)

// Rating is one user's score for one book.
type Rating struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"bookId"`
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username,omitempty"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary is what the frontend renders next to the stars.
type Summary struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
	UserRating    int     `json:"userRating"`
	HasRated      bool    `json:"hasRated"`
}

// BookRatings is the admin view of every rating on one title.
type BookRatings struct {
	BookTitle     string   `json:"bookTitle"`
	AverageRating float64  `json:"averageRating"`
	TotalRatings  int      `json:"totalRatings"`
	Ratings       []Rating `json:"ratings"`
}

type RateRequest struct {
	Rating int `json:"rating" binding:"required"`
}

func (r RateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be between 1 and 5"),
			validation.Max(5).Error("rating must be between 1 and 5"),
		),
	)
}

// Repository persists ratings. Upsert and Delete recompute the book's
// average and count inside the same transaction as the rating write, so
// the aggregates can never drift from the rows.
type Repository interface {
	Upsert(ctx context.Context, bookID, userID uuid.UUID, score int) (*Summary, bool, error)
	Get(ctx context.Context, bookID, userID uuid.UUID) (*Summary, error)
	ListForBook(ctx context.Context, bookID uuid.UUID) (*BookRatings, error)
	Delete(ctx context.Context, bookID, userID uuid.UUID) (*Summary, error)
}

// Service is a thin pass-through today; validation lives in the DTO and
// aggregation in the repository.
type Service interface {
	Rate(ctx context.Context, bookID, userID uuid.UUID, score int) (*Summary, bool, error)
	GetUserRating(ctx context.Context, bookID, userID uuid.UUID) (*Summary, error)
	ListForBook(ctx context.Context, bookID uuid.UUID) (*BookRatings, error)
	RemoveRating(ctx context.Context, bookID, userID uuid.UUID) (*Summary, error)
}

var ratingErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Code:    "BOOK_NOT_FOUND",
		Message: "Book not found",
	},
	ErrRatingNotFound: {
		Status:  http.StatusNotFound,
		Code:    "RATING_NOT_FOUND",
		Message: "No rating found for this user",
	},
}

// HandleRatingError writes the mapped error response and reports
// whether err was handled.
func HandleRatingError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range ratingErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	logger.Error("unexpected rating error", err)
	response.InternalServerError(c, "Server Error")
	return true
}
