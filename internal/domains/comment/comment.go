package comment

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
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotOwner        = errors.New("not authorized to delete this comment")
)

// Comment is one discussion entry on a book.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"bookId"`
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	UserLiked bool      `json:"userLiked"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 2000),
		),
	)
}

// LikeResult reports the toggle outcome.
type LikeResult struct {
	Likes     int  `json:"likes"`
	UserLiked bool `json:"userLiked"`
}

type Repository interface {
	Create(ctx context.Context, c *Comment) error
	// ListForBook returns newest-first with like counts and the viewer's
	// like flag resolved in one query.
	ListForBook(ctx context.Context, bookID, viewerID uuid.UUID, limit int) ([]Comment, error)
	Get(ctx context.Context, id uuid.UUID) (*Comment, error)
	// ToggleLike flips the viewer's like and returns the new state.
	ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (*LikeResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service interface {
	Create(ctx context.Context, bookID, userID uuid.UUID, username, content string) (*Comment, error)
	ListForBook(ctx context.Context, bookID, viewerID uuid.UUID) ([]Comment, error)
	ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (*LikeResult, error)
	// Delete removes the comment when the caller owns it or is an admin.
	Delete(ctx context.Context, commentID, userID uuid.UUID, isAdmin bool) error
}

var commentErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrCommentNotFound: {
		Status:  http.StatusNotFound,
		Code:    "COMMENT_NOT_FOUND",
		Message: "Comment not found",
	},
	ErrNotOwner: {
		Status:  http.StatusForbidden,
		Code:    "NOT_COMMENT_OWNER",
		Message: "Not authorized to delete this comment",
	},
}

// HandleCommentError writes the mapped error response and reports
// whether err was handled.
func HandleCommentError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range commentErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	logger.Error("unexpected comment error", err)
	response.InternalServerError(c, "Server Error")
	return true
}
