package book

import (
	"errors"
	"net/http"

	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrDuplicateTitle  = errors.New("a book with this title already exists")
	ErrInvalidCategory = errors.New("invalid category")
	ErrCoverTooLarge   = errors.New("cover image too large")
	ErrCoverUpload     = errors.New("failed to store cover image")
)

var bookErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Code:    "BOOK_NOT_FOUND",
		Message: "Book not found",
	},
	ErrDuplicateTitle: {
		Status:  http.StatusConflict,
		Code:    "DUPLICATE_TITLE",
		Message: "A book with this title already exists",
	},
	ErrInvalidCategory: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_CATEGORY",
		Message: "Unknown book category",
	},
	ErrCoverTooLarge: {
		Status:  http.StatusBadRequest,
		Code:    "COVER_TOO_LARGE",
		Message: "Cover image exceeds the maximum allowed size",
	},
	ErrCoverUpload: {
		Status:  http.StatusInternalServerError,
		Code:    "COVER_UPLOAD_FAILED",
		Message: "Failed to store cover image",
	},
}

// HandleBookError writes the mapped error response and reports whether
// err was handled.
func HandleBookError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range bookErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	logger.Error("unexpected book error", err)
	response.InternalServerError(c, "Server Error")
	return true
}
