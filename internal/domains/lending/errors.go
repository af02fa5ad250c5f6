package lending

import (
	"errors"
	"net/http"

	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	ErrBookNotFound       = errors.New("book not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrOutOfStock         = errors.New("book is out of stock")
	ErrAlreadyBorrowed    = errors.New("book is already borrowed by this user")
	ErrNotBorrowed        = errors.New("no active borrow found for this book")
	ErrBorrowLimitReached = errors.New("borrow limit reached")
	ErrQueueDisabled      = errors.New("waiting queue is disabled for this book")
	ErrAlreadyQueued      = errors.New("user is already in the waiting queue")
	ErrQueueFull          = errors.New("waiting queue is full")

	// ErrVersionConflict is internal: a guarded stock update matched no
	// rows. The service retries a bounded number of times before
	// surfacing ErrConflict.
	ErrVersionConflict = errors.New("book was modified concurrently")

	ErrConflict         = errors.New("concurrent modification, please retry")
	ErrPartialFailure   = errors.New("transaction outcome unknown: commit failed after writes")
	ErrStoreUnavailable = errors.New("datastore unavailable")
)

var lendingErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrBookNotFound: {
		Status:  http.StatusNotFound,
		Code:    "BOOK_NOT_FOUND",
		Message: "Book not found in library.",
	},
	ErrUserNotFound: {
		Status:  http.StatusNotFound,
		Code:    "USER_NOT_FOUND",
		Message: "User not found",
	},
	ErrOutOfStock: {
		Status:  http.StatusBadRequest,
		Code:    "OUT_OF_STOCK",
		Message: "Sorry, out of stock! You can join the waiting list instead.",
	},
	ErrAlreadyBorrowed: {
		Status:  http.StatusBadRequest,
		Code:    "ALREADY_BORROWED",
		Message: "You already have this book!",
	},
	ErrNotBorrowed: {
		Status:  http.StatusBadRequest,
		Code:    "NOT_BORROWED",
		Message: "Book not found in your borrow history",
	},
	ErrBorrowLimitReached: {
		Status:  http.StatusBadRequest,
		Code:    "BORROW_LIMIT_REACHED",
		Message: "You have reached the maximum number of borrowed books",
	},
	ErrQueueDisabled: {
		Status:  http.StatusBadRequest,
		Code:    "QUEUE_DISABLED",
		Message: "The waiting list is disabled for this book",
	},
	ErrAlreadyQueued: {
		Status:  http.StatusBadRequest,
		Code:    "ALREADY_QUEUED",
		Message: "You are already in the waiting list for this book",
	},
	ErrQueueFull: {
		Status:  http.StatusBadRequest,
		Code:    "QUEUE_FULL",
		Message: "The waiting list for this book is full",
	},
	ErrConflict: {
		Status:  http.StatusConflict,
		Code:    "CONFLICT",
		Message: "The book was updated by another request, please retry",
	},
	ErrPartialFailure: {
		Status:  http.StatusInternalServerError,
		Code:    "PARTIAL_FAILURE",
		Message: "The operation may have partially applied, please verify your borrow history",
	},
	ErrStoreUnavailable: {
		Status:  http.StatusServiceUnavailable,
		Code:    "STORE_UNAVAILABLE",
		Message: "Service temporarily unavailable",
	},
}

// HandleLendingError writes the mapped error response and reports
// whether err was handled.
func HandleLendingError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range lendingErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	logger.Error("unexpected lending error", err)
	response.InternalServerError(c, "Server Error")
	return true
}
