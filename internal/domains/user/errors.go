package user

import (
	"errors"
	"net/http"

	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user with this email or username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrAlreadyInWishlist  = errors.New("book already in wishlist")
	ErrAlreadyReading     = errors.New("book already in reading list")
	ErrListItemNotFound   = errors.New("list item not found")
)

var userErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrUserNotFound: {
		Status:  http.StatusNotFound,
		Code:    "USER_NOT_FOUND",
		Message: "User not found",
	},
	ErrDuplicateUser: {
		Status:  http.StatusBadRequest,
		Code:    "DUPLICATE_USER",
		Message: "User with this email or username already exists",
	},
	ErrInvalidCredentials: {
		Status:  http.StatusUnauthorized,
		Code:    "INVALID_CREDENTIALS",
		Message: "Invalid credentials",
	},
	ErrInvalidToken: {
		Status:  http.StatusUnauthorized,
		Code:    "INVALID_TOKEN",
		Message: "Invalid or expired token",
	},
	ErrWrongPassword: {
		Status:  http.StatusBadRequest,
		Code:    "WRONG_PASSWORD",
		Message: "Current password is incorrect",
	},
	ErrAlreadyInWishlist: {
		Status:  http.StatusBadRequest,
		Code:    "ALREADY_IN_WISHLIST",
		Message: "Already in wishlist!",
	},
	ErrAlreadyReading: {
		Status:  http.StatusBadRequest,
		Code:    "ALREADY_READING",
		Message: "Already reading this!",
	},
	ErrListItemNotFound: {
		Status:  http.StatusNotFound,
		Code:    "LIST_ITEM_NOT_FOUND",
		Message: "Book not found in your list",
	},
}

// HandleUserError writes the mapped error response and reports whether
// err was handled.
func HandleUserError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range userErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	logger.Error("unexpected user error", err)
	response.InternalServerError(c, "Server Error")
	return true
}
