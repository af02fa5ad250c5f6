package handler

import (
	"net/http"

	"library-backend/internal/domains/lending"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LendingHandler exposes borrow, return and waiting-queue routes.
type LendingHandler struct {
	service lending.Service
}

func NewLendingHandler(service lending.Service) *LendingHandler {
	return &LendingHandler{service: service}
}

// Borrow handles POST /api/v1/books/borrow
func (h *LendingHandler) Borrow(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req lending.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	result, err := h.service.Borrow(c.Request.Context(), userID, req.Title)
	if lending.HandleLendingError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Book borrowed successfully", result)
}

// Return handles POST /api/v1/books/return
func (h *LendingHandler) Return(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req lending.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	result, err := h.service.Return(c.Request.Context(), userID, req.Title)
	if lending.HandleLendingError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Book returned successfully", result)
}

// JoinQueue handles POST /api/v1/books/:id/queue/join
func (h *LendingHandler) JoinQueue(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	result, err := h.service.JoinQueue(c.Request.Context(), bookID, userID)
	if lending.HandleLendingError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Joined the waiting list", result)
}

// LeaveQueue handles POST /api/v1/books/:id/queue/leave
func (h *LendingHandler) LeaveQueue(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	result, err := h.service.LeaveQueue(c.Request.Context(), bookID, userID)
	if lending.HandleLendingError(c, err) {
		return
	}

	message := "You were not in the waiting list"
	if result.Removed {
		message = "Left the waiting list"
	}
	response.SuccessWithMessage(c, http.StatusOK, message, result)
}

// QueueStatus handles GET /api/v1/books/:id/queue/status
func (h *LendingHandler) QueueStatus(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	result, err := h.service.QueueStatus(c.Request.Context(), bookID, userID)
	if lending.HandleLendingError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// BorrowStatus handles GET /api/v1/books/:id/borrow-status
func (h *LendingHandler) BorrowStatus(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	result, err := h.service.BorrowStatus(c.Request.Context(), bookID, userID)
	if lending.HandleLendingError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// MyBorrows handles GET /api/v1/users/me/borrows
func (h *LendingHandler) MyBorrows(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	records, err := h.service.ListUserBorrows(c.Request.Context(), userID)
	if lending.HandleLendingError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, records)
}

// MyQueues handles GET /api/v1/users/me/queues
func (h *LendingHandler) MyQueues(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	memberships, err := h.service.ListUserQueues(c.Request.Context(), userID)
	if lending.HandleLendingError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, memberships)
}
