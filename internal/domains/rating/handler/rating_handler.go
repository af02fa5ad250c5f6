package handler

import (
	"net/http"

	"library-backend/internal/domains/rating"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RatingHandler exposes the star-rating routes.
type RatingHandler struct {
	service rating.Service
}

func NewRatingHandler(service rating.Service) *RatingHandler {
	return &RatingHandler{service: service}
}

// Rate handles POST /api/v1/books/:id/rate
func (h *RatingHandler) Rate(c *gin.Context) {
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

	var req rating.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5", err)
		return
	}

	summary, updated, err := h.service.Rate(c.Request.Context(), bookID, userID, req.Rating)
	if rating.HandleRatingError(c, err) {
		return
	}

	message := "Rating submitted successfully"
	if updated {
		message = "Rating updated successfully"
	}
	response.SuccessWithMessage(c, http.StatusOK, message, summary)
}

// GetMyRating handles GET /api/v1/books/:id/rating
func (h *RatingHandler) GetMyRating(c *gin.Context) {
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

	summary, err := h.service.GetUserRating(c.Request.Context(), bookID, userID)
	if rating.HandleRatingError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// ListForBook handles GET /api/v1/books/:id/ratings (admin)
func (h *RatingHandler) ListForBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	ratings, err := h.service.ListForBook(c.Request.Context(), bookID)
	if rating.HandleRatingError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, ratings)
}

// Remove handles DELETE /api/v1/books/:id/rating
func (h *RatingHandler) Remove(c *gin.Context) {
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

	summary, err := h.service.RemoveRating(c.Request.Context(), bookID, userID)
	if rating.HandleRatingError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Rating removed successfully", summary)
}
