package handler

import (
	"net/http"

	"library-backend/internal/domains/comment"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CommentHandler exposes the per-book discussion routes.
type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create handles POST /api/v1/books/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
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

	var req comment.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), bookID, userID, c.GetString("username"), req.Content)
	if comment.HandleCommentError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Comment posted successfully", created)
}

// List handles GET /api/v1/books/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	// Viewer identity is optional here: it only resolves the like flags.
	viewerID, _ := middleware.UserID(c)

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	comments, err := h.service.ListForBook(c.Request.Context(), bookID, viewerID)
	if comment.HandleCommentError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count":    len(comments),
		"comments": comments,
	})
}

// Like handles POST /api/v1/comments/:id/like - toggles the like.
func (h *CommentHandler) Like(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID")
		return
	}

	result, err := h.service.ToggleLike(c.Request.Context(), commentID, userID)
	if comment.HandleCommentError(c, err) {
		return
	}

	message := "Comment unliked"
	if result.UserLiked {
		message = "Comment liked"
	}
	response.SuccessWithMessage(c, http.StatusOK, message, result)
}

// Delete handles DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID")
		return
	}

	isAdmin := c.GetString("role") == "admin"
	if err := h.service.Delete(c.Request.Context(), commentID, userID, isAdmin); comment.HandleCommentError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Comment deleted successfully", nil)
}
