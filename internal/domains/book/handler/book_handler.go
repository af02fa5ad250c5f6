package handler

import (
	"net/http"
	"strconv"

	"library-backend/internal/domains/book"
	"library-backend/internal/shared/response"
	"library-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookHandler exposes the catalog routes.
type BookHandler struct {
	service book.Service
}

func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /api/v1/books
func (h *BookHandler) List(c *gin.Context) {
	page, limit := utils.ParsePagination(c)
	filter := book.ListFilter{
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	}

	books, total, err := h.service.List(c.Request.Context(), filter)
	if book.HandleBookError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: int(total),
	})
}

// Get handles GET /api/v1/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, b)
}

// Search handles GET /api/v1/search/suggestions
func (h *BookHandler) Search(c *gin.Context) {
	limit := 12
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	suggestions, err := h.service.Search(c.Request.Context(), c.Query("q"), limit)
	if book.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"query":       c.Query("q"),
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// Save handles POST /api/v1/books - create or update by title.
func (h *BookHandler) Save(c *gin.Context) {
	var req book.SaveBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	saved, err := h.service.Save(c.Request.Context(), req)
	if book.HandleBookError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Book saved successfully", saved)
}

// Delete handles DELETE /api/v1/books/delete/:title
func (h *BookHandler) Delete(c *gin.Context) {
	title := c.Param("title")
	if title == "" {
		response.BadRequest(c, "Title is required")
		return
	}

	err := h.service.DeleteByTitle(c.Request.Context(), title)
	if book.HandleBookError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Book deleted", nil)
}

// Seed handles POST /api/v1/books/seed - reset catalog to the sample set.
func (h *BookHandler) Seed(c *gin.Context) {
	count, err := h.service.Seed(c.Request.Context())
	if book.HandleBookError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "Catalog reset, all books have 3 copies", gin.H{
		"count": count,
	})
}

// UploadCover handles POST /api/v1/books/:id/cover
func (h *BookHandler) UploadCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	file, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "Cover file is required")
		return
	}

	url, err := h.service.UploadCover(c.Request.Context(), id, file)
	if book.HandleBookError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Cover uploaded", gin.H{"coverUrl": url})
}
