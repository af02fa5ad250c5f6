package handler

import (
	"net/http"

	"library-backend/internal/domains/user"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes auth, profile and personal-list routes.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTH
// ========================================

// Register handles POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if user.HandleUserError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "User registered successfully", result)
}

// Login handles POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if user.HandleUserError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Login successful", result)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req user.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Logout handles POST /api/v1/auth/logout
func (h *UserHandler) Logout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID); user.HandleUserError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Logout successful", nil)
}

// ========================================
// PROFILE
// ========================================

// Profile handles GET /api/v1/users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/v1/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if user.HandleUserError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Profile updated successfully", updated)
}

// ChangePassword handles PUT /api/v1/users/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); user.HandleUserError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Password changed successfully", nil)
}

// ========================================
// WISHLIST
// ========================================

// AddWishlist handles POST /api/v1/users/me/wishlist
func (h *UserHandler) AddWishlist(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.AddListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	if err := h.service.AddToWishlist(c.Request.Context(), userID, req); user.HandleUserError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Added to wishlist", nil)
}

// GetWishlist handles GET /api/v1/users/me/wishlist
func (h *UserHandler) GetWishlist(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	items, err := h.service.GetWishlist(c.Request.Context(), userID)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, items)
}

// RemoveWishlist handles DELETE /api/v1/users/me/wishlist/:title
func (h *UserHandler) RemoveWishlist(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.RemoveFromWishlist(c.Request.Context(), userID, c.Param("title")); user.HandleUserError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Removed from wishlist", nil)
}

// ========================================
// READING LIST
// ========================================

// AddReading handles POST /api/v1/users/me/reading
func (h *UserHandler) AddReading(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.AddListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	if err := h.service.AddToReadingList(c.Request.Context(), userID, req); user.HandleUserError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Added to reading list", nil)
}

// GetReading handles GET /api/v1/users/me/reading
func (h *UserHandler) GetReading(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	items, err := h.service.GetReadingList(c.Request.Context(), userID)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, items)
}

// UpdateReadingProgress handles PUT /api/v1/users/me/reading/:title
func (h *UserHandler) UpdateReadingProgress(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req user.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return
	}

	if err := h.service.UpdateReadingProgress(c.Request.Context(), userID, c.Param("title"), req.Progress); user.HandleUserError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Progress updated", nil)
}

// RemoveReading handles DELETE /api/v1/users/me/reading/:title
func (h *UserHandler) RemoveReading(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.RemoveFromReadingList(c.Request.Context(), userID, c.Param("title")); user.HandleUserError(c, err) {
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Removed from reading list", nil)
}
