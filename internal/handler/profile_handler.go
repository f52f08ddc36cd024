package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hefica/hefica-backend/internal/dto"
	"github.com/hefica/hefica-backend/internal/repository"
	"github.com/hefica/hefica-backend/internal/service"
)

// ProfileHandler serves the signed-in account's profile
type ProfileHandler struct {
	authService service.AuthService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(authService service.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// GetProfile returns the current account's profile
// @Summary Get the signed-in account's profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	account, err := h.authService.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{User: account})
}

// UpdateProfile applies profile changes for the current account
// @Summary Update the signed-in account's profile
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile changes"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /user/profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	account, err := h.authService.UpdateProfile(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		var valErr *service.ValidationError
		switch {
		case errors.As(err, &valErr):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: valErr.Message})
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{User: account})
}
