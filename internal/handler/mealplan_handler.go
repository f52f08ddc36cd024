package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hefica/hefica-backend/internal/domain"
	"github.com/hefica/hefica-backend/internal/dto"
	"github.com/hefica/hefica-backend/internal/repository"
)

// MealPlanHandler serves the signed-in account's meal plans. At most
// one plan per account is active; activating one deactivates the rest.
type MealPlanHandler struct {
	plans repository.MealPlanRepository
}

// NewMealPlanHandler creates a new meal plan handler
func NewMealPlanHandler(plans repository.MealPlanRepository) *MealPlanHandler {
	return &MealPlanHandler{plans: plans}
}

// List returns the account's meal plans
// @Summary List meal plans
// @Tags meal-plans
// @Produce json
// @Security BearerAuth
// @Param active query string false "Filter by active flag (true/false)"
// @Success 200 {object} map[string][]domain.MealPlan
// @Router /meal-plans [get]
func (h *MealPlanHandler) List(c *gin.Context) {
	var active *bool
	switch c.Query("active") {
	case "true":
		v := true
		active = &v
	case "false":
		v := false
		active = &v
	}

	plans, err := h.plans.ListByUser(c.Request.Context(), currentUserID(c), active)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch meal plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mealPlans": plans})
}

// Create adds a meal plan
// @Summary Create a meal plan
// @Tags meal-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMealPlanRequest true "Meal plan"
// @Success 201 {object} map[string]domain.MealPlan
// @Failure 400 {object} dto.ErrorResponse
// @Router /meal-plans [post]
func (h *MealPlanHandler) Create(c *gin.Context) {
	var req dto.CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Name is required"})
		return
	}

	userID := currentUserID(c)

	plan := &domain.MealPlan{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		StartDate:   time.Now(),
		EndDate:     req.EndDate,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.StartDate != nil {
		plan.StartDate = *req.StartDate
	}

	if plan.IsActive {
		if err := h.plans.DeactivateAll(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create meal plan"})
			return
		}
	}

	if err := h.plans.Create(c.Request.Context(), plan); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create meal plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"mealPlan": plan})
}

// Get returns one meal plan
// @Summary Get a meal plan
// @Tags meal-plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal plan ID"
// @Success 200 {object} map[string]domain.MealPlan
// @Failure 404 {object} dto.ErrorResponse
// @Router /meal-plans/{id} [get]
func (h *MealPlanHandler) Get(c *gin.Context) {
	plan, err := h.plans.GetByID(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Meal plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch meal plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mealPlan": plan})
}

// Update applies meal plan changes; activating a plan deactivates the
// account's other plans first
// @Summary Update a meal plan
// @Tags meal-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal plan ID"
// @Param request body dto.UpdateMealPlanRequest true "Changes"
// @Success 200 {object} map[string]domain.MealPlan
// @Failure 404 {object} dto.ErrorResponse
// @Router /meal-plans/{id} [put]
func (h *MealPlanHandler) Update(c *gin.Context) {
	var req dto.UpdateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	userID := currentUserID(c)

	plan, err := h.plans.GetByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Meal plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch meal plan"})
		return
	}

	if req.IsActive != nil && *req.IsActive && !plan.IsActive {
		if err := h.plans.DeactivateAll(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update meal plan"})
			return
		}
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = req.Description
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.StartDate != nil {
		plan.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		plan.EndDate = req.EndDate
	}

	if err := h.plans.Update(c.Request.Context(), plan); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update meal plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mealPlan": plan})
}

// Delete removes a meal plan and its meals
// @Summary Delete a meal plan
// @Tags meal-plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal plan ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /meal-plans/{id} [delete]
func (h *MealPlanHandler) Delete(c *gin.Context) {
	err := h.plans.Delete(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Meal plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete meal plan"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Meal plan deleted successfully"})
}
