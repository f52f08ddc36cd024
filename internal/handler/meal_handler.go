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

// MealHandler serves meals; ownership always runs through the owning
// meal plan.
type MealHandler struct {
	meals repository.MealRepository
	plans repository.MealPlanRepository
}

// NewMealHandler creates a new meal handler
func NewMealHandler(meals repository.MealRepository, plans repository.MealPlanRepository) *MealHandler {
	return &MealHandler{meals: meals, plans: plans}
}

// List returns the account's meals
// @Summary List meals
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param mealPlanId query string false "Meal plan ID"
// @Param type query string false "Meal type"
// @Param from query string false "Scheduled from (RFC 3339)"
// @Param to query string false "Scheduled to (RFC 3339)"
// @Success 200 {object} map[string][]domain.Meal
// @Router /meals [get]
func (h *MealHandler) List(c *gin.Context) {
	filter := repository.MealFilter{
		MealPlanID: c.Query("mealPlanId"),
		MealType:   c.Query("type"),
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.To = &t
		}
	}

	meals, err := h.meals.ListByUser(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// Create adds a meal to one of the account's plans
// @Summary Create a meal
// @Tags meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMealRequest true "Meal"
// @Success 201 {object} map[string]domain.Meal
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /meals [post]
func (h *MealHandler) Create(c *gin.Context) {
	var req dto.CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Meal plan, name and meal type are required"})
		return
	}

	// The plan lookup is user-scoped, so a foreign plan id 404s.
	if _, err := h.plans.GetByID(c.Request.Context(), currentUserID(c), req.MealPlanID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Meal plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create meal"})
		return
	}

	meal := &domain.Meal{
		MealPlanID:  req.MealPlanID,
		Name:        req.Name,
		MealType:    req.MealType,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		ScheduledAt: time.Now(),
	}
	if req.ScheduledAt != nil {
		meal.ScheduledAt = *req.ScheduledAt
	}

	if err := h.meals.Create(c.Request.Context(), meal); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create meal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

// Get returns one meal
// @Summary Get a meal
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Success 200 {object} map[string]domain.Meal
// @Failure 404 {object} dto.ErrorResponse
// @Router /meals/{id} [get]
func (h *MealHandler) Get(c *gin.Context) {
	meal, err := h.meals.GetByID(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch meal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// Update applies meal changes
// @Summary Update a meal
// @Tags meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Param request body dto.UpdateMealRequest true "Changes"
// @Success 200 {object} map[string]domain.Meal
// @Failure 404 {object} dto.ErrorResponse
// @Router /meals/{id} [put]
func (h *MealHandler) Update(c *gin.Context) {
	var req dto.UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	meal, err := h.meals.GetByID(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch meal"})
		return
	}

	if req.Name != nil {
		meal.Name = *req.Name
	}
	if req.MealType != nil {
		meal.MealType = *req.MealType
	}
	if req.Calories != nil {
		meal.Calories = req.Calories
	}
	if req.Protein != nil {
		meal.Protein = req.Protein
	}
	if req.Carbs != nil {
		meal.Carbs = req.Carbs
	}
	if req.Fat != nil {
		meal.Fat = req.Fat
	}
	if req.ScheduledAt != nil {
		meal.ScheduledAt = *req.ScheduledAt
	}
	if req.Completed != nil {
		meal.Completed = *req.Completed
	}

	if err := h.meals.Update(c.Request.Context(), meal); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update meal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

// Delete removes a meal
// @Summary Delete a meal
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /meals/{id} [delete]
func (h *MealHandler) Delete(c *gin.Context) {
	err := h.meals.Delete(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete meal"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Meal deleted successfully"})
}
