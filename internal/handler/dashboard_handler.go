package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hefica/hefica-backend/internal/dto"
	"github.com/hefica/hefica-backend/internal/repository"
)

// Default daily calorie goal until goals become configurable.
const calorieGoal = 2200

// DashboardHandler aggregates the dashboard page numbers
type DashboardHandler struct {
	workouts repository.WorkoutRepository
	meals    repository.MealRepository
	logs     repository.ProgressLogRepository
	accounts repository.AccountRepository
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	workouts repository.WorkoutRepository,
	meals repository.MealRepository,
	logs repository.ProgressLogRepository,
	accounts repository.AccountRepository,
) *DashboardHandler {
	return &DashboardHandler{
		workouts: workouts,
		meals:    meals,
		logs:     logs,
		accounts: accounts,
	}
}

// Stats returns this month's workout and meal counts, today's meals
// from the active plan and the latest logged weight
// @Summary Get dashboard statistics
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]dto.DashboardStats
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfToday := startOfToday.Add(24*time.Hour - time.Nanosecond)

	totalWorkouts, err := h.workouts.CountSince(ctx, userID, startOfMonth)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch dashboard stats"})
		return
	}

	totalMeals, err := h.meals.CountSince(ctx, userID, startOfMonth)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch dashboard stats"})
		return
	}

	todaysMeals, err := h.meals.ListScheduledBetween(ctx, userID, startOfToday, endOfToday)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch dashboard stats"})
		return
	}

	todayCalories := 0
	mealViews := make([]dto.DashboardMeal, 0, len(todaysMeals))
	for _, meal := range todaysMeals {
		if meal.Calories != nil {
			todayCalories += *meal.Calories
		}
		mealViews = append(mealViews, dto.DashboardMeal{
			ID:          meal.ID,
			Name:        meal.Name,
			Type:        meal.MealType,
			Calories:    meal.Calories,
			Protein:     meal.Protein,
			Carbs:       meal.Carbs,
			Fat:         meal.Fat,
			ScheduledAt: meal.ScheduledAt.Format(time.RFC3339),
			Completed:   meal.Completed,
		})
	}

	// The latest weight log wins; the profile weight is the fallback.
	currentWeight := 0.0
	weightLog, err := h.logs.LatestByType(ctx, userID, "WEIGHT")
	switch {
	case err == nil:
		currentWeight = weightLog.Value
	case errors.Is(err, repository.ErrNotFound):
		account, err := h.accounts.GetByID(ctx, userID)
		if err == nil && account.Weight != nil {
			currentWeight = *account.Weight
		}
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": dto.DashboardStats{
		TotalWorkouts: totalWorkouts,
		TotalMeals:    totalMeals,
		CurrentWeight: currentWeight,
		TodayCalories: todayCalories,
		CalorieGoal:   calorieGoal,
		TodaysMeals:   mealViews,
	}})
}
