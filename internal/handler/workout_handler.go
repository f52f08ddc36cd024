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

// WorkoutHandler serves the signed-in account's workouts
type WorkoutHandler struct {
	workouts repository.WorkoutRepository
}

// NewWorkoutHandler creates a new workout handler
func NewWorkoutHandler(workouts repository.WorkoutRepository) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

// List returns the account's workouts, optionally filtered by type and
// active flag
// @Summary List workouts
// @Tags workouts
// @Produce json
// @Security BearerAuth
// @Param type query string false "Workout type"
// @Param active query string false "Filter by active flag (true/false)"
// @Success 200 {object} map[string][]domain.Workout
// @Router /workouts [get]
func (h *WorkoutHandler) List(c *gin.Context) {
	filter := repository.WorkoutFilter{
		WorkoutType: c.Query("type"),
	}
	switch c.Query("active") {
	case "true":
		active := true
		filter.Active = &active
	case "false":
		active := false
		filter.Active = &active
	}

	workouts, err := h.workouts.ListByUser(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch workouts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}

// Create adds a workout with its exercise prescriptions
// @Summary Create a workout
// @Tags workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateWorkoutRequest true "Workout"
// @Success 201 {object} map[string]domain.Workout
// @Failure 400 {object} dto.ErrorResponse
// @Router /workouts [post]
func (h *WorkoutHandler) Create(c *gin.Context) {
	var req dto.CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Name and workout type are required"})
		return
	}

	workout := &domain.Workout{
		UserID:      currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
		WorkoutType: req.WorkoutType,
		Duration:    req.Duration,
		IsActive:    true,
		StartDate:   time.Now(),
	}
	if req.IsActive != nil {
		workout.IsActive = *req.IsActive
	}
	if req.StartDate != nil {
		workout.StartDate = *req.StartDate
	}
	for _, input := range req.Exercises {
		workout.Exercises = append(workout.Exercises, domain.WorkoutExercise{
			ExerciseID: input.ExerciseID,
			Sets:       input.Sets,
			Reps:       input.Reps,
			Weight:     input.Weight,
			Duration:   input.Duration,
			Distance:   input.Distance,
			RestTime:   input.RestTime,
		})
	}

	if err := h.workouts.Create(c.Request.Context(), workout); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create workout"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"workout": workout})
}

// Get returns one workout by id
// @Summary Get a workout
// @Tags workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} map[string]domain.Workout
// @Failure 404 {object} dto.ErrorResponse
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) Get(c *gin.Context) {
	workout, err := h.workouts.GetByID(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Workout not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch workout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workout": workout})
}

// Update applies workout changes
// @Summary Update a workout
// @Tags workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param request body dto.UpdateWorkoutRequest true "Changes"
// @Success 200 {object} map[string]domain.Workout
// @Failure 404 {object} dto.ErrorResponse
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) Update(c *gin.Context) {
	var req dto.UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	workout, err := h.workouts.GetByID(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Workout not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch workout"})
		return
	}

	if req.Name != nil {
		workout.Name = *req.Name
	}
	if req.Description != nil {
		workout.Description = req.Description
	}
	if req.WorkoutType != nil {
		workout.WorkoutType = *req.WorkoutType
	}
	if req.Duration != nil {
		workout.Duration = req.Duration
	}
	if req.IsActive != nil {
		workout.IsActive = *req.IsActive
	}
	if req.EndDate != nil {
		workout.EndDate = req.EndDate
	}

	if err := h.workouts.Update(c.Request.Context(), workout); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update workout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workout": workout})
}

// Delete removes a workout
// @Summary Delete a workout
// @Tags workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) Delete(c *gin.Context) {
	err := h.workouts.Delete(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Workout not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete workout"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Workout deleted successfully"})
}
