package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hefica/hefica-backend/internal/domain"
	"github.com/hefica/hefica-backend/internal/dto"
	"github.com/hefica/hefica-backend/internal/repository"
)

// ExerciseHandler serves the shared exercise catalog
type ExerciseHandler struct {
	exercises repository.ExerciseRepository
}

// NewExerciseHandler creates a new exercise handler
func NewExerciseHandler(exercises repository.ExerciseRepository) *ExerciseHandler {
	return &ExerciseHandler{exercises: exercises}
}

// List returns catalog entries filtered by category, equipment or a
// name search
// @Summary List exercises
// @Tags exercises
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category"
// @Param equipment query string false "Equipment"
// @Param search query string false "Name search"
// @Success 200 {object} map[string][]domain.Exercise
// @Router /exercises [get]
func (h *ExerciseHandler) List(c *gin.Context) {
	filter := repository.ExerciseFilter{
		Category:  c.Query("category"),
		Equipment: c.Query("equipment"),
		Search:    c.Query("search"),
	}

	exercises, err := h.exercises.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch exercises"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

// Create adds a catalog entry
// @Summary Create an exercise
// @Tags exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExerciseRequest true "Exercise"
// @Success 201 {object} map[string]domain.Exercise
// @Failure 400 {object} dto.ErrorResponse
// @Router /exercises [post]
func (h *ExerciseHandler) Create(c *gin.Context) {
	var req dto.CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Name and category are required"})
		return
	}

	exercise := &domain.Exercise{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		MuscleGroup:  req.MuscleGroup,
		Equipment:    req.Equipment,
		Instructions: req.Instructions,
	}

	if err := h.exercises.Create(c.Request.Context(), exercise); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "An exercise with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create exercise"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"exercise": exercise})
}

// Get returns one catalog entry
// @Summary Get an exercise
// @Tags exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} map[string]domain.Exercise
// @Failure 404 {object} dto.ErrorResponse
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) Get(c *gin.Context) {
	exercise, err := h.exercises.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Exercise not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch exercise"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exercise": exercise})
}

// Update applies catalog entry changes
// @Summary Update an exercise
// @Tags exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param request body dto.UpdateExerciseRequest true "Changes"
// @Success 200 {object} map[string]domain.Exercise
// @Failure 404 {object} dto.ErrorResponse
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) Update(c *gin.Context) {
	var req dto.UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	exercise, err := h.exercises.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Exercise not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch exercise"})
		return
	}

	if req.Name != nil {
		exercise.Name = *req.Name
	}
	if req.Description != nil {
		exercise.Description = req.Description
	}
	if req.Category != nil {
		exercise.Category = *req.Category
	}
	if req.MuscleGroup != nil {
		exercise.MuscleGroup = req.MuscleGroup
	}
	if req.Equipment != nil {
		exercise.Equipment = req.Equipment
	}
	if req.Instructions != nil {
		exercise.Instructions = req.Instructions
	}

	if err := h.exercises.Update(c.Request.Context(), exercise); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "An exercise with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update exercise"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exercise": exercise})
}

// Delete removes a catalog entry
// @Summary Delete an exercise
// @Tags exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) Delete(c *gin.Context) {
	err := h.exercises.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Exercise not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete exercise"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Exercise deleted successfully"})
}
