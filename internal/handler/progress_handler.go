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

// ProgressHandler serves the signed-in account's progress logs
type ProgressHandler struct {
	logs repository.ProgressLogRepository
}

// NewProgressHandler creates a new progress log handler
func NewProgressHandler(logs repository.ProgressLogRepository) *ProgressHandler {
	return &ProgressHandler{logs: logs}
}

// List returns the account's progress logs
// @Summary List progress logs
// @Tags progress-logs
// @Produce json
// @Security BearerAuth
// @Param type query string false "Log type"
// @Param from query string false "Logged from (RFC 3339)"
// @Param to query string false "Logged to (RFC 3339)"
// @Success 200 {object} map[string][]domain.ProgressLog
// @Router /progress-logs [get]
func (h *ProgressHandler) List(c *gin.Context) {
	filter := repository.ProgressLogFilter{
		LogType: c.Query("type"),
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

	logs, err := h.logs.ListByUser(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch progress logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progressLogs": logs})
}

// Create adds a progress log entry
// @Summary Create a progress log
// @Tags progress-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProgressLogRequest true "Progress log"
// @Success 201 {object} map[string]domain.ProgressLog
// @Failure 400 {object} dto.ErrorResponse
// @Router /progress-logs [post]
func (h *ProgressHandler) Create(c *gin.Context) {
	var req dto.CreateProgressLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Log type, value and unit are required"})
		return
	}

	log := &domain.ProgressLog{
		UserID:  currentUserID(c),
		LogType: req.LogType,
		Value:   *req.Value,
		Unit:    req.Unit,
		Notes:   req.Notes,
		LogDate: time.Now(),
	}
	if req.LogDate != nil {
		log.LogDate = *req.LogDate
	}

	if err := h.logs.Create(c.Request.Context(), log); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create progress log"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"progressLog": log})
}

// Get returns one progress log
// @Summary Get a progress log
// @Tags progress-logs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Progress log ID"
// @Success 200 {object} map[string]domain.ProgressLog
// @Failure 404 {object} dto.ErrorResponse
// @Router /progress-logs/{id} [get]
func (h *ProgressHandler) Get(c *gin.Context) {
	log, err := h.logs.GetByID(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Progress log not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch progress log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progressLog": log})
}

// Update applies progress log changes
// @Summary Update a progress log
// @Tags progress-logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Progress log ID"
// @Param request body dto.UpdateProgressLogRequest true "Changes"
// @Success 200 {object} map[string]domain.ProgressLog
// @Failure 404 {object} dto.ErrorResponse
// @Router /progress-logs/{id} [put]
func (h *ProgressHandler) Update(c *gin.Context) {
	var req dto.UpdateProgressLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	log, err := h.logs.GetByID(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Progress log not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch progress log"})
		return
	}

	if req.LogType != nil {
		log.LogType = *req.LogType
	}
	if req.Value != nil {
		log.Value = *req.Value
	}
	if req.Unit != nil {
		log.Unit = *req.Unit
	}
	if req.Notes != nil {
		log.Notes = req.Notes
	}
	if req.LogDate != nil {
		log.LogDate = *req.LogDate
	}

	if err := h.logs.Update(c.Request.Context(), log); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update progress log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progressLog": log})
}

// Delete removes a progress log
// @Summary Delete a progress log
// @Tags progress-logs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Progress log ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /progress-logs/{id} [delete]
func (h *ProgressHandler) Delete(c *gin.Context) {
	err := h.logs.Delete(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Progress log not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete progress log"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Progress log deleted successfully"})
}
