package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	workoutDto "github.com/stepup-fit/stepup-server/internal/modules/workout/dto"
	workout "github.com/stepup-fit/stepup-server/internal/modules/workout/service"
	"github.com/stepup-fit/stepup-server/pkg/response"
	"github.com/stepup-fit/stepup-server/pkg/validator"
)

type WorkoutHandler struct {
	service workout.WorkoutService
}

func NewWorkoutHandler(service workout.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

// SubmitLog handles POST /api/workouts/log.
func (h *WorkoutHandler) SubmitLog(c *gin.Context) {
	var req workoutDto.SubmitLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.SubmitLog(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, workoutDto.SubmitLogResponse{
		Message: "workout log saved",
		ID:      result.ID,
		Mode:    result.Mode,
	})
}

// ListLogs handles GET /api/workouts/logs?userUid=...
func (h *WorkoutHandler) ListLogs(c *gin.Context) {
	userUID := c.Query("userUid")
	if userUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userUid query parameter is required"})
		return
	}

	rows, err := h.service.ListLogs(c.Request.Context(), userUID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GetLog handles GET /api/workouts/logs/:id.
func (h *WorkoutHandler) GetLog(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	row, err := h.service.GetLog(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

// DeleteLog handles POST /api/workouts/delete.
func (h *WorkoutHandler) DeleteLog(c *gin.Context) {
	var req workoutDto.DeleteLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	if err := h.service.DeleteLog(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "workout log deleted"})
}

// Best handles GET /api/workouts/best?userUid=...&exercise=...&difficulty=...
// It returns the personal best the tracker compares a fresh score against.
func (h *WorkoutHandler) Best(c *gin.Context) {
	userUID := c.Query("userUid")
	exercise := c.Query("exercise")
	difficulty := c.Query("difficulty")
	if userUID == "" || exercise == "" || difficulty == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userUid, exercise and difficulty query parameters are required"})
		return
	}

	best, err := h.service.BestLog(c.Request.Context(), userUID, exercise, difficulty)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp := workoutDto.BestLogResponse{
		Exercise:   exercise,
		Difficulty: difficulty,
	}
	if best != nil {
		resp.Score = best.Score
		reps := best.Reps
		resp.Reps = &reps
		idStr := best.ID.String()
		resp.LogID = &idStr
	}

	c.JSON(http.StatusOK, resp)
}
