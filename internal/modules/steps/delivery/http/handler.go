package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	stepsDto "github.com/stepup-fit/stepup-server/internal/modules/steps/dto"
	steps "github.com/stepup-fit/stepup-server/internal/modules/steps/service"
	"github.com/stepup-fit/stepup-server/pkg/response"
	"github.com/stepup-fit/stepup-server/pkg/validator"
)

type StepsHandler struct {
	service steps.StepsService
}

func NewStepsHandler(service steps.StepsService) *StepsHandler {
	return &StepsHandler{service: service}
}

// SubmitSteps handles POST /api/steps
func (h *StepsHandler) SubmitSteps(c *gin.Context) {
	var input stepsDto.SubmitStepsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.SubmitSteps(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListSteps handles GET /api/steps?userUid=...
func (h *StepsHandler) ListSteps(c *gin.Context) {
	userUID := c.Query("userUid")
	if userUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userUid query parameter is required"})
		return
	}

	logs, err := h.service.ListSteps(c.Request.Context(), userUID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
