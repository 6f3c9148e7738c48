package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	profileDto "github.com/stepup-fit/stepup-server/internal/modules/profile/dto"
	profile "github.com/stepup-fit/stepup-server/internal/modules/profile/service"
	"github.com/stepup-fit/stepup-server/pkg/response"
	"github.com/stepup-fit/stepup-server/pkg/validator"
)

type ProfileHandler struct {
	service profile.ProfileService
}

func NewProfileHandler(service profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetCurrentProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	resp, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) GetProfileByNickname(c *gin.Context) {
	nickname := c.Param("nickname")

	resp, err := h.service.GetByNickname(c.Request.Context(), nickname)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var input profileDto.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID := c.GetString("user_id")

	resp, err := h.service.Update(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProfileHandler) SubmitSurvey(c *gin.Context) {
	var input profileDto.SurveyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID := c.GetString("user_id")

	if err := h.service.SubmitSurvey(c.Request.Context(), userID, input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "survey saved"})
}
