package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	leaderboard "github.com/stepup-fit/stepup-server/internal/modules/leaderboard/service"
	"github.com/stepup-fit/stepup-server/pkg/response"
)

type LeaderboardHandler struct {
	service leaderboard.LeaderboardService
}

func NewLeaderboardHandler(service leaderboard.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// Top handles GET /api/leaderboard?limit=20
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit > 100 {
		limit = 100
	}

	entries, err := h.service.Top(c.Request.Context(), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
