package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizlive/quizlive-backend/internal/response"
	"github.com/quizlive/quizlive-backend/internal/service"
)

// LeaderboardHandler exposes the all-time score list and the prize draw.
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Top godoc
// GET /api/v1/admin/leaderboard?limit=10
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	response.Success(c, http.StatusOK, gin.H{"players": h.leaderboard.Top(limit)})
}

// Reset godoc
// POST /api/v1/admin/leaderboard/reset
// Zeroes every all-time score.
func (h *LeaderboardHandler) Reset(c *gin.Context) {
	if err := h.leaderboard.Reset(); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// DrawPrizes godoc
// POST /api/v1/admin/prizes/draw?count=3
// Draws random winners from the top of the all-time list.
func (h *LeaderboardHandler) DrawPrizes(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "3"))
	if err != nil || count < 1 {
		count = 3
	}
	response.Success(c, http.StatusOK, gin.H{"winners": h.leaderboard.DrawWinners(count)})
}
