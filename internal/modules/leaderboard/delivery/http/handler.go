package handler

import (
	"net/http"
	"strconv"

	leaderboard "github.com/Flexasaurusrex/art-claps-sub000/internal/modules/leaderboard/service"
	"github.com/Flexasaurusrex/art-claps-sub000/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

type LeaderboardHandler struct {
	service leaderboard.LeaderboardService
}

func NewLeaderboardHandler(service leaderboard.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	q := leaderboard.Query{
		Period: c.DefaultQuery("period", leaderboard.PeriodLifetime),
		Limit:  defaultLimit,
	}

	if raw := c.Query("currentUserFid"); raw != "" {
		fid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "currentUserFid must be a number"})
			return
		}
		q.CurrentUserFid = fid
	}
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			q.Limit = parsed
		}
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			q.Offset = parsed
		}
	}

	resp, err := h.service.Get(c.Request.Context(), q)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
