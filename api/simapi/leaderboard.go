package simapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/micromouse-api/service/i"
	"github.com/gin-gonic/gin"
)

const defaultLeaderboardSize = 10

// LeaderboardController serves operator rankings over HTTP.
type LeaderboardController struct {
	leaderboard i.Leaderboard
}

// NewLeaderboardController initializes a LeaderboardController.
func NewLeaderboardController(lb i.Leaderboard) (*LeaderboardController, error) {
	return &LeaderboardController{
		leaderboard: lb,
	}, nil
}

// RegisterPublic registers public routes.
func (lc *LeaderboardController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard", lc.top)
}

// RegisterProtected registers protected routes.
func (lc *LeaderboardController) RegisterProtected(route *gin.RouterGroup) {}

// top returns the best-scoring operators, best first.
func (lc *LeaderboardController) top(ctx *gin.Context) {
	n := int64(defaultLeaderboardSize)
	if raw, ok := ctx.GetQuery("n"); ok {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "n must be a positive integer"})
			return
		}
		n = parsed
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	entries, err := lc.leaderboard.Top(timeoutCtx, n)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading leaderboard"})
		return
	}

	response := make([]LeaderboardEntryResponse, 0, len(entries))
	for rank, entry := range entries {
		response = append(response, LeaderboardEntryResponse{
			Rank:     rank + 1,
			Username: entry.Username,
			Score:    entry.Score,
		})
	}
	ctx.JSON(http.StatusOK, response)
}
