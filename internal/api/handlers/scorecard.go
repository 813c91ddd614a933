package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kowshikmeda/KabaddiBackend/internal/models"
	"github.com/kowshikmeda/KabaddiBackend/internal/service"
	"github.com/kowshikmeda/KabaddiBackend/pkg/logger"
)

type ScorecardHandler struct {
	statsService *service.StatsService
}

func NewScorecardHandler(statsService *service.StatsService) *ScorecardHandler {
	return &ScorecardHandler{statsService: statsService}
}

// scoreErrorResponse maps score-ledger failures to an HTTP status and
// client message. An event naming a player absent from both rosters is
// a 404, same as a missing match.
func scoreErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrPlayerNotFound):
		return http.StatusNotFound, "Player not found in this match"
	case errors.Is(err, service.ErrMatchNotFound), errors.Is(err, service.ErrStatsNotFound):
		return http.StatusNotFound, "Match not found"
	case errors.Is(err, service.ErrNotAuthorized):
		return http.StatusForbidden, "Only the match creator can score it"
	case errors.Is(err, service.ErrInvalidPointType),
		errors.Is(err, service.ErrTeamNotResolved),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Failed to update score"
	}
}

// UpdateScore records one scoring event against a live match and fans
// the result out to the match room.
func (h *ScorecardHandler) UpdateScore(c *gin.Context) {
	userID := c.GetString("userId")
	matchID := c.Param("id")

	var event models.ScoreEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := h.statsService.UpdateStats(c.Request.Context(), matchID, userID, event)
	if err != nil {
		status, message := scoreErrorResponse(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update score",
				"matchId", matchID, "error", err)
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Score updated",
		"data":    stats,
	})
}

// GetScorecard returns the full scorecard (match head plus per-player
// stats), reconciled against the clock.
func (h *ScorecardHandler) GetScorecard(c *gin.Context) {
	matchID := c.Param("id")

	scorecard, err := h.statsService.GetScorecard(matchID)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) || errors.Is(err, service.ErrStatsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scorecard"})
		return
	}

	c.JSON(http.StatusOK, scorecard)
}

// GetLiveScorecard returns the scorer-facing projection of a match, the
// same shape the matchUpdated event carries, reconciled against the
// clock.
func (h *ScorecardHandler) GetLiveScorecard(c *gin.Context) {
	matchID := c.Param("id")

	scorecard, err := h.statsService.GetScorecard(matchID)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) || errors.Is(err, service.ErrStatsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scorecard"})
		return
	}

	c.JSON(http.StatusOK, service.BuildMatchSnapshot(scorecard.Match, scorecard.Stats))
}

// GetScorecardSummary returns team point totals only, for list views.
func (h *ScorecardHandler) GetScorecardSummary(c *gin.Context) {
	matchID := c.Param("matchId")

	summary, err := h.statsService.GetScorecardSummary(matchID)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) || errors.Is(err, service.ErrStatsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
