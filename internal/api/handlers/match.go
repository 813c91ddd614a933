package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kowshikmeda/KabaddiBackend/internal/service"
	"github.com/kowshikmeda/KabaddiBackend/pkg/logger"
	"github.com/kowshikmeda/KabaddiBackend/pkg/storage"
)

type MatchHandler struct {
	matchService *service.MatchService
	storage      *storage.Storage
}

func NewMatchHandler(matchService *service.MatchService, store *storage.Storage) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		storage:      store,
	}
}

type CreateMatchRequest struct {
	Team1Name     string   `json:"team1Name" binding:"required"`
	Team2Name     string   `json:"team2Name" binding:"required"`
	Venue         string   `json:"venue" binding:"required"`
	MatchDate     string   `json:"matchDate"`
	TotalDuration int      `json:"totalDuration"`
	Team1Players  []string `json:"team1Players"`
	Team2Players  []string `json:"team2Players"`
}

// CreateMatch sets up a new match. Accepts JSON, or multipart form data
// when team photos are uploaded alongside the fixture fields.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	userID := c.GetString("userId")

	var params service.CreateMatchParams
	var savedPhotos []string
	var err error

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		params, savedPhotos, err = h.parseMultipartMatch(c)
	} else {
		params, err = parseJSONMatch(c)
	}
	// Without a match row the stored photos would be orphans.
	discardPhotos := func() {
		for _, path := range savedPhotos {
			if err := h.storage.DeleteFile(path); err != nil {
				logger.Warn("Failed to remove orphaned team photo", "path", path, "error", err)
			}
		}
	}

	if err != nil {
		discardPhotos()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, stats, err := h.matchService.Create(userID, params)
	if err != nil {
		discardPhotos()
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create match", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create match"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Match created",
		"data":    service.BuildMatchSnapshot(match, stats),
	})
}

func parseJSONMatch(c *gin.Context) (service.CreateMatchParams, error) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return service.CreateMatchParams{}, err
	}

	matchDate, err := parseMatchDate(req.MatchDate)
	if err != nil {
		return service.CreateMatchParams{}, err
	}

	return service.CreateMatchParams{
		Team1Name:     req.Team1Name,
		Team2Name:     req.Team2Name,
		Venue:         req.Venue,
		MatchDate:     matchDate,
		TotalDuration: req.TotalDuration,
		Team1Players:  req.Team1Players,
		Team2Players:  req.Team2Players,
	}, nil
}

// parseMultipartMatch reads the fixture fields and stores any uploaded
// team photos, returning the stored paths so a failed creation can
// clean them up.
func (h *MatchHandler) parseMultipartMatch(c *gin.Context) (service.CreateMatchParams, []string, error) {
	matchDate, err := parseMatchDate(c.PostForm("matchDate"))
	if err != nil {
		return service.CreateMatchParams{}, nil, err
	}

	duration := 0
	if raw := c.PostForm("totalDuration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			return service.CreateMatchParams{}, nil, errors.New("totalDuration must be a number")
		}
	}

	params := service.CreateMatchParams{
		Team1Name:     c.PostForm("team1Name"),
		Team2Name:     c.PostForm("team2Name"),
		Venue:         c.PostForm("venue"),
		MatchDate:     matchDate,
		TotalDuration: duration,
		Team1Players:  c.PostFormArray("team1Players"),
		Team2Players:  c.PostFormArray("team2Players"),
	}

	var savedPhotos []string

	if file, err := c.FormFile("team1Photo"); err == nil {
		path, err := h.storage.SaveTeamPhoto(file)
		if err != nil {
			return service.CreateMatchParams{}, savedPhotos, err
		}
		savedPhotos = append(savedPhotos, path)
		url := h.storage.GetFileURL(path)
		params.Team1Photo = &url
	}
	if file, err := c.FormFile("team2Photo"); err == nil {
		path, err := h.storage.SaveTeamPhoto(file)
		if err != nil {
			return service.CreateMatchParams{}, savedPhotos, err
		}
		savedPhotos = append(savedPhotos, path)
		url := h.storage.GetFileURL(path)
		params.Team2Photo = &url
	}

	return params, savedPhotos, nil
}

func parseMatchDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("matchDate must be RFC3339 or YYYY-MM-DD")
}

// ListMatches returns matches filtered by status and creator, paginated.
func (h *MatchHandler) ListMatches(c *gin.Context) {
	status := c.Query("status")
	createdBy := c.Query("createdBy")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	matches, total, err := h.matchService.List(status, createdBy, page, pageSize)
	if err != nil {
		logger.Error("Failed to list matches", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches":  matches,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// GetMatch returns one match with its clock corrected to the current
// moment.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id := c.Param("id")

	match, err := h.matchService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch match"})
		return
	}

	c.JSON(http.StatusOK, match)
}

// UpdateMatchStatus applies a lifecycle action (start, pause, resume,
// end) to a match.
func (h *MatchHandler) UpdateMatchStatus(c *gin.Context) {
	userID := c.GetString("userId")
	matchID := c.Param("id")
	action := c.Param("action")

	match, err := h.matchService.UpdateStatus(action, matchID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAction), errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		case errors.Is(err, service.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the match creator can update it"})
		default:
			logger.Error("Failed to update match status",
				"matchId", matchID, "action", action, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update match"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Match " + string(match.Status),
		"data":    match,
	})
}

// ListCommentary returns the match commentary feed, newest first.
func (h *MatchHandler) ListCommentary(c *gin.Context) {
	matchID := c.Param("id")

	lines, err := h.matchService.ListCommentary(matchID)
	if err != nil {
		if errors.Is(err, service.ErrMatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch commentary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"commentary": lines,
		"total":      len(lines),
	})
}
