package service

import (
	"fmt"
	"time"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
	"github.com/kowshikmeda/KabaddiBackend/internal/repository"
	"github.com/kowshikmeda/KabaddiBackend/pkg/logger"
)

type MatchService struct {
	matchRepo      *repository.MatchRepository
	statsRepo      *repository.MatchStatsRepository
	commentaryRepo *repository.CommentaryRepository
	reconciler     *ReadReconciler
	clock          MatchClock
	broadcaster    Broadcaster
}

func NewMatchService(
	matchRepo *repository.MatchRepository,
	statsRepo *repository.MatchStatsRepository,
	commentaryRepo *repository.CommentaryRepository,
	reconciler *ReadReconciler,
	broadcaster Broadcaster,
) *MatchService {
	return &MatchService{
		matchRepo:      matchRepo,
		statsRepo:      statsRepo,
		commentaryRepo: commentaryRepo,
		reconciler:     reconciler,
		clock:          NewMatchClock(),
		broadcaster:    broadcaster,
	}
}

const DefaultMatchDurationMinutes = 40

type CreateMatchParams struct {
	Team1Name     string
	Team2Name     string
	Venue         string
	MatchDate     time.Time
	TotalDuration int // minutes
	Team1Players  []string
	Team2Players  []string
	Team1Photo    *string
	Team2Photo    *string
}

// Create sets up a match in the upcoming state together with its fixed
// rosters. RemainingDuration is seeded with the full playable time in
// seconds.
func (s *MatchService) Create(createdBy string, p CreateMatchParams) (*models.Match, *models.MatchStats, error) {
	if p.Team1Name == "" || p.Team2Name == "" || p.Venue == "" {
		return nil, nil, ErrInvalidInput
	}

	duration := p.TotalDuration
	if duration <= 0 {
		duration = DefaultMatchDurationMinutes
	}

	match, err := s.matchRepo.Create(&models.Match{
		Team1Name:         p.Team1Name,
		Team2Name:         p.Team2Name,
		Team1Photo:        p.Team1Photo,
		Team2Photo:        p.Team2Photo,
		MatchDate:         p.MatchDate,
		Venue:             p.Venue,
		CreatedBy:         createdBy,
		TotalDuration:     duration,
		RemainingDuration: duration * 60,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create match: %w", err)
	}

	if err := s.statsRepo.CreateRosters(match.ID, p.Team1Players, p.Team2Players); err != nil {
		return nil, nil, fmt.Errorf("failed to create rosters: %w", err)
	}

	stats, err := s.statsRepo.FindByMatchID(match.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rosters: %w", err)
	}

	logger.Info("Match created",
		"matchId", match.ID,
		"team1", match.Team1Name,
		"team2", match.Team2Name,
		"venue", match.Venue,
		"totalDuration", match.TotalDuration,
	)

	return match, stats, nil
}

// GetByID fetches one match with live timing reconciled.
func (s *MatchService) GetByID(id string) (*models.Match, error) {
	match, err := s.matchRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, ErrMatchNotFound
	}

	s.reconciler.Reconcile(match)

	return match, nil
}

// List pages through matches, newest first, with live timing reconciled
// on every row.
func (s *MatchService) List(status, createdBy string, page, pageSize int) ([]*models.Match, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	offset := (page - 1) * pageSize

	matches, err := s.matchRepo.FindAll(status, createdBy, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list matches: %w", err)
	}

	total, err := s.matchRepo.Count(status, createdBy)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count matches: %w", err)
	}

	s.reconciler.ReconcileAll(matches)

	return matches, total, nil
}

// UpdateStatus runs one lifecycle action (start/pause/resume/end)
// against a match and broadcasts the resulting snapshot to the match
// room. Precondition violations mutate nothing.
func (s *MatchService) UpdateStatus(actionType, matchID, userID string) (*models.Match, error) {
	// Reject unknown action names before touching storage.
	if !IsValidAction(actionType) {
		return nil, ErrInvalidAction
	}

	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find match: %w", err)
	}
	if match == nil {
		return nil, ErrMatchNotFound
	}

	if match.CreatedBy != userID {
		return nil, ErrNotAuthorized
	}

	now := time.Now()
	upd, err := computeTransition(match, actionType, now, s.clock)
	if err != nil {
		return nil, err
	}

	updated, err := s.matchRepo.UpdateTransition(matchID, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to apply transition: %w", err)
	}
	if updated == nil {
		return nil, ErrMatchNotFound
	}

	logger.Info("Match status updated",
		"matchId", matchID,
		"action", actionType,
		"status", updated.Status,
		"remainingDuration", updated.RemainingDuration,
	)

	s.broadcastSnapshot(updated)

	return updated, nil
}

// ListCommentary returns a match's commentary feed, newest first.
func (s *MatchService) ListCommentary(matchID string) ([]*models.Commentary, error) {
	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find match: %w", err)
	}
	if match == nil {
		return nil, ErrMatchNotFound
	}

	commentaries, err := s.commentaryRepo.FindByMatchID(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list commentary: %w", err)
	}

	return commentaries, nil
}

// broadcastSnapshot pushes the canonical matchUpdated projection to the
// match room, exactly once per successful transition.
func (s *MatchService) broadcastSnapshot(match *models.Match) {
	stats, err := s.statsRepo.FindByMatchID(match.ID)
	if err != nil {
		logger.Error("Failed to load stats for broadcast",
			"matchId", match.ID,
			"error", err,
		)
	}

	s.broadcaster.BroadcastToMatch(match.ID, EventMatchUpdated, BuildMatchSnapshot(match, stats))
}
