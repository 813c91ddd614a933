package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
	"github.com/kowshikmeda/KabaddiBackend/internal/repository"
	"github.com/kowshikmeda/KabaddiBackend/pkg/database"
	"github.com/kowshikmeda/KabaddiBackend/pkg/distributed"
	"github.com/kowshikmeda/KabaddiBackend/pkg/logger"
)

const (
	scoreLockTTL      = 3 * time.Second
	scoreLockRetries  = 5
	scoreLockInterval = 100 * time.Millisecond
)

// StatsService is the score ledger: it applies point events to the
// per-player and per-team aggregates, derives commentary, and persists
// all of it in one transaction.
type StatsService struct {
	db             *database.DB
	matchRepo      *repository.MatchRepository
	statsRepo      *repository.MatchStatsRepository
	commentaryRepo *repository.CommentaryRepository
	lockManager    *distributed.RedisLockManager
	reconciler     *ReadReconciler
	broadcaster    Broadcaster
}

func NewStatsService(
	db *database.DB,
	matchRepo *repository.MatchRepository,
	statsRepo *repository.MatchStatsRepository,
	commentaryRepo *repository.CommentaryRepository,
	lockManager *distributed.RedisLockManager,
	reconciler *ReadReconciler,
	broadcaster Broadcaster,
) *StatsService {
	return &StatsService{
		db:             db,
		matchRepo:      matchRepo,
		statsRepo:      statsRepo,
		commentaryRepo: commentaryRepo,
		lockManager:    lockManager,
		reconciler:     reconciler,
		broadcaster:    broadcaster,
	}
}

// resolveScoreTarget finds the player the event names, searching team1
// then team2, and reports which team's aggregate score is affected
// (1 or 2, 0 when unresolved). Team-level events without a player fall
// back to an exact team-name match.
func resolveScoreTarget(stats *models.MatchStats, event models.ScoreEvent) (*models.PlayerStats, int) {
	if event.PlayerID != "" {
		for i := range stats.Team1 {
			if stats.Team1[i].PlayerID == event.PlayerID {
				return &stats.Team1[i], 1
			}
		}
		for i := range stats.Team2 {
			if stats.Team2[i].PlayerID == event.PlayerID {
				return &stats.Team2[i], 2
			}
		}
	}

	if event.TeamName != "" {
		if event.TeamName == stats.Team1Name {
			return nil, 1
		}
		if event.TeamName == stats.Team2Name {
			return nil, 2
		}
	}

	return nil, 0
}

// pointDeltas validates the event against the resolved target and
// returns the per-player counter increments. Team-only point types
// leave both deltas at zero.
func pointDeltas(event models.ScoreEvent, player *models.PlayerStats, teamNo int) (raidDelta, tackleDelta int, err error) {
	switch event.PointType {
	case models.PointTypeRaid:
		if player == nil {
			return 0, 0, ErrPlayerNotFound
		}
		return event.Points, 0, nil

	case models.PointTypeTackle:
		if player == nil {
			return 0, 0, ErrPlayerNotFound
		}
		return 0, event.Points, nil

	case models.PointTypeBonus, models.PointTypeTechnical, models.PointTypeAllOut:
		if teamNo == 0 {
			return 0, 0, ErrTeamNotResolved
		}
		return 0, 0, nil

	default:
		return 0, 0, ErrInvalidPointType
	}
}

// commentaryFor decides whether an applied event produces a commentary
// line. Zero-point events (empty raids and the like) never do; every
// positive-point event produces exactly one.
func commentaryFor(event models.ScoreEvent, teamName, playerName string) (string, bool) {
	if event.Points <= 0 {
		return "", false
	}
	return CommentaryLine(event.PointType, teamName, playerName, event.Points), true
}

// UpdateStats applies one score event. The team aggregate, the player's
// counters and the commentary line commit in a single transaction, and
// a per-match distributed lock serializes concurrent scorers so the
// broadcast snapshot is never torn.
func (s *StatsService) UpdateStats(ctx context.Context, matchID, userID string, event models.ScoreEvent) (*models.MatchStats, error) {
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

	if s.lockManager != nil {
		lock, err := s.lockManager.TryLockWithRetry(
			ctx,
			distributed.MatchScoreLockKey(matchID),
			uuid.New().String(),
			scoreLockTTL,
			scoreLockRetries,
			scoreLockInterval,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to lock match for scoring: %w", err)
		}
		defer func() {
			if err := lock.Release(context.Background()); err != nil {
				logger.Warn("Failed to release score lock", "matchId", matchID, "error", err)
			}
		}()
	}

	stats, err := s.statsRepo.FindByMatchID(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find match stats: %w", err)
	}
	if stats == nil {
		return nil, ErrStatsNotFound
	}

	player, teamNo := resolveScoreTarget(stats, event)

	raidDelta, tackleDelta, err := pointDeltas(event, player, teamNo)
	if err != nil {
		return nil, err
	}

	teamName := stats.Team1Name
	if teamNo == 2 {
		teamName = stats.Team2Name
	}

	playerName := ""
	if player != nil {
		playerName = player.PlayerName
	}

	var commentary *models.Commentary
	now := time.Now()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin score transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.matchRepo.IncrementTeamScoreTx(tx, matchID, teamNo, event.Points); err != nil {
		return nil, err
	}

	if player != nil {
		if err := s.statsRepo.IncrementPlayerPointsTx(tx, matchID, player.PlayerID, raidDelta, tackleDelta); err != nil {
			return nil, err
		}
	}

	if line, ok := commentaryFor(event, teamName, playerName); ok {
		commentary, err = s.commentaryRepo.InsertTx(tx, matchID, line, now)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit score transaction: %w", err)
	}

	logger.Info("Score event applied",
		"matchId", matchID,
		"pointType", event.PointType,
		"points", event.Points,
		"team", teamName,
	)

	updatedMatch, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload match: %w", err)
	}
	if updatedMatch == nil {
		return nil, ErrMatchNotFound
	}

	updatedStats, err := s.statsRepo.FindByMatchID(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload match stats: %w", err)
	}
	if updatedStats == nil {
		return nil, ErrStatsNotFound
	}

	s.broadcaster.BroadcastToMatch(matchID, EventMatchUpdated, BuildMatchSnapshot(updatedMatch, updatedStats))

	if commentary != nil {
		s.broadcaster.BroadcastToMatch(matchID, EventNewCommentary, NewCommentaryPayload{
			MatchID:    matchID,
			Commentary: commentary.Commentary,
			CreatedAt:  commentary.CreatedAt,
		})
	}

	return updatedStats, nil
}

// Scorecard is the full human-facing view of a match: the reconciled
// match plus both rosters.
type Scorecard struct {
	Match *models.Match      `json:"match"`
	Stats *models.MatchStats `json:"stats"`
}

// GetScorecard loads the full scorecard with live timing reconciled.
func (s *StatsService) GetScorecard(matchID string) (*Scorecard, error) {
	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find match: %w", err)
	}
	if match == nil {
		return nil, ErrStatsNotFound
	}

	stats, err := s.statsRepo.FindByMatchID(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find match stats: %w", err)
	}
	if stats == nil {
		return nil, ErrStatsNotFound
	}

	s.reconciler.Reconcile(match)

	return &Scorecard{Match: match, Stats: stats}, nil
}

type TeamSummary struct {
	TotalRaidPoints   int `json:"totalRaidPoints"`
	TotalTacklePoints int `json:"totalTacklePoints"`
	TotalPoints       int `json:"totalPoints"`
	PlayerCount       int `json:"playerCount"`
}

// ScorecardSummary aggregates each team's raid and tackle totals.
type ScorecardSummary struct {
	Match      *models.Match `json:"match"`
	Team1Name  string        `json:"team1Name"`
	Team2Name  string        `json:"team2Name"`
	Team1Stats TeamSummary   `json:"team1Stats"`
	Team2Stats TeamSummary   `json:"team2Stats"`
}

func summarizeTeam(players []models.PlayerStats) TeamSummary {
	summary := TeamSummary{PlayerCount: len(players)}
	for _, p := range players {
		summary.TotalRaidPoints += p.RaidPoints
		summary.TotalTacklePoints += p.TacklePoints
	}
	summary.TotalPoints = summary.TotalRaidPoints + summary.TotalTacklePoints
	return summary
}

// GetScorecardSummary returns the public aggregate view of a match.
func (s *StatsService) GetScorecardSummary(matchID string) (*ScorecardSummary, error) {
	scorecard, err := s.GetScorecard(matchID)
	if err != nil {
		return nil, err
	}

	return &ScorecardSummary{
		Match:      scorecard.Match,
		Team1Name:  scorecard.Stats.Team1Name,
		Team2Name:  scorecard.Stats.Team2Name,
		Team1Stats: summarizeTeam(scorecard.Stats.Team1),
		Team2Stats: summarizeTeam(scorecard.Stats.Team2),
	}, nil
}
