package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
	"github.com/kowshikmeda/KabaddiBackend/pkg/database"
)

type MatchRepository struct {
	db *database.DB
}

func NewMatchRepository(db *database.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `
	id, team1_name, team2_name, team1_score, team2_score,
	team1_photo, team2_photo, status, match_date, venue, created_by,
	total_duration, remaining_duration, match_start_time, match_pause_time,
	created_at, updated_at
`

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	match := &models.Match{}
	err := row.Scan(
		&match.ID,
		&match.Team1Name,
		&match.Team2Name,
		&match.Team1Score,
		&match.Team2Score,
		&match.Team1Photo,
		&match.Team2Photo,
		&match.Status,
		&match.MatchDate,
		&match.Venue,
		&match.CreatedBy,
		&match.TotalDuration,
		&match.RemainingDuration,
		&match.MatchStartTime,
		&match.MatchPauseTime,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return match, nil
}

// Create inserts a new match in the upcoming state. RemainingDuration is
// seeded from the configured total duration by the caller.
func (r *MatchRepository) Create(m *models.Match) (*models.Match, error) {
	query := `
		INSERT INTO matches (
			team1_name, team2_name, team1_photo, team2_photo,
			status, match_date, venue, created_by,
			total_duration, remaining_duration
		)
		VALUES ($1, $2, $3, $4, 'upcoming', $5, $6, $7, $8, $9)
		RETURNING ` + matchColumns

	match, err := scanMatch(r.db.QueryRow(query,
		m.Team1Name,
		m.Team2Name,
		m.Team1Photo,
		m.Team2Photo,
		m.MatchDate,
		m.Venue,
		m.CreatedBy,
		m.TotalDuration,
		m.RemainingDuration,
	))

	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return match, nil
}

// FindByID returns nil, nil when the match does not exist.
func (r *MatchRepository) FindByID(id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRow(query, id))

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find match: %w", err)
	}

	return match, nil
}

// FindAll lists matches, optionally filtered by status and creator,
// newest first.
func (r *MatchRepository) FindAll(status, createdBy string, limit, offset int) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR created_by::text = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(query, status, createdBy, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	return matches, nil
}

// Count returns the total number of matches for the same filters.
func (r *MatchRepository) Count(status, createdBy string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM matches
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR created_by::text = $2)
	`

	var total int
	if err := r.db.QueryRow(query, status, createdBy).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}

	return total, nil
}

// MatchTransitionUpdate carries the fields a lifecycle action changes.
// Nil pointers leave the stored value untouched.
type MatchTransitionUpdate struct {
	Status            models.MatchStatus
	RemainingDuration *int
	MatchStartTime    *time.Time
	MatchPauseTime    *time.Time
}

// UpdateTransition applies a lifecycle transition and returns the
// updated match.
func (r *MatchRepository) UpdateTransition(id string, upd MatchTransitionUpdate) (*models.Match, error) {
	query := `
		UPDATE matches
		SET status = $2,
		    remaining_duration = COALESCE($3, remaining_duration),
		    match_start_time = COALESCE($4, match_start_time),
		    match_pause_time = COALESCE($5, match_pause_time),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + matchColumns

	match, err := scanMatch(r.db.QueryRow(query,
		id,
		upd.Status,
		upd.RemainingDuration,
		upd.MatchStartTime,
		upd.MatchPauseTime,
	))

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update match transition: %w", err)
	}

	return match, nil
}

// MarkCompleted is the self-healing write issued when a read discovers an
// expired timer on a match still stored as live.
func (r *MatchRepository) MarkCompleted(id string) error {
	query := `
		UPDATE matches
		SET status = 'completed',
		    remaining_duration = 0,
		    updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to mark match completed: %w", err)
	}

	return nil
}

// IncrementTeamScoreTx atomically adds points to one team's aggregate
// score inside the score transaction.
func (r *MatchRepository) IncrementTeamScoreTx(tx *sql.Tx, matchID string, teamNo, points int) error {
	var query string
	switch teamNo {
	case 1:
		query = `UPDATE matches SET team1_score = team1_score + $1, updated_at = NOW() WHERE id = $2`
	case 2:
		query = `UPDATE matches SET team2_score = team2_score + $1, updated_at = NOW() WHERE id = $2`
	default:
		return fmt.Errorf("invalid team number: %d", teamNo)
	}

	if _, err := tx.Exec(query, points, matchID); err != nil {
		return fmt.Errorf("failed to increment team score: %w", err)
	}

	return nil
}
