package repository

import (
	"database/sql"
	"fmt"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
	"github.com/kowshikmeda/KabaddiBackend/pkg/database"
)

// MatchStatsRepository stores per-player match totals as individual rows
// so point updates are single-row atomic increments rather than a
// whole-roster rewrite.
type MatchStatsRepository struct {
	db *database.DB
}

func NewMatchStatsRepository(db *database.DB) *MatchStatsRepository {
	return &MatchStatsRepository{db: db}
}

// CreateRosters inserts the zeroed stat rows for both team rosters. The
// player set is fixed here and never changes afterwards.
func (r *MatchStatsRepository) CreateRosters(matchID string, team1IDs, team2IDs []string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin roster transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO match_players (match_id, player_id, team_no, position, raid_points, tackle_points)
		VALUES ($1, $2, $3, $4, 0, 0)
	`

	for i, playerID := range team1IDs {
		if _, err := tx.Exec(query, matchID, playerID, 1, i); err != nil {
			return fmt.Errorf("failed to insert team1 player: %w", err)
		}
	}
	for i, playerID := range team2IDs {
		if _, err := tx.Exec(query, matchID, playerID, 2, i); err != nil {
			return fmt.Errorf("failed to insert team2 player: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rosters: %w", err)
	}

	return nil
}

// FindByMatchID loads both rosters with player names resolved. Returns
// nil, nil when the match has no stats.
func (r *MatchStatsRepository) FindByMatchID(matchID string) (*models.MatchStats, error) {
	headQuery := `
		SELECT id, team1_name, team2_name, created_at, updated_at
		FROM matches
		WHERE id = $1
	`

	stats := &models.MatchStats{}
	err := r.db.QueryRow(headQuery, matchID).Scan(
		&stats.MatchID,
		&stats.Team1Name,
		&stats.Team2Name,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find match stats: %w", err)
	}

	playersQuery := `
		SELECT mp.player_id, u.name, mp.team_no, mp.raid_points, mp.tackle_points
		FROM match_players mp
		JOIN users u ON u.id = mp.player_id
		WHERE mp.match_id = $1
		ORDER BY mp.team_no, mp.position
	`

	rows, err := r.db.Query(playersQuery, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match players: %w", err)
	}
	defer rows.Close()

	stats.Team1 = []models.PlayerStats{}
	stats.Team2 = []models.PlayerStats{}

	for rows.Next() {
		var player models.PlayerStats
		var teamNo int
		if err := rows.Scan(&player.PlayerID, &player.PlayerName, &teamNo, &player.RaidPoints, &player.TacklePoints); err != nil {
			return nil, fmt.Errorf("failed to scan match player: %w", err)
		}
		if teamNo == 1 {
			stats.Team1 = append(stats.Team1, player)
		} else {
			stats.Team2 = append(stats.Team2, player)
		}
	}

	return stats, nil
}

// IncrementPlayerPointsTx bumps one player's raid or tackle counter
// inside the score transaction. Concurrent events on different players
// never contend; the same player is serialized by the row lock.
func (r *MatchStatsRepository) IncrementPlayerPointsTx(tx *sql.Tx, matchID, playerID string, raidDelta, tackleDelta int) error {
	query := `
		UPDATE match_players
		SET raid_points = raid_points + $1,
		    tackle_points = tackle_points + $2
		WHERE match_id = $3 AND player_id = $4
	`

	result, err := tx.Exec(query, raidDelta, tackleDelta, matchID, playerID)
	if err != nil {
		return fmt.Errorf("failed to increment player points: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check increment result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// FindMatchesByPlayerID lists the matches a player appeared in, newest
// first, with the player's line in each.
func (r *MatchStatsRepository) FindMatchesByPlayerID(playerID string, limit, offset int) ([]*models.PlayerMatchStats, error) {
	query := `
		SELECT mp.match_id, m.team1_name, m.team2_name, m.status, m.match_date,
		       mp.team_no, mp.raid_points, mp.tackle_points
		FROM match_players mp
		JOIN matches m ON m.id = mp.match_id
		WHERE mp.player_id = $1
		ORDER BY m.match_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, playerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query player matches: %w", err)
	}
	defer rows.Close()

	lines := []*models.PlayerMatchStats{}
	for rows.Next() {
		line := &models.PlayerMatchStats{}
		err := rows.Scan(
			&line.MatchID,
			&line.Team1Name,
			&line.Team2Name,
			&line.Status,
			&line.MatchDate,
			&line.TeamNo,
			&line.RaidPoints,
			&line.TacklePoints,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player match: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// CountMatchesByPlayerID counts the matches a player appeared in.
func (r *MatchStatsRepository) CountMatchesByPlayerID(playerID string) (int, error) {
	var total int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM match_players WHERE player_id = $1`,
		playerID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count player matches: %w", err)
	}
	return total, nil
}

// CareerTotals sums a player's raid and tackle points across every
// match they were rostered in.
func (r *MatchStatsRepository) CareerTotals(playerID string) (raidPoints, tacklePoints, matchesPlayed int, err error) {
	query := `
		SELECT COALESCE(SUM(raid_points), 0), COALESCE(SUM(tackle_points), 0), COUNT(*)
		FROM match_players
		WHERE player_id = $1
	`

	if err := r.db.QueryRow(query, playerID).Scan(&raidPoints, &tacklePoints, &matchesPlayed); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to sum career totals: %w", err)
	}
	return raidPoints, tacklePoints, matchesPlayed, nil
}
