package models

import "time"

// PlayerStats is one player's running totals within a match. The player
// set is fixed at match creation; only the point counters move.
type PlayerStats struct {
	PlayerID     string `json:"playerId" db:"player_id"`
	PlayerName   string `json:"playerName" db:"player_name"`
	RaidPoints   int    `json:"raidPoints" db:"raid_points"`
	TacklePoints int    `json:"tacklePoints" db:"tackle_points"`
}

// MatchStats is the per-player companion of a Match.
type MatchStats struct {
	MatchID   string        `json:"matchId" db:"match_id"`
	Team1Name string        `json:"team1Name" db:"team1_name"`
	Team2Name string        `json:"team2Name" db:"team2_name"`
	Team1     []PlayerStats `json:"team1"`
	Team2     []PlayerStats `json:"team2"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}

// PlayerMatchStats is one player's line in one match, for career views.
type PlayerMatchStats struct {
	MatchID      string      `json:"matchId" db:"match_id"`
	Team1Name    string      `json:"team1Name" db:"team1_name"`
	Team2Name    string      `json:"team2Name" db:"team2_name"`
	Status       MatchStatus `json:"status" db:"status"`
	MatchDate    time.Time   `json:"matchDate" db:"match_date"`
	TeamNo       int         `json:"teamNo" db:"team_no"`
	RaidPoints   int         `json:"raidPoints" db:"raid_points"`
	TacklePoints int         `json:"tacklePoints" db:"tackle_points"`
}

type PointType string

const (
	PointTypeRaid      PointType = "RAID_POINT"
	PointTypeTackle    PointType = "TACKLE_POINT"
	PointTypeBonus     PointType = "BONUS_POINT"
	PointTypeTechnical PointType = "TECHNICAL_POINT"
	PointTypeAllOut    PointType = "ALL_OUT_POINT"
)

// ScoreEvent is a transient request to apply points; it is never
// persisted as its own entity.
type ScoreEvent struct {
	PlayerID  string    `json:"playerId"`
	TeamName  string    `json:"teamName"`
	PointType PointType `json:"pointType" binding:"required"`
	Points    int       `json:"points"`
}
