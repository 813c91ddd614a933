package models

import "time"

type MatchStatus string

const (
	MatchStatusUpcoming  MatchStatus = "upcoming"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusPaused    MatchStatus = "paused"
	MatchStatusCompleted MatchStatus = "completed"
)

// Match is one scheduled, ongoing or finished contest.
//
// RemainingDuration is stored in seconds and is authoritative at rest.
// While the match is live it is the remaining time as of MatchStartTime,
// not the current instant; readers apply wall-clock correction.
type Match struct {
	ID                string      `json:"id" db:"id"`
	Team1Name         string      `json:"team1Name" db:"team1_name"`
	Team2Name         string      `json:"team2Name" db:"team2_name"`
	Team1Score        int         `json:"team1Score" db:"team1_score"`
	Team2Score        int         `json:"team2Score" db:"team2_score"`
	Team1Photo        *string     `json:"team1Photo,omitempty" db:"team1_photo"`
	Team2Photo        *string     `json:"team2Photo,omitempty" db:"team2_photo"`
	Status            MatchStatus `json:"status" db:"status"`
	MatchDate         time.Time   `json:"matchDate" db:"match_date"`
	Venue             string      `json:"venue" db:"venue"`
	CreatedBy         string      `json:"createdBy" db:"created_by"`
	TotalDuration     int         `json:"totalDuration" db:"total_duration"`         // minutes, immutable
	RemainingDuration int         `json:"remainingDuration" db:"remaining_duration"` // seconds
	MatchStartTime    *time.Time  `json:"matchStartTime,omitempty" db:"match_start_time"`
	MatchPauseTime    *time.Time  `json:"matchPauseTime,omitempty" db:"match_pause_time"`
	CreatedAt         time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time   `json:"updatedAt" db:"updated_at"`
}
