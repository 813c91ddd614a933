package models

import "time"

// Commentary is an append-only timestamped log line tied to a match.
type Commentary struct {
	ID         string    `json:"id" db:"id"`
	MatchID    string    `json:"matchId" db:"match_id"`
	Commentary string    `json:"commentary" db:"commentary"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
