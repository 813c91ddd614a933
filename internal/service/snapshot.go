package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
)

// Event names pushed over the realtime channel.
const (
	EventMatchUpdated  = "matchUpdated"
	EventNewCommentary = "newCommentary"
)

// Broadcaster pushes realtime events to a match's subscribers.
type Broadcaster interface {
	BroadcastToMatch(matchID, event string, payload interface{})
}

type TeamSnapshot struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
	Score int    `json:"score"`
}

type PlayerSnapshot struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RaidPoints   int    `json:"raidPoints"`
	TacklePoints int    `json:"tacklePoints"`
}

type TeamPlayers struct {
	Team1 []PlayerSnapshot `json:"team1"`
	Team2 []PlayerSnapshot `json:"team2"`
}

// MatchSnapshot is the canonical matchUpdated payload: Match and
// MatchStats combined into one projection for subscribers. Never
// persisted.
type MatchSnapshot struct {
	ID                string       `json:"id"`
	MatchName         string       `json:"matchName"`
	Team1             TeamSnapshot `json:"team1"`
	Team2             TeamSnapshot `json:"team2"`
	Status            string       `json:"status"`
	RemainingDuration int          `json:"remainingDuration"`
	Venue             string       `json:"venue"`
	Date              time.Time    `json:"date"`
	Players           TeamPlayers  `json:"players"`
}

// NewCommentaryPayload is the newCommentary event body.
type NewCommentaryPayload struct {
	MatchID    string    `json:"matchId"`
	Commentary string    `json:"commentary"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BuildMatchSnapshot assembles the broadcast projection from a match and
// its stats. Stats may be nil when no rosters exist yet.
func BuildMatchSnapshot(match *models.Match, stats *models.MatchStats) *MatchSnapshot {
	snapshot := &MatchSnapshot{
		ID:        match.ID,
		MatchName: fmt.Sprintf("%s vs %s", match.Team1Name, match.Team2Name),
		Team1: TeamSnapshot{
			Name:  match.Team1Name,
			Photo: teamPhotoURL(match.Team1Name, match.Team1Photo),
			Score: match.Team1Score,
		},
		Team2: TeamSnapshot{
			Name:  match.Team2Name,
			Photo: teamPhotoURL(match.Team2Name, match.Team2Photo),
			Score: match.Team2Score,
		},
		Status:            strings.ToUpper(string(match.Status)),
		RemainingDuration: match.RemainingDuration,
		Venue:             match.Venue,
		Date:              match.MatchDate,
		Players: TeamPlayers{
			Team1: []PlayerSnapshot{},
			Team2: []PlayerSnapshot{},
		},
	}

	if stats != nil {
		snapshot.Players.Team1 = playerSnapshots(stats.Team1)
		snapshot.Players.Team2 = playerSnapshots(stats.Team2)
	}

	return snapshot
}

func playerSnapshots(players []models.PlayerStats) []PlayerSnapshot {
	out := make([]PlayerSnapshot, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerSnapshot{
			ID:           p.PlayerID,
			Name:         p.PlayerName,
			RaidPoints:   p.RaidPoints,
			TacklePoints: p.TacklePoints,
		})
	}
	return out
}

// teamPhotoURL falls back to a generated avatar when no photo was
// uploaded for the team.
func teamPhotoURL(teamName string, photo *string) string {
	if photo != nil && *photo != "" {
		return *photo
	}
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random",
		strings.Join(strings.Fields(teamName), "+"))
}
