package service

import (
	"testing"
	"time"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
)

func TestBuildPlayerProfile(t *testing.T) {
	photo := "/storage/photos/arjun.png"
	user := &models.User{ID: "p1", Name: "Arjun", Photo: &photo}

	recent := []*models.PlayerMatchStats{
		{
			MatchID:      "m2",
			Team1Name:    "Falcons",
			Team2Name:    "Panthers",
			Status:       models.MatchStatusCompleted,
			MatchDate:    time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
			TeamNo:       1,
			RaidPoints:   7,
			TacklePoints: 2,
		},
		{
			MatchID:    "m1",
			Team1Name:  "Falcons",
			Team2Name:  "Titans",
			Status:     models.MatchStatusCompleted,
			MatchDate:  time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
			TeamNo:     2,
			RaidPoints: 4,
		},
	}

	profile := buildPlayerProfile(user, 23, 9, 6, recent)

	if profile.ID != "p1" || profile.Name != "Arjun" {
		t.Errorf("identity = %s/%s, want p1/Arjun", profile.ID, profile.Name)
	}
	if profile.Photo == nil || *profile.Photo != photo {
		t.Errorf("photo = %v, want %q", profile.Photo, photo)
	}
	if profile.MatchesPlayed != 6 {
		t.Errorf("matchesPlayed = %d, want 6", profile.MatchesPlayed)
	}
	if profile.TotalRaidPoints != 23 || profile.TotalTacklePoints != 9 {
		t.Errorf("totals = %d/%d, want 23/9", profile.TotalRaidPoints, profile.TotalTacklePoints)
	}
	if profile.TotalPoints != 32 {
		t.Errorf("totalPoints = %d, want 32", profile.TotalPoints)
	}
	if len(profile.RecentMatches) != 2 || profile.RecentMatches[0].MatchID != "m2" {
		t.Errorf("recentMatches = %v", profile.RecentMatches)
	}
}

func TestBuildPlayerProfileNoMatches(t *testing.T) {
	user := &models.User{ID: "p9", Name: "Kiran"}

	profile := buildPlayerProfile(user, 0, 0, 0, nil)

	if profile.TotalPoints != 0 || profile.MatchesPlayed != 0 {
		t.Errorf("empty career: totals = %d, played = %d", profile.TotalPoints, profile.MatchesPlayed)
	}
	if profile.RecentMatches == nil || len(profile.RecentMatches) != 0 {
		t.Error("recentMatches must be an empty slice, not nil")
	}
}
