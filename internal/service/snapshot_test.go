package service

import (
	"testing"
	"time"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
)

func TestBuildMatchSnapshot(t *testing.T) {
	photo := "/storage/photos/falcons.png"
	matchDate := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	match := &models.Match{
		ID:                "m1",
		Team1Name:         "Falcons",
		Team2Name:         "River Panthers",
		Team1Score:        12,
		Team2Score:        9,
		Team1Photo:        &photo,
		Status:            models.MatchStatusLive,
		MatchDate:         matchDate,
		Venue:             "City Arena",
		RemainingDuration: 1800,
	}

	stats := &models.MatchStats{
		MatchID:   "m1",
		Team1Name: "Falcons",
		Team2Name: "River Panthers",
		Team1: []models.PlayerStats{
			{PlayerID: "p1", PlayerName: "Arjun", RaidPoints: 7, TacklePoints: 2},
		},
		Team2: []models.PlayerStats{
			{PlayerID: "p2", PlayerName: "Ravi", RaidPoints: 4, TacklePoints: 3},
		},
	}

	snapshot := BuildMatchSnapshot(match, stats)

	if snapshot.MatchName != "Falcons vs River Panthers" {
		t.Errorf("matchName = %q", snapshot.MatchName)
	}
	if snapshot.Status != "LIVE" {
		t.Errorf("status = %q, want LIVE", snapshot.Status)
	}
	if snapshot.Team1.Photo != photo {
		t.Errorf("team1 photo = %q, want uploaded photo", snapshot.Team1.Photo)
	}
	if snapshot.Team2.Photo != "https://ui-avatars.com/api/?name=River+Panthers&background=random" {
		t.Errorf("team2 photo fallback = %q", snapshot.Team2.Photo)
	}
	if snapshot.Team1.Score != 12 || snapshot.Team2.Score != 9 {
		t.Errorf("scores = (%d, %d), want (12, 9)", snapshot.Team1.Score, snapshot.Team2.Score)
	}
	if snapshot.RemainingDuration != 1800 {
		t.Errorf("remainingDuration = %d", snapshot.RemainingDuration)
	}
	if len(snapshot.Players.Team1) != 1 || snapshot.Players.Team1[0].Name != "Arjun" {
		t.Errorf("players.team1 = %+v", snapshot.Players.Team1)
	}
	if snapshot.Players.Team2[0].RaidPoints != 4 {
		t.Errorf("players.team2[0].raidPoints = %d, want 4", snapshot.Players.Team2[0].RaidPoints)
	}
}

func TestBuildMatchSnapshot_NilStats(t *testing.T) {
	match := &models.Match{
		ID:        "m2",
		Team1Name: "A",
		Team2Name: "B",
		Status:    models.MatchStatusUpcoming,
	}

	snapshot := BuildMatchSnapshot(match, nil)

	if snapshot.Players.Team1 == nil || snapshot.Players.Team2 == nil {
		t.Error("player lists must be empty slices, not nil, for JSON consumers")
	}
	if snapshot.Status != "UPCOMING" {
		t.Errorf("status = %q, want UPCOMING", snapshot.Status)
	}
}
