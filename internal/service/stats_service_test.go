package service

import (
	"errors"
	"testing"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
)

func rosterStats() *models.MatchStats {
	return &models.MatchStats{
		MatchID:   "m1",
		Team1Name: "Falcons",
		Team2Name: "Panthers",
		Team1: []models.PlayerStats{
			{PlayerID: "p1", PlayerName: "Arjun"},
			{PlayerID: "p2", PlayerName: "Kiran"},
		},
		Team2: []models.PlayerStats{
			{PlayerID: "p3", PlayerName: "Ravi"},
		},
	}
}

func TestResolveScoreTarget(t *testing.T) {
	stats := rosterStats()

	t.Run("player on team1", func(t *testing.T) {
		player, teamNo := resolveScoreTarget(stats, models.ScoreEvent{PlayerID: "p2"})
		if player == nil || player.PlayerName != "Kiran" || teamNo != 1 {
			t.Errorf("got (%v, %d), want (Kiran, 1)", player, teamNo)
		}
	})

	t.Run("player on team2", func(t *testing.T) {
		player, teamNo := resolveScoreTarget(stats, models.ScoreEvent{PlayerID: "p3"})
		if player == nil || player.PlayerName != "Ravi" || teamNo != 2 {
			t.Errorf("got (%v, %d), want (Ravi, 2)", player, teamNo)
		}
	})

	t.Run("unknown player falls back to team name", func(t *testing.T) {
		player, teamNo := resolveScoreTarget(stats, models.ScoreEvent{PlayerID: "ghost", TeamName: "Panthers"})
		if player != nil || teamNo != 2 {
			t.Errorf("got (%v, %d), want (nil, 2)", player, teamNo)
		}
	})

	t.Run("team name only", func(t *testing.T) {
		player, teamNo := resolveScoreTarget(stats, models.ScoreEvent{TeamName: "Falcons"})
		if player != nil || teamNo != 1 {
			t.Errorf("got (%v, %d), want (nil, 1)", player, teamNo)
		}
	})

	t.Run("nothing resolves", func(t *testing.T) {
		player, teamNo := resolveScoreTarget(stats, models.ScoreEvent{PlayerID: "ghost", TeamName: "Raptors"})
		if player != nil || teamNo != 0 {
			t.Errorf("got (%v, %d), want (nil, 0)", player, teamNo)
		}
	})
}

func TestPointDeltas(t *testing.T) {
	stats := rosterStats()
	player := &stats.Team1[0]

	tests := []struct {
		name        string
		event       models.ScoreEvent
		player      *models.PlayerStats
		teamNo      int
		wantRaid    int
		wantTackle  int
		wantErr     error
	}{
		{
			name:     "raid point goes to raid counter",
			event:    models.ScoreEvent{PointType: models.PointTypeRaid, Points: 5},
			player:   player,
			teamNo:   1,
			wantRaid: 5,
		},
		{
			name:       "tackle point goes to tackle counter",
			event:      models.ScoreEvent{PointType: models.PointTypeTackle, Points: 2},
			player:     player,
			teamNo:     1,
			wantTackle: 2,
		},
		{
			name:    "raid without a player",
			event:   models.ScoreEvent{PointType: models.PointTypeRaid, Points: 1},
			teamNo:  1,
			wantErr: ErrPlayerNotFound,
		},
		{
			name:    "tackle without a player",
			event:   models.ScoreEvent{PointType: models.PointTypeTackle, Points: 1},
			teamNo:  2,
			wantErr: ErrPlayerNotFound,
		},
		{
			name:   "bonus touches no player counters",
			event:  models.ScoreEvent{PointType: models.PointTypeBonus, Points: 1},
			teamNo: 1,
		},
		{
			name:   "technical touches no player counters",
			event:  models.ScoreEvent{PointType: models.PointTypeTechnical, Points: 1},
			teamNo: 2,
		},
		{
			name:   "all-out touches no player counters",
			event:  models.ScoreEvent{PointType: models.PointTypeAllOut, Points: 2},
			teamNo: 1,
		},
		{
			name:    "bonus without a resolved team",
			event:   models.ScoreEvent{PointType: models.PointTypeBonus, Points: 1},
			teamNo:  0,
			wantErr: ErrTeamNotResolved,
		},
		{
			name:    "unknown point type",
			event:   models.ScoreEvent{PointType: "SUPER_POINT", Points: 1},
			player:  player,
			teamNo:  1,
			wantErr: ErrInvalidPointType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raid, tackle, err := pointDeltas(tt.event, tt.player, tt.teamNo)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if raid != tt.wantRaid || tackle != tt.wantTackle {
				t.Errorf("deltas = (%d, %d), want (%d, %d)", raid, tackle, tt.wantRaid, tt.wantTackle)
			}
		})
	}
}

func TestSummarizeTeam(t *testing.T) {
	players := []models.PlayerStats{
		{RaidPoints: 7, TacklePoints: 2},
		{RaidPoints: 3, TacklePoints: 4},
	}

	summary := summarizeTeam(players)

	if summary.TotalRaidPoints != 10 {
		t.Errorf("totalRaidPoints = %d, want 10", summary.TotalRaidPoints)
	}
	if summary.TotalTacklePoints != 6 {
		t.Errorf("totalTacklePoints = %d, want 6", summary.TotalTacklePoints)
	}
	if summary.TotalPoints != 16 {
		t.Errorf("totalPoints = %d, want 16", summary.TotalPoints)
	}
	if summary.PlayerCount != 2 {
		t.Errorf("playerCount = %d, want 2", summary.PlayerCount)
	}
}

func TestCommentaryFor(t *testing.T) {
	t.Run("zero-point event records nothing", func(t *testing.T) {
		events := []models.ScoreEvent{
			{PlayerID: "p1", PointType: models.PointTypeRaid, Points: 0},
			{PlayerID: "p3", PointType: models.PointTypeTackle, Points: 0},
			{TeamName: "Falcons", PointType: models.PointTypeBonus, Points: 0},
			{TeamName: "Panthers", PointType: models.PointTypeTechnical, Points: -1},
		}
		for _, event := range events {
			if line, ok := commentaryFor(event, "Falcons", "Arjun"); ok {
				t.Errorf("%s with %d points produced commentary %q", event.PointType, event.Points, line)
			}
		}
	})

	t.Run("positive-point event records exactly one line", func(t *testing.T) {
		event := models.ScoreEvent{PlayerID: "p1", PointType: models.PointTypeRaid, Points: 3}
		line, ok := commentaryFor(event, "Falcons", "Arjun")
		if !ok {
			t.Fatal("expected commentary for a 3-point raid")
		}
		want := "Falcons scored raid points by player Arjun 3 points."
		if line != want {
			t.Errorf("line = %q, want %q", line, want)
		}
	})

	t.Run("team event without a player", func(t *testing.T) {
		event := models.ScoreEvent{TeamName: "Panthers", PointType: models.PointTypeAllOut, Points: 2}
		line, ok := commentaryFor(event, "Panthers", "")
		if !ok {
			t.Fatal("expected commentary for an all out")
		}
		want := "Panthers scored an all-out point! +2 points."
		if line != want {
			t.Errorf("line = %q, want %q", line, want)
		}
	})
}
