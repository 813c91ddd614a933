package service

import (
	"testing"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
)

func TestCommentaryLine(t *testing.T) {
	tests := []struct {
		name       string
		pointType  models.PointType
		teamName   string
		playerName string
		points     int
		want       string
	}{
		{
			name:       "raid point",
			pointType:  models.PointTypeRaid,
			teamName:   "Falcons",
			playerName: "Arjun",
			points:     3,
			want:       "Falcons scored raid points by player Arjun 3 points.",
		},
		{
			name:       "tackle point",
			pointType:  models.PointTypeTackle,
			teamName:   "Panthers",
			playerName: "Ravi",
			points:     1,
			want:       "Panthers scored tackle points by player Ravi 1 points.",
		},
		{
			name:      "bonus point",
			pointType: models.PointTypeBonus,
			teamName:  "Falcons",
			points:    1,
			want:      "Falcons scored a bonus point. +1 points.",
		},
		{
			name:      "technical point",
			pointType: models.PointTypeTechnical,
			teamName:  "Panthers",
			points:    1,
			want:      "Panthers awarded a technical point. +1 points.",
		},
		{
			name:      "all out point",
			pointType: models.PointTypeAllOut,
			teamName:  "Falcons",
			points:    2,
			want:      "Falcons scored an all-out point! +2 points.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CommentaryLine(tt.pointType, tt.teamName, tt.playerName, tt.points)
			if got != tt.want {
				t.Errorf("CommentaryLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
