package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/kowshikmeda/KabaddiBackend/internal/service"
)

func TestScoreErrorResponse(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "raid for a player on neither roster is a 404",
			err:         service.ErrPlayerNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Player not found in this match",
		},
		{
			name:        "missing match",
			err:         service.ErrMatchNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Match not found",
		},
		{
			name:        "missing rosters",
			err:         service.ErrStatsNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Match not found",
		},
		{
			name:        "scorer is not the creator",
			err:         service.ErrNotAuthorized,
			wantStatus:  http.StatusForbidden,
			wantMessage: "Only the match creator can score it",
		},
		{
			name:       "unknown point type",
			err:        service.ErrInvalidPointType,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "team event naming neither team",
			err:        service.ErrTeamNotResolved,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrapped sentinel still resolves",
			err:        fmt.Errorf("applying event: %w", service.ErrPlayerNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "infrastructure failure",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := scoreErrorResponse(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantMessage != "" && message != tt.wantMessage {
				t.Errorf("message = %q, want %q", message, tt.wantMessage)
			}
		})
	}
}
