package service

import (
	"testing"
	"time"
)

func TestMatchClock_ReconcileLive(t *testing.T) {
	clock := NewMatchClock()
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		remaining     int
		now           time.Time
		wantRemaining int
		wantCompleted bool
	}{
		{
			name:          "no time elapsed",
			remaining:     2400,
			now:           start,
			wantRemaining: 2400,
			wantCompleted: false,
		},
		{
			name:          "100 seconds into a live segment",
			remaining:     2400,
			now:           start.Add(100 * time.Second),
			wantRemaining: 2300,
			wantCompleted: false,
		},
		{
			name:          "elapsed rounds down below half a second",
			remaining:     600,
			now:           start.Add(10*time.Second + 400*time.Millisecond),
			wantRemaining: 590,
			wantCompleted: false,
		},
		{
			name:          "elapsed rounds up at half a second",
			remaining:     600,
			now:           start.Add(10*time.Second + 500*time.Millisecond),
			wantRemaining: 589,
			wantCompleted: false,
		},
		{
			name:          "exactly at expiry",
			remaining:     2400,
			now:           start.Add(2400 * time.Second),
			wantRemaining: 0,
			wantCompleted: true,
		},
		{
			name:          "past expiry",
			remaining:     2400,
			now:           start.Add(3000 * time.Second),
			wantRemaining: 0,
			wantCompleted: true,
		},
		{
			name:          "one second left",
			remaining:     2400,
			now:           start.Add(2399 * time.Second),
			wantRemaining: 1,
			wantCompleted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remaining, completed := clock.ReconcileLive(tt.remaining, start, tt.now)
			if remaining != tt.wantRemaining {
				t.Errorf("ReconcileLive() remaining = %d, want %d", remaining, tt.wantRemaining)
			}
			if completed != tt.wantCompleted {
				t.Errorf("ReconcileLive() completed = %v, want %v", completed, tt.wantCompleted)
			}
		})
	}
}

func TestMatchClock_ClampNonNegative(t *testing.T) {
	clock := NewMatchClock()

	tests := []struct {
		name        string
		remaining   int
		want        int
		wantClamped bool
	}{
		{"positive untouched", 120, 120, false},
		{"zero untouched", 0, 0, false},
		{"negative repaired", -45, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := clock.ClampNonNegative(tt.remaining)
			if got != tt.want || clamped != tt.wantClamped {
				t.Errorf("ClampNonNegative(%d) = (%d, %v), want (%d, %v)",
					tt.remaining, got, clamped, tt.want, tt.wantClamped)
			}
		})
	}
}
