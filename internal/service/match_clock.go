package service

import (
	"math"
	"time"
)

// MatchClock converts wall-clock time into consumable match duration.
// All durations are integer seconds; elapsed time is rounded to the
// nearest second to match timer displays.
type MatchClock struct{}

func NewMatchClock() MatchClock {
	return MatchClock{}
}

// ReconcileLive computes the true remaining duration of a live segment
// that began at matchStartTime. The stored remainingDuration is the
// value as of that instant. Returns the corrected duration and whether
// the clock ran out.
func (MatchClock) ReconcileLive(remainingDuration int, matchStartTime, now time.Time) (int, bool) {
	elapsed := int(math.Round(now.Sub(matchStartTime).Seconds()))
	candidate := remainingDuration - elapsed
	if candidate <= 0 {
		return 0, true
	}
	return candidate, false
}

// ClampNonNegative repairs a corrupt negative stored duration. Returns
// the clamped value and whether a repair happened.
func (MatchClock) ClampNonNegative(remainingDuration int) (int, bool) {
	if remainingDuration < 0 {
		return 0, true
	}
	return remainingDuration, false
}
