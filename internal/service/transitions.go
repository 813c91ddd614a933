package service

import (
	"fmt"
	"time"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
	"github.com/kowshikmeda/KabaddiBackend/internal/repository"
)

const (
	ActionStart  = "start"
	ActionPause  = "pause"
	ActionResume = "resume"
	ActionEnd    = "end"
)

var validActions = map[string]bool{
	ActionStart:  true,
	ActionPause:  true,
	ActionResume: true,
	ActionEnd:    true,
}

// IsValidAction reports whether the action name is one of the four
// lifecycle actions. Checked before any match lookup.
func IsValidAction(action string) bool {
	return validActions[action]
}

// computeTransition evaluates a lifecycle action against the current
// match state and returns the fields to persist. The match is not
// mutated; a precondition violation returns ErrInvalidTransition with
// nothing to apply.
func computeTransition(match *models.Match, action string, now time.Time, clock MatchClock) (repository.MatchTransitionUpdate, error) {
	var upd repository.MatchTransitionUpdate

	switch action {
	case ActionStart:
		if match.Status != models.MatchStatusUpcoming {
			return upd, fmt.Errorf("%w: match must be upcoming to start", ErrInvalidTransition)
		}
		upd.Status = models.MatchStatusLive
		upd.MatchStartTime = &now

	case ActionPause:
		if match.Status != models.MatchStatusLive {
			return upd, fmt.Errorf("%w: match must be live to be paused", ErrInvalidTransition)
		}
		// Consume the live segment that just ended. Pausing never
		// auto-completes, even at exactly zero remaining.
		remaining := match.RemainingDuration
		if match.MatchStartTime != nil {
			remaining, _ = clock.ReconcileLive(match.RemainingDuration, *match.MatchStartTime, now)
		}
		upd.Status = models.MatchStatusPaused
		upd.RemainingDuration = &remaining
		upd.MatchPauseTime = &now

	case ActionResume:
		if match.Status != models.MatchStatusPaused {
			return upd, fmt.Errorf("%w: match must be paused to be resumed", ErrInvalidTransition)
		}
		// A fresh live segment begins; the previous pause timestamp is
		// kept as history.
		upd.Status = models.MatchStatusLive
		upd.MatchStartTime = &now

	case ActionEnd:
		if match.Status != models.MatchStatusLive && match.Status != models.MatchStatusPaused {
			return upd, fmt.Errorf("%w: match must be live or paused to be ended", ErrInvalidTransition)
		}
		// Ending a match always zeroes the clock, whatever the live
		// segment accounting would have produced.
		zero := 0
		upd.Status = models.MatchStatusCompleted
		upd.RemainingDuration = &zero
		upd.MatchPauseTime = &now

	default:
		return upd, ErrInvalidAction
	}

	return upd, nil
}
