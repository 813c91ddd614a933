package service

import (
	"time"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
	"github.com/kowshikmeda/KabaddiBackend/internal/repository"
	"github.com/kowshikmeda/KabaddiBackend/pkg/logger"
)

// ReadReconciler corrects live match timing on the read path. There is
// no background timer; every fetch of live match data passes through
// here, so a match whose clock ran out is reported completed and the
// stored row is healed as a side effect.
type ReadReconciler struct {
	matchRepo *repository.MatchRepository
	clock     MatchClock
}

func NewReadReconciler(matchRepo *repository.MatchRepository, clock MatchClock) *ReadReconciler {
	return &ReadReconciler{
		matchRepo: matchRepo,
		clock:     clock,
	}
}

// apply corrects the in-memory match and reports whether the stored row
// needs healing. No side effects.
func (r *ReadReconciler) apply(match *models.Match, now time.Time) bool {
	heal := false

	if match.Status == models.MatchStatusLive && match.MatchStartTime != nil {
		remaining, completed := r.clock.ReconcileLive(match.RemainingDuration, *match.MatchStartTime, now)
		match.RemainingDuration = remaining
		if completed {
			match.Status = models.MatchStatusCompleted
			heal = true
		}
	}

	// A negative stored duration means a correction was missed or the
	// row was corrupted; repair it on the way out.
	if fixed, clamped := r.clock.ClampNonNegative(match.RemainingDuration); clamped {
		match.RemainingDuration = fixed
		if match.Status != models.MatchStatusCompleted {
			match.Status = models.MatchStatusCompleted
			heal = true
		}
	}

	return heal
}

// Reconcile applies wall-clock correction to a fetched match and, when
// the timer has expired, persists the completion fire-and-forget. The
// response always carries the corrected values even if the persist
// fails; that failure is logged, never surfaced.
func (r *ReadReconciler) Reconcile(match *models.Match) {
	if !r.apply(match, time.Now()) {
		return
	}

	matchID := match.ID
	go func() {
		if err := r.matchRepo.MarkCompleted(matchID); err != nil {
			logger.Error("Failed to self-heal expired match",
				"matchId", matchID,
				"error", err,
			)
		}
	}()
}

// ReconcileAll corrects a page of matches with a single timestamp.
func (r *ReadReconciler) ReconcileAll(matches []*models.Match) {
	now := time.Now()
	for _, match := range matches {
		if r.apply(match, now) {
			matchID := match.ID
			go func() {
				if err := r.matchRepo.MarkCompleted(matchID); err != nil {
					logger.Error("Failed to self-heal expired match",
						"matchId", matchID,
						"error", err,
					)
				}
			}()
		}
	}
}
