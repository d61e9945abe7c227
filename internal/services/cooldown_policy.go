package services

import (
	"time"

	"github.com/srijalk/portfolio-backend/internal/models"
)

const (
	// CooldownWindow is the minimum duration between two accepted submissions
	// from the same identity.
	CooldownWindow = 12 * time.Hour

	// EscalationThreshold is the attempt count above which the window grows.
	EscalationThreshold = 3

	// EscalationPenalty extends the window per attempt beyond the threshold.
	EscalationPenalty = 2 * time.Hour
)

// Decision is the outcome of evaluating a ledger row at a point in time.
// Remaining is zero when Allowed is true.
type Decision struct {
	Allowed   bool
	Remaining time.Duration
}

// EffectiveWindow returns the cooldown window for a given attempt count,
// including the escalation penalty for repeat offenders.
func EffectiveWindow(attemptCount int) time.Duration {
	window := CooldownWindow
	if attemptCount > EscalationThreshold {
		window += time.Duration(attemptCount-EscalationThreshold) * EscalationPenalty
	}
	return window
}

// Evaluate decides whether the identity behind a ledger row may submit again.
// A missing row always allows: eviction and absence are equivalent.
func Evaluate(row *models.Cooldown, now time.Time) Decision {
	if row == nil {
		return Decision{Allowed: true}
	}

	window := EffectiveWindow(row.AttemptCount)
	elapsed := now.Sub(row.LastAttempt)
	if elapsed >= window {
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, Remaining: window - elapsed}
}
