package services

import (
	"context"
	"log"
	"time"
)

const DefaultSweepInterval = time.Hour

// Sweeper periodically evicts ledger rows whose cooldown has fully elapsed,
// bounding storage growth. It runs independently of the request path and
// relies only on the ledger's own atomicity: a row disappearing mid-request
// reads as "no row" and therefore allows.
type Sweeper struct {
	ledger   CooldownLedger
	interval time.Duration
}

func NewSweeper(ledger CooldownLedger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{ledger: ledger, interval: interval}
}

func (sweeper *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(sweeper.interval)
	go func() {
		defer ticker.Stop()

		sweeper.runOnce(time.Now())
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweeper.runOnce(time.Now())
			}
		}
	}()
}

// runOnce deletes every row whose effective window has elapsed. Rows under an
// escalation penalty keep their extended window: evicting them at the base
// window would silently erase the penalty.
func (sweeper *Sweeper) runOnce(now time.Time) {
	candidates, err := sweeper.ledger.ListOlderThan(now.Add(-CooldownWindow))
	if err != nil {
		log.Printf("sweeper: list expired candidates failed: %v", err)
		return
	}

	expired := make([]string, 0, len(candidates))
	for _, row := range candidates {
		if Evaluate(&row, now).Allowed {
			expired = append(expired, row.IdentityKey)
		}
	}
	if len(expired) == 0 {
		return
	}

	deleted, err := sweeper.ledger.DeleteKeys(expired)
	if err != nil {
		log.Printf("sweeper: delete expired rows failed: %v", err)
		return
	}
	log.Printf("sweeper: evicted %d expired cooldown row(s)", deleted)
}
