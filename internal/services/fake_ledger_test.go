package services

import (
	"sync"
	"time"

	"github.com/srijalk/portfolio-backend/internal/models"
)

// fakeLedger is an in-memory CooldownLedger for resolver and sweeper tests.
type fakeLedger struct {
	mu   sync.Mutex
	rows map[string]models.Cooldown
	err  error
}

func newFakeLedger(rows ...models.Cooldown) *fakeLedger {
	ledger := &fakeLedger{rows: make(map[string]models.Cooldown, len(rows))}
	for _, row := range rows {
		ledger.rows[row.IdentityKey] = row
	}
	return ledger
}

func (ledger *fakeLedger) Find(identityKey string) (*models.Cooldown, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	if ledger.err != nil {
		return nil, ledger.err
	}
	row, ok := ledger.rows[identityKey]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (ledger *fakeLedger) FindMostRecentMatch(ip string, agent string) (*models.Cooldown, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	if ledger.err != nil {
		return nil, ledger.err
	}

	var best *models.Cooldown
	for key := range ledger.rows {
		row := ledger.rows[key]
		matchesIP := ip != "" && row.ObservedIP == ip
		matchesAgent := agent != "" && row.ObservedAgent == agent
		if !matchesIP && !matchesAgent {
			continue
		}
		if best == nil || row.LastAttempt.After(best.LastAttempt) {
			copied := row
			best = &copied
		}
	}
	return best, nil
}

func (ledger *fakeLedger) RecordAttempt(identityKey string, ip string, agent string, now time.Time) error {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	if ledger.err != nil {
		return ledger.err
	}

	row, ok := ledger.rows[identityKey]
	if !ok {
		ledger.rows[identityKey] = models.Cooldown{
			IdentityKey:   identityKey,
			LastAttempt:   now,
			AttemptCount:  1,
			ObservedIP:    ip,
			ObservedAgent: agent,
		}
		return nil
	}

	row.LastAttempt = now
	row.AttemptCount++
	row.ObservedIP = ip
	row.ObservedAgent = agent
	ledger.rows[identityKey] = row
	return nil
}

func (ledger *fakeLedger) ListOlderThan(cutoff time.Time) ([]models.Cooldown, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	if ledger.err != nil {
		return nil, ledger.err
	}

	rows := make([]models.Cooldown, 0)
	for _, row := range ledger.rows {
		if row.LastAttempt.Before(cutoff) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (ledger *fakeLedger) DeleteKeys(identityKeys []string) (int64, error) {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	if ledger.err != nil {
		return 0, ledger.err
	}

	deleted := int64(0)
	for _, key := range identityKeys {
		if _, ok := ledger.rows[key]; ok {
			delete(ledger.rows, key)
			deleted++
		}
	}
	return deleted, nil
}

func (ledger *fakeLedger) size() int {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	return len(ledger.rows)
}
