package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/srijalk/portfolio-backend/internal/models"
)

// CooldownLedger is the storage contract for the abuse-prevention ledger.
// RecordAttempt must be atomic per identity key so that concurrent
// submissions never lose an increment; lookups return (nil, nil) when no row
// exists.
type CooldownLedger interface {
	Find(identityKey string) (*models.Cooldown, error)
	FindMostRecentMatch(ip string, agent string) (*models.Cooldown, error)
	RecordAttempt(identityKey string, ip string, agent string, now time.Time) error
	ListOlderThan(cutoff time.Time) ([]models.Cooldown, error)
	DeleteKeys(identityKeys []string) (int64, error)
}

// RequestIdentity carries the weak identity signals of one inbound request.
type RequestIdentity struct {
	Token          string
	IP             string
	Agent          string
	AcceptLanguage string
}

type IdentityResolver struct {
	ledger CooldownLedger
}

func NewIdentityResolver(ledger CooldownLedger) *IdentityResolver {
	return &IdentityResolver{ledger: ledger}
}

// Resolve maps a request to the single ledger key used for all cooldown
// decisions on it. A key already recorded in the ledger wins over a fresh
// client token, so clearing client storage never restarts a cooldown that
// the same browser or network already earned.
func (resolver *IdentityResolver) Resolve(identity RequestIdentity) (string, error) {
	token := strings.TrimSpace(identity.Token)

	if token != "" {
		row, err := resolver.ledger.Find(token)
		if err != nil {
			return "", err
		}
		if row != nil {
			return row.IdentityKey, nil
		}
	}

	matched, err := resolver.ledger.FindMostRecentMatch(identity.IP, identity.Agent)
	if err != nil {
		return "", err
	}
	if matched != nil {
		return matched.IdentityKey, nil
	}

	if token != "" {
		return token, nil
	}

	return FallbackIdentityKey(identity.IP, identity.Agent, identity.AcceptLanguage), nil
}

// FallbackIdentityKey derives a deterministic identity for clients that
// supply no token at all, from transport attributes alone.
func FallbackIdentityKey(ip string, agent string, acceptLanguage string) string {
	material := strings.Join([]string{
		strings.TrimSpace(ip),
		strings.TrimSpace(agent),
		strings.TrimSpace(acceptLanguage),
	}, "|")
	digest := sha256.Sum256([]byte(material))
	return hex.EncodeToString(digest[:])
}
