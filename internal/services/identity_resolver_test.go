package services

import (
	"errors"
	"testing"
	"time"

	"github.com/srijalk/portfolio-backend/internal/models"
)

func TestResolvePrefersTokenAlreadyInLedger(t *testing.T) {
	ledger := newFakeLedger(models.Cooldown{
		IdentityKey:   "token-a",
		LastAttempt:   time.Now(),
		AttemptCount:  1,
		ObservedIP:    "203.0.113.7",
		ObservedAgent: "AgentA",
	})
	resolver := NewIdentityResolver(ledger)

	key, err := resolver.Resolve(RequestIdentity{Token: "token-a", IP: "198.51.100.9", Agent: "AgentB"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if key != "token-a" {
		t.Fatalf("expected existing token key, got %q", key)
	}
}

func TestResolveClearedTokenStillCorrelates(t *testing.T) {
	ledger := newFakeLedger(models.Cooldown{
		IdentityKey:   "old-token",
		LastAttempt:   time.Now(),
		AttemptCount:  2,
		ObservedIP:    "203.0.113.7",
		ObservedAgent: "AgentA",
	})
	resolver := NewIdentityResolver(ledger)

	// Fresh token after clearing client storage, same network and browser.
	key, err := resolver.Resolve(RequestIdentity{Token: "brand-new-token", IP: "203.0.113.7", Agent: "AgentA"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if key != "old-token" {
		t.Fatalf("expected correlation to old key, got %q", key)
	}
}

func TestResolveAmbiguityPicksMostRecentlyActive(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	ledger := newFakeLedger(
		models.Cooldown{IdentityKey: "by-ip", LastAttempt: base, AttemptCount: 1, ObservedIP: "203.0.113.7", ObservedAgent: "Other"},
		models.Cooldown{IdentityKey: "by-agent", LastAttempt: base.Add(time.Hour), AttemptCount: 1, ObservedIP: "198.51.100.1", ObservedAgent: "AgentA"},
	)
	resolver := NewIdentityResolver(ledger)

	key, err := resolver.Resolve(RequestIdentity{IP: "203.0.113.7", Agent: "AgentA"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if key != "by-agent" {
		t.Fatalf("expected most recently active match, got %q", key)
	}
}

func TestResolveFreshTokenWithoutMatchKeepsToken(t *testing.T) {
	resolver := NewIdentityResolver(newFakeLedger())

	key, err := resolver.Resolve(RequestIdentity{Token: "fresh-token", IP: "203.0.113.7", Agent: "AgentA"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if key != "fresh-token" {
		t.Fatalf("expected fresh token to become the key, got %q", key)
	}
}

func TestResolveFallbackIsDeterministic(t *testing.T) {
	resolver := NewIdentityResolver(newFakeLedger())
	identity := RequestIdentity{IP: "203.0.113.7", Agent: "AgentA", AcceptLanguage: "en-US"}

	first, err := resolver.Resolve(identity)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	second, err := resolver.Resolve(identity)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if first != second {
		t.Fatalf("fallback key not deterministic: %q vs %q", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected hex sha256 key, got %q", first)
	}
	if first == FallbackIdentityKey("198.51.100.1", "AgentA", "en-US") {
		t.Fatal("different transport attributes must not collide")
	}
}

func TestResolveSurfacesLedgerErrors(t *testing.T) {
	ledger := newFakeLedger()
	ledger.err = errors.New("store down")
	resolver := NewIdentityResolver(ledger)

	if _, err := resolver.Resolve(RequestIdentity{Token: "token-a"}); err == nil {
		t.Fatal("expected ledger error to surface")
	}
}
