package api

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// limiterStore keeps one token bucket per client address. This is the cheap
// per-minute request budget in front of the cooldown ledger, not the ledger
// itself.
type limiterStore struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(perMinute int, idleTTL time.Duration) *limiterStore {
	if perMinute < 1 {
		perMinute = 1
	}
	return &limiterStore{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		idleTTL: idleTTL,
	}
}

func (store *limiterStore) allow(key string) bool {
	now := time.Now()

	store.mu.Lock()
	defer store.mu.Unlock()

	store.pruneLocked(now)
	entry, ok := store.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(store.limit, store.burst)}
		store.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

func (store *limiterStore) pruneLocked(now time.Time) {
	if store.idleTTL <= 0 {
		return
	}
	threshold := now.Add(-store.idleTTL)
	for key, entry := range store.entries {
		if entry.lastSeen.Before(threshold) {
			delete(store.entries, key)
		}
	}
}

func (handler *Handler) StatusRateLimit(c *fiber.Ctx) error {
	return handler.enforceBudget(c, handler.statusLimiter)
}

func (handler *Handler) SubmitRateLimit(c *fiber.Ctx) error {
	return handler.enforceBudget(c, handler.submitLimiter)
}

func (handler *Handler) enforceBudget(c *fiber.Ctx, store *limiterStore) error {
	key := handler.clientIP(c)
	if key == "" {
		key = "unknown"
	}
	if !store.allow(key) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many requests. Please try again later.",
		})
	}
	return c.Next()
}
