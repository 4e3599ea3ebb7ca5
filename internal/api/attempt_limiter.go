package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	loginFailureLimit  = 5
	loginFailureWindow = 15 * time.Minute
)

// attemptLimiter counts failed attempts per key inside a sliding window.
// Successful attempts are never recorded; callers reset the key instead.
type attemptLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{
		failures: make(map[string][]time.Time),
	}
}

func (limiter *attemptLimiter) blocked(key string, now time.Time, limit int, window time.Duration) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	return len(limiter.activeLocked(key, now, window)) >= limit
}

// retryAfter is the time left until the oldest failure in the window expires,
// or zero when the key is not blocked.
func (limiter *attemptLimiter) retryAfter(key string, now time.Time, limit int, window time.Duration) time.Duration {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	active := limiter.activeLocked(key, now, window)
	if len(active) < limit {
		return 0
	}
	oldest := active[len(active)-limit]
	return oldest.Add(window).Sub(now)
}

func (limiter *attemptLimiter) recordFailure(key string, now time.Time, window time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.failures[key] = append(limiter.activeLocked(key, now, window), now)
}

func (limiter *attemptLimiter) clear(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.failures, key)
}

func (limiter *attemptLimiter) activeLocked(key string, now time.Time, window time.Duration) []time.Time {
	recorded := limiter.failures[key]
	threshold := now.Add(-window)

	active := recorded[:0]
	for _, at := range recorded {
		if at.After(threshold) {
			active = append(active, at)
		}
	}

	if len(active) == 0 {
		delete(limiter.failures, key)
		return nil
	}
	limiter.failures[key] = active
	return active
}

func clientIPKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
