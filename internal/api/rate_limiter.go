package api

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RateRule allows Requests per Window, refilled continuously.
type RateRule struct {
	Requests int
	Window   time.Duration
}

type RateLimits struct {
	Global RateRule
	Auth   RateRule
	Log    RateRule
	Goal   RateRule
}

func DefaultRateLimits() RateLimits {
	return RateLimits{
		Global: RateRule{Requests: 300, Window: 15 * time.Minute},
		Auth:   RateRule{Requests: 10, Window: 15 * time.Minute},
		Log:    RateRule{Requests: 30, Window: time.Minute},
		Goal:   RateRule{Requests: 20, Window: time.Hour},
	}
}

func (limits RateLimits) withDefaults() RateLimits {
	defaults := DefaultRateLimits()
	limits.Global = limits.Global.orDefault(defaults.Global)
	limits.Auth = limits.Auth.orDefault(defaults.Auth)
	limits.Log = limits.Log.orDefault(defaults.Log)
	limits.Goal = limits.Goal.orDefault(defaults.Goal)
	return limits
}

func (rule RateRule) orDefault(fallback RateRule) RateRule {
	if rule.Requests <= 0 || rule.Window <= 0 {
		return fallback
	}
	return rule
}

type requestLimiters struct {
	global *keyedRateLimiter
	auth   *keyedRateLimiter
	log    *keyedRateLimiter
	goal   *keyedRateLimiter
}

func newRequestLimiters(limits RateLimits) *requestLimiters {
	return &requestLimiters{
		global: newKeyedRateLimiter("global", limits.Global, "too many requests, please try again later"),
		auth:   newKeyedRateLimiter("auth", limits.Auth, "too many authentication attempts, try again later"),
		log:    newKeyedRateLimiter("log", limits.Log, "too many log attempts, please slow down"),
		goal:   newKeyedRateLimiter("goal", limits.Goal, "too many goal creation attempts, please slow down"),
	}
}

func (limiters *requestLimiters) all() []*keyedRateLimiter {
	return []*keyedRateLimiter{limiters.global, limiters.auth, limiters.log, limiters.goal}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedRateLimiter keeps one token bucket per client key.
type keyedRateLimiter struct {
	name    string
	message string
	rule    RateRule
	limit   rate.Limit

	mu      sync.Mutex
	entries map[string]*limiterEntry
}

func newKeyedRateLimiter(name string, rule RateRule, message string) *keyedRateLimiter {
	return &keyedRateLimiter{
		name:    name,
		message: message,
		rule:    rule,
		limit:   rate.Every(rule.Window / time.Duration(rule.Requests)),
		entries: make(map[string]*limiterEntry),
	}
}

// allow consumes one token for key. When the bucket is empty it reports how
// long until the next token is available.
func (limiter *keyedRateLimiter) allow(key string, now time.Time) (bool, time.Duration) {
	limiter.mu.Lock()
	entry, ok := limiter.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(limiter.limit, limiter.rule.Requests)}
		limiter.entries[key] = entry
	}
	entry.lastSeen = now
	limiter.mu.Unlock()

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, limiter.rule.Window
	}
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweep drops buckets idle for a full window. Such a bucket has refilled
// completely, so forgetting it changes nothing for the client.
func (limiter *keyedRateLimiter) sweep(now time.Time) int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	removed := 0
	for key, entry := range limiter.entries {
		if now.Sub(entry.lastSeen) >= limiter.rule.Window {
			delete(limiter.entries, key)
			removed++
		}
	}
	return removed
}

func (limiter *keyedRateLimiter) size() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.entries)
}

// SweepRateLimiters forgets idle client buckets. It is meant to run on a
// schedule.
func (handler *Handler) SweepRateLimiters() {
	now := time.Now()
	removed := 0
	for _, limiter := range handler.limiters.all() {
		removed += limiter.sweep(now)
	}
	if removed > 0 {
		handler.logger.WithField("removed", removed).Debug("swept idle rate limiter buckets")
	}
}

func (handler *Handler) rateLimit(limiter *keyedRateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := rateLimitKey(c)
		allowed, wait := limiter.allow(key, time.Now())
		c.Set("RateLimit-Limit", strconv.Itoa(limiter.rule.Requests))
		if allowed {
			return c.Next()
		}

		handler.metrics.RecordRateLimited(limiter.name)
		handler.logger.WithFields(logrus.Fields{
			"limiter": limiter.name,
			"key":     key,
			"path":    c.Path(),
			"method":  c.Method(),
		}).Warn("rate limit exceeded")

		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, limiter.message)
	}
}

// rateLimitKey prefers the authenticated user so that clients behind one
// address do not share a bucket on private routes.
func rateLimitKey(c *fiber.Ctx) string {
	if user, ok := currentUser(c); ok && user != nil {
		return "user:" + strconv.FormatUint(uint64(user.ID), 10)
	}
	return "ip:" + clientIPKey(c)
}
