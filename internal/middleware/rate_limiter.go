package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RateLimiter implements a simple in-memory fixed-window rate limiter with
// per-user and per-IP buckets.
type RateLimiter struct {
	userLimits map[uint]*windowCounter
	ipLimits   map[string]*windowCounter
	mu         sync.Mutex

	userMaxRequests int
	ipMaxRequests   int
	window          time.Duration
}

type windowCounter struct {
	requests  int
	resetTime time.Time
}

func NewRateLimiter(userMaxRequests, ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		userLimits:      make(map[uint]*windowCounter),
		ipLimits:        make(map[string]*windowCounter),
		userMaxRequests: userMaxRequests,
		ipMaxRequests:   ipMaxRequests,
		window:          window,
	}

	go rl.cleanup()

	return rl
}

// Handle enforces the IP bucket always and the user bucket when the request
// is authenticated, so it sits after Auth in protected groups.
func (rl *RateLimiter) Handle(c *fiber.Ctx) error {
	if !rl.allowIP(c.IP()) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success": false,
			"message": "too many requests",
		})
	}

	if identity, ok := IdentityFrom(c); ok {
		if !rl.allowUser(identity.UserID) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "too many requests",
			})
		}
	}

	return c.Next()
}

func (rl *RateLimiter) allowUser(userID uint) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	limit, exists := rl.userLimits[userID]
	if !exists || now.After(limit.resetTime) {
		rl.userLimits[userID] = &windowCounter{requests: 1, resetTime: now.Add(rl.window)}
		return true
	}

	if limit.requests >= rl.userMaxRequests {
		return false
	}
	limit.requests++
	return true
}

func (rl *RateLimiter) allowIP(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	limit, exists := rl.ipLimits[ip]
	if !exists || now.After(limit.resetTime) {
		rl.ipLimits[ip] = &windowCounter{requests: 1, resetTime: now.Add(rl.window)}
		return true
	}

	if limit.requests >= rl.ipMaxRequests {
		return false
	}
	limit.requests++
	return true
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()

		for userID, limit := range rl.userLimits {
			if now.After(limit.resetTime) {
				delete(rl.userLimits, userID)
			}
		}
		for ip, limit := range rl.ipLimits {
			if now.After(limit.resetTime) {
				delete(rl.ipLimits, ip)
			}
		}

		rl.mu.Unlock()
	}
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.userLimits = make(map[uint]*windowCounter)
	rl.ipLimits = make(map[string]*windowCounter)
}
