package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/almanacai/almanac/internal/models"
)

// RateLimiter enforces a per-caller sliding one-minute window. Callers are
// identified by API key when present, remote address otherwise.
type RateLimiter struct {
	mu      sync.Mutex
	history map[string][]time.Time
	limit   int
}

func NewRateLimiter(limitPerMinute int) *RateLimiter {
	return &RateLimiter{
		history: make(map[string][]time.Time),
		limit:   limitPerMinute,
	}
}

// Allow records the request if the caller is under the limit and reports
// how many requests remain in the current window.
func (rl *RateLimiter) Allow(caller string) (remaining int, ok bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-time.Minute)

	recent := rl.history[caller][:0]
	for _, t := range rl.history[caller] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rl.limit {
		rl.history[caller] = recent
		return 0, false
	}
	rl.history[caller] = append(recent, now)

	// Idle callers are swept opportunistically rather than by a timer.
	if len(rl.history) > 10000 {
		rl.sweep(cutoff)
	}
	return rl.limit - len(rl.history[caller]), true
}

func (rl *RateLimiter) sweep(cutoff time.Time) {
	for caller, ts := range rl.history {
		if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
			delete(rl.history, caller)
		}
	}
}

func callerKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	return r.RemoteAddr
}

func RateLimit(limitPerMinute int) func(http.Handler) http.Handler {
	rl := NewRateLimiter(limitPerMinute)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remaining, ok := rl.Allow(callerKey(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limitPerMinute))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !ok {
				w.Header().Set("Retry-After", "60")
				models.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
