// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
)

// DefaultReadLimit caps reads of /config and /theme per client address.
const DefaultReadLimit = 600

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	RequestLimit int           // requests allowed per window
	WindowSize   time.Duration // window length, also sent as Retry-After
	// KeyFunc groups requests; nil keys by client IP.
	KeyFunc httprate.KeyFunc
}

// RateLimit rejects requests over the limit with a JSON 429.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	key := cfg.KeyFunc
	if key == nil {
		key = httprate.KeyByIP
	}
	retryAfter := strconv.Itoa(int(cfg.WindowSize / time.Second))

	return httprate.Limit(
		cfg.RequestLimit,
		cfg.WindowSize,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", retryAfter)
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limited"}` + "\n"))
		}),
	)
}

// ReadRateLimit is the limit applied to the config read endpoints.
func ReadRateLimit() func(http.Handler) http.Handler {
	return RateLimit(RateLimitConfig{
		RequestLimit: DefaultReadLimit,
		WindowSize:   time.Minute,
	})
}
