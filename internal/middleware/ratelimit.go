package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/forgo/cuppa/internal/model"
)

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Enabled  bool
	Requests int           // Requests per window (default 100)
	Window   time.Duration // Time window (default 1 minute)
}

// RateLimit returns a sliding-window limiter keyed by the authenticated
// user when one is in the context, otherwise by client IP. It must run
// after Auth or OptionalAuth for the user key to apply.
func RateLimit(cfg RateLimitConfig) Middleware {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	if cfg.Requests <= 0 {
		cfg.Requests = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}

	window := cfg.Window
	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			retryAfter := int(window.Seconds())
			if v, err := strconv.Atoi(w.Header().Get("Retry-After")); err == nil && v > 0 {
				retryAfter = v
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			model.NewRateLimitError(retryAfter).WriteJSON(w)
		}),
	)
}

func rateLimitKey(r *http.Request) (string, error) {
	if userID := GetUserID(r.Context()); userID != "" {
		return "user:" + userID, nil
	}
	ip, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + ip, nil
}
