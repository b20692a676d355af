package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/olufemi424/cpa-automation/internal/api/metrics"
	"github.com/olufemi424/cpa-automation/pkg/logger"
)

// RateLimiter is the decision point consulted per request. The Redis-backed
// implementation lives in internal/infrastructure/db/redis.
type RateLimiter interface {
	Allow(ctx context.Context, caller string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimit applies a per-caller request quota. Authenticated callers are
// keyed by user id, anonymous ones by client IP. A limiter backend failure
// fails open: availability over strictness.
func RateLimit(limiter RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, _ := c.Get("user_id").(string)
			if caller == "" {
				caller = c.RealIP()
			}

			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), caller)
			if err != nil {
				log := logger.Get()
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitRejectionsTotal.Inc()
				secs := int(retryAfter.Round(time.Second).Seconds())
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded, try again later")
			}

			return next(c)
		}
	}
}
