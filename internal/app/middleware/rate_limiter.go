package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/JoshCLWren/TrailGuard/internal/error/code"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
	"github.com/JoshCLWren/TrailGuard/pkg/metrics"
)

// RateLimiterConfig configures the per-client limiter.
type RateLimiterConfig struct {
	Rate      string   // ulule format, e.g. "20-S", "1000-H"
	SkipPaths []string // path prefixes that are never limited
}

// DefaultRateLimiterConfig allows 20 requests per second per IP.
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:      "20-S",
	SkipPaths: []string{"/health", "/metrics"},
}

// RateLimiter limits requests per client IP with an in-memory store.
func RateLimiter(config ...RateLimiterConfig) gin.HandlerFunc {
	cfg := DefaultRateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		logger.Warning("invalid rate limit %q (%v), using %s", cfg.Rate, err, DefaultRateLimiterConfig.Rate)
		rate, _ = limiter.NewRateFromFormatted(DefaultRateLimiterConfig.Rate)
	}
	instance := limiter.New(memory.NewStore(), rate)

	return func(c *gin.Context) {
		for _, prefix := range cfg.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}

		ctx, err := instance.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			// a broken store must not take the API down
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))

		if ctx.Reached {
			retry := time.Until(time.Unix(ctx.Reset, 0))
			if retry < time.Second {
				retry = time.Second
			}
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())))
			metrics.RateLimitDenied()
			response.Fail(c, code.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
