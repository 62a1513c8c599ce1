package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nomato-app/nomato-backend/config"
	"github.com/nomato-app/nomato-backend/models"
)

// RateLimiter counts requests per IP, method and route in fixed Redis windows.
// When Redis is missing or failing the request is let through; search stays
// up even if the limiter cannot count.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		rdb := config.RedisClient
		if rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
		resetKey := key + ":resetAt"

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			config.Log.Warnw("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		// First hit opens the window and pins its reset time.
		if count == 1 {
			resetAt := time.Now().Add(window)
			pipe := rdb.TxPipeline()
			pipe.Expire(ctx, key, window)
			pipe.Set(ctx, resetKey, resetAt.Unix(), window)
			if _, err := pipe.Exec(ctx); err != nil {
				config.Log.Warnw("rate limiter window not set", "key", key, "error", err)
			}
		}

		resetAtUnix, err := rdb.Get(ctx, resetKey).Int64()
		if err != nil {
			resetAtUnix = time.Now().Add(window).Unix()
		}
		resetAt := time.Unix(resetAtUnix, 0)

		remaining := maxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		resetInSeconds := int(time.Until(resetAt).Seconds())
		if resetInSeconds < 0 {
			resetInSeconds = 0
		}

		rate := &models.RateLimiter{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: resetInSeconds,
		}
		c.Set("rateLimiter", rate)
		c.Header("X-RateLimit-Limit", itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", itoa(remaining))

		if int(count) > maxRequests {
			c.Header("Retry-After", itoa(resetInSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			return
		}

		c.Next()
	}
}
