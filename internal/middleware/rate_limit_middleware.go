package middleware

import (
	"net/http"
	"strconv"
	"time"

	"tripapi/internal/utils"
	"tripapi/pkg/cache"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware caps requests per client IP per minute using a
// redis counter. A zero or negative limit disables the cap, and redis
// failures never block traffic.
func RateLimitMiddleware(store *cache.RedisCache, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 || store == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "rate_limit:" + c.ClientIP()

		count, err := store.Increment(ctx, key)
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			_ = store.SetExpire(ctx, key, time.Minute)
		}

		if count > int64(perMinute) {
			if ttl, err := store.GetTTL(ctx, key); err == nil && ttl > 0 {
				c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			}
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
