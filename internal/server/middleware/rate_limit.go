package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RateLimitMiddleware struct {
	client *redis.Client
}

func NewRateLimitMiddleware(client *redis.Client) *RateLimitMiddleware {
	return &RateLimitMiddleware{client: client}
}

// checkRateLimit implements a fixed window counter keyed in redis.
func (rm *RateLimitMiddleware) checkRateLimit(ctx context.Context, key string, requests int, window time.Duration) (bool, error) {
	count, err := rm.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := rm.client.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(requests), nil
}

// RateLimitIP limits public routes per client IP.
func (rm *RateLimitMiddleware) RateLimitIP(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit_ip:%s:%s", c.ClientIP(), c.Request.URL.Path)

		allowed, err := rm.checkRateLimit(c.Request.Context(), key, requests, window)
		if err != nil {
			// Rate limiting is protective, not load-bearing; fail open.
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": fmt.Sprintf("Too many requests. Limit: %d per %v", requests, window),
			})
			return
		}

		c.Next()
	}
}

// RateLimitUser limits authenticated routes per user, so it must run after
// the auth guard.
func (rm *RateLimitMiddleware) RateLimitUser(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", user.ID, c.Request.URL.Path)
		allowed, err := rm.checkRateLimit(c.Request.Context(), key, requests, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": fmt.Sprintf("Too many requests. Limit: %d per %v", requests, window),
			})
			return
		}

		c.Next()
	}
}
