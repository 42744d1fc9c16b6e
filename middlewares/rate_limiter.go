package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/holycrosscentre/booking-portal/utils"
)

// RateLimiter enforces a sliding window of max requests per window, keyed by
// client IP. When REDIS_ADDR is configured the window lives in Redis (shared
// across instances); otherwise it falls back to in-process memory.
type RateLimiter struct {
	name   string
	max    int
	window time.Duration

	rdb *redis.Client

	mu  sync.Mutex
	ips map[string][]time.Time
}

func NewRateLimiter(name string, max int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		name:   name,
		max:    max,
		window: window,
		ips:    make(map[string][]time.Time),
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rl.rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
	}

	return rl
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, err := rl.allow(c.Request.Context(), ip)
		if err != nil {
			// Redis being down should not take the endpoint with it.
			utils.ErrorLogger.Printf("rate limiter %s: redis error, falling back to memory: %v", rl.name, err)
			allowed = rl.allowMemory(ip)
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  false,
				"message": "Too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, ip string) (bool, error) {
	if rl.rdb == nil {
		return rl.allowMemory(ip), nil
	}
	return rl.allowRedis(ctx, ip)
}

// allowRedis keeps a per-IP sorted set of request timestamps and trims
// entries older than the window. Trim, add and count run in a single
// pipeline so two concurrent requests cannot both observe max-1; rejected
// attempts stay in the set and count toward the window.
func (rl *RateLimiter) allowRedis(ctx context.Context, ip string) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", rl.name, ip)
	now := time.Now()
	cutoff := now.Add(-rl.window)

	pipe := rl.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", cutoff.UnixNano()))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	countCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return countCmd.Val() <= int64(rl.max), nil
}

func (rl *RateLimiter) allowMemory(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	valid := make([]time.Time, 0)
	for _, t := range rl.ips[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.max {
		rl.ips[ip] = valid
		return false
	}

	rl.ips[ip] = append(valid, now)
	return true
}

// NewStrictRateLimiter keeps a tight token-bucket guard on the staff
// login/register endpoints.
func NewStrictRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(1*time.Minute), 5)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many attempts, please wait a moment",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
