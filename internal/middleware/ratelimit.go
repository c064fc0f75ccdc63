package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daybreak-app/daybreak-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the sliding window for the per-IP counter
	RateLimitWindow = 60 * time.Second
	// RateLimitMaxRequests is the maximum number of requests allowed in the window
	RateLimitMaxRequests = 60
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "ratelimit:"
)

// rateCounter is the slice of the Redis client the limiter needs.
type rateCounter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// RateLimit returns Redis-backed per-IP rate limiting middleware. A nil
// client disables limiting; Redis failures allow the request (fail open).
func RateLimit(client *redis.Client) func(http.Handler) http.Handler {
	var counter rateCounter
	if client != nil {
		counter = client
	}
	return rateLimit(counter)
}

func rateLimit(counter rateCounter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if counter == nil {
				next.ServeHTTP(w, r)
				return
			}

			ipAddress := clientip.RealClientIP(r)
			ctx := r.Context()
			rateLimitKey := RateLimitKeyPrefix + ipAddress

			currentCount, err := counter.Get(ctx, rateLimitKey).Int()
			if err != nil {
				// Key doesn't exist, start with 0
				currentCount = 0
			}
			newCount := currentCount + 1

			if currentCount == 0 {
				// First request in this window
				err = counter.Set(ctx, rateLimitKey, "1", RateLimitWindow).Err()
			} else {
				err = counter.Incr(ctx, rateLimitKey).Err()
			}
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if newCount > RateLimitMaxRequests {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprintf(w, `{"error":"Rate limit exceeded. Please try again later.","retryAfter":%d}`, int(RateLimitWindow.Seconds()))
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(RateLimitMaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(RateLimitMaxRequests-newCount))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(RateLimitWindow).Unix(), 10))

			next.ServeHTTP(w, r)
		})
	}
}
