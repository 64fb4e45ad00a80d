package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/aliadapter/config"
	"github.com/use-agent/aliadapter/models"
	"golang.org/x/time/rate"
)

const (
	sweepEvery = 5 * time.Minute
	idleAfter  = time.Hour
)

// clientBuckets keeps one token bucket per caller identity.
type clientBuckets struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	*rate.Limiter
	lastSeen time.Time
}

func newClientBuckets(cfg config.RateLimitConfig) *clientBuckets {
	return &clientBuckets{
		limit:   rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
		buckets: make(map[string]*bucket),
	}
}

func (cb *clientBuckets) get(id string, now time.Time) *rate.Limiter {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	b, ok := cb.buckets[id]
	if !ok {
		b = &bucket{Limiter: rate.NewLimiter(cb.limit, cb.burst)}
		cb.buckets[id] = b
	}
	b.lastSeen = now
	return b.Limiter
}

// sweep drops buckets idle since before cutoff and reports how many remain.
func (cb *clientBuckets) sweep(cutoff time.Time) int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	for id, b := range cb.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(cb.buckets, id)
		}
	}
	return len(cb.buckets)
}

// run sweeps idle buckets until ctx is done.
func (cb *clientBuckets) run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			cb.sweep(now.Add(-idleAfter))
		}
	}
}

// wait reserves a token for id. It returns zero when the request may pass,
// otherwise how long the caller should back off. A refused reservation is
// cancelled so it does not consume future tokens.
func (cb *clientBuckets) wait(id string, now time.Time) time.Duration {
	r := cb.get(id, now).ReserveN(now, 1)
	if !r.OK() {
		return time.Second
	}
	delay := r.DelayFrom(now)
	if delay > 0 {
		r.CancelAt(now)
	}
	return delay
}

// RateLimit throttles /ali callers with a token bucket per identity: the
// authenticated API key when present, the client IP otherwise. Rejected
// requests get 429 with Retry-After set to the bucket's refill time.
// Idle buckets are swept until ctx is done.
func RateLimit(ctx context.Context, cfg config.RateLimitConfig) gin.HandlerFunc {
	cb := newClientBuckets(cfg)
	go cb.run(ctx, sweepEvery)

	return func(c *gin.Context) {
		id := c.GetString(APIKeyContextKey)
		if id == "" {
			id = c.ClientIP()
		}

		if delay := cb.wait(id, time.Now()); delay > 0 {
			c.Header("Retry-After", retryAfter(delay))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorEnvelope{
				Error:   models.ErrKindRateLimited,
				Details: "rate limit exceeded, retry in " + retryAfter(delay) + "s",
			})
			return
		}
		c.Next()
	}
}

// retryAfter renders delay as whole seconds, rounded up, at least 1.
func retryAfter(delay time.Duration) string {
	secs := int64(math.Ceil(delay.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
