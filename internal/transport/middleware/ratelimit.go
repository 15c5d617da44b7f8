package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// bucketIdleExpiry is how long an address may stay quiet before its bucket
// is dropped from memory. Anything past this refills to full anyway, so
// keeping the entry buys nothing.
const bucketIdleExpiry = 10 * time.Minute

// RateLimiter throttles requests per remote address with token buckets. The
// login endpoint is the intended customer; see app wiring.
type RateLimiter struct {
	buckets sync.Map // remote addr -> *bucket
	stop    chan struct{}
}

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter starts a limiter whose idle buckets are swept every
// cleanupInterval. Stop it on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.sweep(cleanupInterval)
	return rl
}

// Stop ends the background sweep.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit caps each remote address at maxPerMinute requests, answering the
// excess with 429 and a Retry-After hint.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := rl.bucketFor(r.RemoteAddr, maxPerMinute)
			if !b.take() {
				wait := int(60.0/float64(maxPerMinute)) + 1
				w.Header().Set("Retry-After", strconv.Itoa(wait))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) bucketFor(key string, maxPerMinute int) *bucket {
	max := float64(maxPerMinute)
	val, _ := rl.buckets.LoadOrStore(key, &bucket{
		tokens:     max,
		maxTokens:  max,
		refillRate: max / 60.0,
		lastRefill: time.Now(),
	})
	return val.(*bucket)
}

// take refills by elapsed time and spends one token if available.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.buckets.Range(func(key, value any) bool {
				b := value.(*bucket)
				b.mu.Lock()
				idle := now.Sub(b.lastRefill)
				b.mu.Unlock()
				if idle > bucketIdleExpiry {
					rl.buckets.Delete(key)
				}
				return true
			})
		}
	}
}
