package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rate limit tiers. Payment endpoints are strict: the gateway retries
// webhooks on its own schedule and order creation is abuse-prone.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

var strictPaths = map[string]bool{
	"/api/create-order":    true,
	"/api/webhook/payment": true,
}

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go cleanupVisitors()
}

func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes stale entries so the map does not grow
// unbounded.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

// RateLimitMiddleware buckets requests per client IP, with a separate
// quota for the strict payment paths.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := resolveRateTier(r)

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		key := "ip:" + ip + ":" + tier

		limiter := getVisitor(key, limit, burst)
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if strictPaths[r.URL.Path] {
		return limitStrict, burstStrict, "strict"
	}
	return limitGeneral, burstGeneral, "general"
}
