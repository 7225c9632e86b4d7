package middleware

import (
	"net/http"
	"sync"
	"time"

	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's limiter survives without requests.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterStore holds a map of client IPs to their rate limiters.
type rateLimiterStore struct {
	limiters  map[string]*clientLimiter
	perMin    int
	lastSweep time.Time
	now       func() time.Time
	mu        sync.Mutex
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 200
	}
	return &rateLimiterStore{
		limiters:  make(map[string]*clientLimiter),
		perMin:    perMin,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterIdleTTL {
		s.sweep(now)
	}

	entry, exists := s.limiters[ip]
	if !exists {
		entry = &clientLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops limiters idle for longer than limiterIdleTTL. Callers hold mu.
func (s *rateLimiterStore) sweep(now time.Time) {
	for ip, entry := range s.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(s.limiters, ip)
		}
	}
	s.lastSweep = now
}

// RateLimitMiddleware limits requests per client IP to perMin a minute, with a
// burst of the same size. The IP comes from gin's ClientIP, so forwarding
// headers only count when the engine trusts the proxy that set them.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	return newRateLimiterStore(perMin).handler()
}

func (s *rateLimiterStore) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !s.getLimiter(ip).Allow() {
			utils.RequestLogger(c).Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{Error: "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
