package middleware

import (
	"math"
	"net/http"
	"sync"
	"time"

	sharedDomain "github.com/davicafu/storefront/internal/shared/domain"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var ErrTooManyRequests = sharedDomain.NewError(http.StatusTooManyRequests, "Too many requests, please try again later")

// minIdle es lo mínimo que una IP sin tráfico conserva su limitador.
const minIdle = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter guarda un limitador por IP. Las IPs inactivas se purgan cuando
// su cubo ya se habría rellenado, así que olvidarlas no concede ráfagas extra.
type RateLimiter struct {
	visitors  map[string]*visitor
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		idle:     idleFor(perSecond, burst),
		now:      time.Now,
	}
}

// idleFor devuelve max(minIdle, tiempo de rellenar el cubo).
func idleFor(perSecond float64, burst int) time.Duration {
	if perSecond <= 0 {
		return time.Duration(math.MaxInt64)
	}
	refill := float64(burst) / perSecond * float64(time.Second)
	if refill >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	if d := time.Duration(refill); d > minIdle {
		return d
	}
	return minIdle
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep recorre el mapa como mucho una vez por periodo idle. Requiere rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if rl.lastSweep.IsZero() {
		rl.lastSweep = now
		return
	}
	if now.Sub(rl.lastSweep) < rl.idle {
		return
	}
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) >= rl.idle {
			delete(rl.visitors, ip)
		}
	}
	rl.lastSweep = now
}

// Middleware rechaza con 429 las peticiones por encima del límite de su IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			abort(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
