package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// Limitador de janela fixa por IP, apoiado no Redis para valer entre
// réplicas. Usado só na API pública de reservas; Redis fora do ar não
// derruba a API (fail-open).
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRateLimiter(rdb *redis.Client, perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &RateLimiter{
		rdb:    rdb,
		limit:  perMinute,
		window: time.Minute,
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:public:" + c.ClientIP()

		res, err := fixedWindowScript.Run(
			c.Request.Context(),
			rl.rdb,
			[]string{key},
			rl.window.Milliseconds(),
		).Int64()

		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, failing open")
			c.Next()
			return
		}

		if res > int64(rl.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error_code": "rate_limited",
				"message":    "Muitas requisições. Tente novamente em instantes.",
			})
			return
		}

		c.Next()
	}
}
