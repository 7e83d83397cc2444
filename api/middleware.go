package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/airport/internal/access"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Gate enforces the capability table. It is the only place access rules are
// evaluated.
type Gate struct {
	table access.Table
}

func NewGate(table access.Table) *Gate {
	return &Gate{table: table}
}

func (g *Gate) Require(r access.Resource, op access.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := g.table.Check(auth.IdentityFrom(c), r, op); err != nil {
			respond(c, err)
			return
		}
		c.Next()
	}
}

// RequestLogger writes one entry per request; failed requests carry the
// error recorded by the handler.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if id := auth.IdentityFrom(c); id != nil {
			entry = entry.WithField("user_id", id.UserID)
		}
		if err := c.Errors.Last(); err != nil {
			entry = entry.WithError(err.Err)
		}

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Info("request rejected")
		default:
			entry.Debug("request served")
		}
	}
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, int, error)
	Limit() int
}

// RateLimit keys callers by user id when authenticated, otherwise by client
// IP. A limiter failure lets the request through.
func RateLimit(limiter RateLimiter, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if id := auth.IdentityFrom(c); id != nil {
			key = "user:" + strconv.FormatInt(id.UserID, 10)
		}

		allowed, remaining, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "too_many_requests", Detail: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
