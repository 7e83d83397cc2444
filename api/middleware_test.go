package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airport/internal/access"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedEngine(limiter RateLimiter, id *access.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	r := gin.New()
	if id != nil {
		r.Use(func(c *gin.Context) { auth.SetIdentity(c, *id) })
	}
	r.Use(RateLimit(limiter, logger))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRateLimit(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		limiter := &stubLimiter{allowed: true, remaining: 4}
		w := httptest.NewRecorder()
		limitedEngine(limiter, &user).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, []string{"user:7"}, limiter.keys)
	})

	t.Run("exceeded", func(t *testing.T) {
		limiter := &stubLimiter{allowed: false}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.8:5555"
		limitedEngine(limiter, nil).ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, []string{"ip:10.0.0.8"}, limiter.keys)
	})

	t.Run("limiter down", func(t *testing.T) {
		limiter := &stubLimiter{err: errors.New("redis: connection refused")}
		w := httptest.NewRecorder()
		limitedEngine(limiter, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	})
}

func TestRouter_RateLimited(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	f := newFixture(t, func(cfg *RouterConfig) { cfg.Limiter = limiter })

	w := f.json(http.MethodGet, "/flights", f.token(t, user), "")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, []string{"user:7"}, limiter.keys)
	f.flights.AssertNumberOfCalls(t, "List", 0)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { respond(c, errors.New("pool closed")) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Len(t, hook.Entries, 2)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, 500, entry.Data["status"])
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "pool closed")
}
