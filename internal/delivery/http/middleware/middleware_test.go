package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"beauty-solutions-backend/internal/domain"
	"beauty-solutions-backend/pkg/apperror"
	"beauty-solutions-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Should block after the limit within one window", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		cfg := ContactRateLimitConfig(2, time.Minute)
		cfg.Audit = security.NewSecurityLogger(zap.New(core), "test", "test")

		r := gin.New()
		r.POST("/contact", RateLimitMiddleware(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

		codes := []int{}
		for i := 0; i < 3; i++ {
			codes = append(codes, serve(r, http.MethodPost, "/contact", nil).Code)
		}

		assert.Equal(t, []int{200, 200, 429}, codes)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, string(security.EventRateLimitTriggered), logs.All()[0].Message)
	})

	t.Run("Should count clients separately", func(t *testing.T) {
		cfg := ContactRateLimitConfig(1, time.Minute)
		cfg.KeyFunc = func(c *gin.Context) string { return c.GetHeader("X-Client") }

		r := gin.New()
		r.POST("/contact", RateLimitMiddleware(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

		a := serve(r, http.MethodPost, "/contact", http.Header{"X-Client": {"a"}})
		b := serve(r, http.MethodPost, "/contact", http.Header{"X-Client": {"b"}})

		assert.Equal(t, http.StatusOK, a.Code)
		assert.Equal(t, http.StatusOK, b.Code)
		assert.Equal(t, "0", b.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Should start a new window after expiry", func(t *testing.T) {
		store := newMemoryStore(50 * time.Millisecond)

		n1, _ := store.incr("k", 50*time.Millisecond)
		n2, _ := store.incr("k", 50*time.Millisecond)
		time.Sleep(80 * time.Millisecond)
		n3, _ := store.incr("k", 50*time.Millisecond)

		assert.Equal(t, []int{1, 2, 1}, []int{n1, n2, n3})
	})

	t.Run("Should be disabled by a zero limit", func(t *testing.T) {
		r := gin.New()
		r.POST("/contact", RateLimitMiddleware(ContactRateLimitConfig(0, time.Minute)), func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/contact", nil).Code)
		}
	})
}

func TestCORSMiddleware(t *testing.T) {
	newRouter := func(prod bool) *gin.Engine {
		r := gin.New()
		r.Use(CORSMiddleware([]string{"https://beautysolutions.com"}, prod))
		r.POST("/contact", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	t.Run("Should allow configured origins", func(t *testing.T) {
		w := serve(newRouter(true), http.MethodOptions, "/contact", http.Header{"Origin": {"https://beautysolutions.com"}})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://beautysolutions.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should refuse unknown origins", func(t *testing.T) {
		w := serve(newRouter(true), http.MethodOptions, "/contact", http.Header{"Origin": {"https://evil.test"}})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should allow localhost only outside production", func(t *testing.T) {
		dev := serve(newRouter(false), http.MethodOptions, "/contact", http.Header{"Origin": {"http://localhost:3000"}})
		prod := serve(newRouter(true), http.MethodOptions, "/contact", http.Header{"Origin": {"http://localhost:3000"}})
		assert.Equal(t, http.StatusNoContent, dev.Code)
		assert.Equal(t, http.StatusForbidden, prod.Code)
	})
}

func TestRequestID(t *testing.T) {
	var meta domain.RequestMeta
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		meta = domain.RequestMetaFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("Should reuse a well formed incoming id", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/", http.Header{"X-Request-Id": {"abc-123"}})
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc-123", meta.RequestID)
	})

	t.Run("Should replace a malformed id", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/", http.Header{"X-Request-Id": {"bad id\n"}})
		assert.NotEqual(t, "bad id\n", w.Header().Get(RequestIDHeader))
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) { c.Error(apperror.BadRequest("bad input")) })
	r.GET("/plain", func(c *gin.Context) { c.Error(errors.New("db exploded")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	t.Run("Should render app errors with their message", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/app", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"bad input"}`, w.Body.String())
	})

	t.Run("Should hide unknown errors", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/plain", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})

	t.Run("Should recover from panics", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/panic", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	})
}
