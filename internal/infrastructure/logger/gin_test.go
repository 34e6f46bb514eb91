package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRouter() (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	engine := gin.New()
	engine.Use(Recovery(log))
	engine.Use(GinMiddleware(log))
	return engine, logs
}

func TestGinMiddleware(t *testing.T) {
	t.Run("logs a successful request at info", func(t *testing.T) {
		engine, logs := newObservedRouter()
		engine.GET("/bookings/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/bookings/42?expand=items", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.InfoLevel, entry.Level)
		ctx := entry.ContextMap()
		assert.Equal(t, int64(http.StatusOK), ctx["status"])
		assert.Equal(t, http.MethodGet, ctx["method"])
		assert.Equal(t, "/bookings/42", ctx["path"])
		assert.Equal(t, "expand=items", ctx["query"])
	})

	t.Run("logs client errors at warn", func(t *testing.T) {
		engine, logs := newObservedRouter()
		engine.GET("/missing", func(c *gin.Context) {
			c.Status(http.StatusNotFound)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	})

	t.Run("logs server errors at error level", func(t *testing.T) {
		engine, logs := newObservedRouter()
		engine.GET("/broken", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	})

	t.Run("carries the request ID when set upstream", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		core, logs := observer.New(zapcore.DebugLevel)
		engine := gin.New()
		engine.Use(func(c *gin.Context) {
			c.Set("request_id", "req-123")
			c.Next()
		})
		engine.Use(GinMiddleware(zap.New(core)))
		engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "req-123", logs.All()[0].ContextMap()["request_id"])
	})
}

func TestRecovery(t *testing.T) {
	t.Run("turns a panic into a 500 and logs the stack", func(t *testing.T) {
		engine, logs := newObservedRouter()
		engine.GET("/panic", func(c *gin.Context) {
			panic("ledger exploded")
		})

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		panicEntries := logs.FilterMessage("panic recovered").All()
		require.Len(t, panicEntries, 1)
		assert.Equal(t, zapcore.ErrorLevel, panicEntries[0].Level)
		assert.Equal(t, "ledger exploded", panicEntries[0].ContextMap()["panic"])
	})
}
