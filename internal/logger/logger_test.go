package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observe installs an observer logger for the duration of the test.
func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	prev := Set(zap.New(core))
	t.Cleanup(func() { Set(prev) })
	return logs
}

func TestNew(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		l, err := New(env)
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}

func TestL_LazyInit(t *testing.T) {
	prev := Set(nil)
	defer Set(prev)
	t.Setenv("APP_ENV", "test")

	assert.NotNil(t, L())
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFrom(ctx))
	assert.Equal(t, "", RequestIDFrom(context.Background()))
}

func TestFromCtx(t *testing.T) {
	logs := observe(t)

	FromCtx(WithRequestID(context.Background(), "req-abc")).Info("with id")
	FromCtx(context.Background()).Info("without id")

	entries := logs.TakeAll()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-abc", entries[0].ContextMap()["request_id"])
	_, ok := entries[1].ContextMap()["request_id"]
	assert.False(t, ok)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	t.Run("Generates ID when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set(RequestIDHeader, "client-id-7")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "client-id-7", seen)
		assert.Equal(t, "client-id-7", w.Header().Get(RequestIDHeader))
	})
}

func TestLoggingMiddleware(t *testing.T) {
	logs := observe(t)

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/products", nil))

	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	assert.Equal(t, "incoming request", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/products", fields["path"])
	assert.Equal(t, "POST", fields["method"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, Sync)
}
