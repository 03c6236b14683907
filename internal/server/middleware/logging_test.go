package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"log/slog"
)

func captureLogger(buf *strings.Builder) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func TestLoggingMiddleware_LevelEscalation(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "2xx logged as INFO", status: http.StatusOK, wantLevel: "INFO"},
		{name: "3xx logged as INFO", status: http.StatusNotModified, wantLevel: "INFO"},
		{name: "4xx logged as WARN", status: http.StatusUnprocessableEntity, wantLevel: "WARN"},
		{name: "5xx logged as ERROR", status: http.StatusBadGateway, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			wrapped := LoggingMiddleware(captureLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
			req.RemoteAddr = "10.1.2.3:4567"
			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)

			out := buf.String()
			assert.Contains(t, out, "HTTP request")
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, "/api/messages")
			assert.Contains(t, out, "10.1.2.3:4567")
		})
	}
}

func TestLoggingMiddleware_RequestAttributes(t *testing.T) {
	var buf strings.Builder
	wrapped := LoggingMiddleware(captureLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"accepted":2}`)) // 14 bytes
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/messages/batch", nil)
	req.Header.Set("User-Agent", "offsync/1.0")
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "method=POST")
	assert.Contains(t, out, "offsync/1.0")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "bytes_written=14")
	assert.Contains(t, out, "duration_ms")
}

func TestLoggingWithSkip(t *testing.T) {
	var buf strings.Builder
	wrapped := LoggingWithSkip(captureLogger(&buf), []string{"/healthz"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	// Health check не попадает в лог
	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, buf.String())

	// Обычный запрос логируется
	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/contacts", nil))
	assert.Contains(t, buf.String(), "/api/contacts")
}

func TestResponseWriter_Capture(t *testing.T) {
	t.Run("explicit status", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
		rw.WriteHeader(http.StatusConflict)
		assert.Equal(t, http.StatusConflict, rw.statusCode)
	})

	t.Run("implicit 200 on write", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
		_, err := rw.Write([]byte("ok"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rw.statusCode)
	})

	t.Run("bytes accumulate across writes", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

		for _, chunk := range []string{"[", `{"id":"a"}`, "]"} {
			n, err := rw.Write([]byte(chunk))
			require.NoError(t, err)
			assert.Equal(t, len(chunk), n)
		}
		assert.Equal(t, int64(12), rw.written)
	})
}
