package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tripsearch/internal/middleware"
)

func TestLogging_RequestID(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "generated", header: ""},
		{name: "propagated", header: "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			var seen string
			h := middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.RequestID(r.Context())
				w.WriteHeader(http.StatusTeapot)
			}))

			req := httptest.NewRequest(http.MethodGet, "/search", nil)
			if tt.header != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.NotEmpty(t, seen)
			if tt.header != "" {
				assert.Equal(t, tt.header, seen)
			}
			assert.Equal(t, seen, rec.Header().Get(middleware.RequestIDHeader))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, seen, entry["request_id"])
			assert.InDelta(t, http.StatusTeapot, entry["status"], 0)
		})
	}
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") }),
		middleware.Logging(logger),
		middleware.Recover(logger),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "handler panic")
	assert.Contains(t, buf.String(), "request completed")
}
