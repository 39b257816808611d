package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kislikjeka/bookkeeper/internal/transport/httpapi/handler"
)

func ping(err error) handler.PingerFunc {
	return func(context.Context) error { return err }
}

func TestHealthHandler_GetHealthDetailed(t *testing.T) {
	down := errors.New("connection refused")

	tests := []struct {
		name       string
		db, cache  handler.Pinger
		wantStatus int
		wantState  string
	}{
		{"all healthy", ping(nil), ping(nil), http.StatusOK, "ok"},
		{"cache down degrades", ping(nil), ping(down), http.StatusOK, "degraded"},
		{"database down", ping(down), ping(nil), http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(tt.db, tt.cache, func() any { return map[string]int{"max_conns": 25} })

			rec := httptest.NewRecorder()
			h.GetHealthDetailed(rec, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handler.HealthResponse
			decodeBody(t, rec, &resp)
			assert.Equal(t, tt.wantState, resp.Status)
			assert.Contains(t, resp.Checks, "cache")
			require.NotNil(t, resp.Pool)
		})
	}
}

func TestHealthHandler_GetReadiness(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.NewHealthHandler(ping(nil), nil, nil).GetReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.NewHealthHandler(ping(errors.New("down")), nil, nil).GetReadiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
