package hc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReady(t *testing.T) {
	healthy := Check{Name: "pool", Fn: func(ctx context.Context) error { return nil }}
	broken := Check{Name: "ledger", Fn: func(ctx context.Context) error { return errors.New("lp mismatch") }}

	w := httptest.NewRecorder()
	Handle("v1", healthy).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pool":"ok"`)

	w = httptest.NewRecorder()
	Handle("v1", healthy, broken).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "lp mismatch")

	w = httptest.NewRecorder()
	Handle("v1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, w.Body.String(), `"version":"v1"`)
}
