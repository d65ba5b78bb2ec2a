package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/PauloCruz06/batepapo-uol-api/internal/store"
)

func newRouter() http.Handler {
	return NewRouter(zerolog.Nop(), store.NewMemoryStore())
}

func TestHealth(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "batepapo_")
}

func TestRequireJSONContentType(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodPost, "/participants", strings.NewReader(`{"name":"Ana"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRegisterThroughFullStack(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodPost, "/participants", strings.NewReader(`{"name":"Ana"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestBodyTooLarge(t *testing.T) {
	r := newRouter()

	big := `{"name":"` + strings.Repeat("a", 9*1024) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/participants", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
