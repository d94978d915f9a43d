package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"evenza/ratelim"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every non-POST method on /api/event/one must return the fixed 405 body.
func TestEventOneMethodNotAllowed(t *testing.T) {
	router := NewRouter()
	AddEventRoutes(router, ratelim.NewRateLimiter())

	for _, method := range []string{
		http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch,
	} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/event/one", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "method_not_allowed", body["error"])
		})
	}
}

// POST itself must not trip the 405 handler; without a token it fails auth
// instead.
func TestEventOnePostReachesAuth(t *testing.T) {
	router := NewRouter()
	AddEventRoutes(router, ratelim.NewRateLimiter())

	req := httptest.NewRequest(http.MethodPost, "/api/event/one", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
