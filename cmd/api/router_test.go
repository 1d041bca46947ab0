package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/kiekky-matching/internal/auth"
	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"github.com/imadgeboyega/kiekky-matching/internal/profile"
)

func testRouter(deps *dependencies) http.Handler {
	svc := matching.NewService(matching.Stores{
		Interactions:    matching.NewMemoryInteractionStore(),
		SuccessPatterns: matching.NewMemorySuccessPatternStore(),
		Profiles:        profile.NewMemoryStore(),
	}, matching.DeriverConfig{})
	return newRouter(deps, matching.NewHandler(svc), auth.NewMiddleware("secret", false))
}

func TestHealth(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	router := testRouter(&dependencies{redis: client})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, map[string]interface{}{"redis": "ok"}, body["checks"])
}

func TestHealthRedisDownStaysHealthy(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	router := testRouter(&dependencies{redis: client})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(nil)

	// Record one interaction so the matching counters are exported
	body := `{"user_id":"a","target_user_id":"b","action":"like","timestamp":"2024-06-15T12:00:00Z"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/matching/interactions", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "matching_interactions_recorded_total")
}
