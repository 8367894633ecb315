package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armanhn/office-seat-reservation/internal/config"
)

func TestEncodeDecodePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Custom", "a")
	hdr.Add("X-Custom", "b")
	body := []byte(`{"items":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, body, gotBody)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, []string{"a", "b"}, gotHdr["X-Custom"])
}

func TestDecodePayloadRejectsShortInput(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{1, 2, 3})
	assert.False(t, ok)
}

func TestDecodePayloadRejectsTruncatedHeader(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "text/plain")
	payload, err := encodePayload(http.StatusOK, hdr, []byte("hello"))
	require.NoError(t, err)

	_, _, _, ok := decodePayload(payload[:10])
	assert.False(t, ok)
}

func newTestContext(method, target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/floors/:id/seats")
	return c
}

func TestCacheKeyDependsOnQueryByDefault(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	a := cacheKeyFrom(cfg, newTestContext(http.MethodGet, "/v1/floors/7/seats?date=2025-06-02"))
	b := cacheKeyFrom(cfg, newTestContext(http.MethodGet, "/v1/floors/7/seats?date=2025-06-03"))
	assert.NotEqual(t, a, b)
}

func TestCacheKeyRouteStrategyIgnoresQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}
	a := cacheKeyFrom(cfg, newTestContext(http.MethodGet, "/v1/floors/7/seats?date=2025-06-02"))
	b := cacheKeyFrom(cfg, newTestContext(http.MethodGet, "/v1/floors/7/seats?date=2025-06-03"))
	assert.Equal(t, a, b)
}

func TestBuildRateKeyStrategies(t *testing.T) {
	c := newTestContext(http.MethodGet, "/v1/buildings")

	ipKey := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c)
	assert.Contains(t, ipKey, "rl:ip:")

	c.Set("user_id", "42")
	userKey := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}, c)
	assert.Equal(t, "rl:user:42", userKey)
}

func TestCurrentUserIDFallsBackToAnon(t *testing.T) {
	c := newTestContext(http.MethodGet, "/v1/buildings")
	assert.Equal(t, "anon", currentUserID(c))
}
