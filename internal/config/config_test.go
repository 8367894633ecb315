package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptIntDefaultsWhenUnset(t *testing.T) {
	t.Setenv("CHECKIN_LEAD_MIN", "")
	assert.Equal(t, 15, optInt("CHECKIN_LEAD_MIN", 15))
}

func TestOptIntReadsValue(t *testing.T) {
	t.Setenv("SCHEDULE_GRACE_MIN", "90")
	assert.Equal(t, 90, optInt("SCHEDULE_GRACE_MIN", 60))
}

func TestEnvBoolVariants(t *testing.T) {
	cases := map[string]bool{
		"1": true, "true": true, "YES": true, "on": true,
		"0": false, "false": false, "NO": false, "off": false,
	}
	for raw, want := range cases {
		t.Setenv("RATE_LIMIT_ENABLED", raw)
		assert.Equal(t, want, envBool("RATE_LIMIT_ENABLED", !want), "value %q", raw)
	}
	t.Setenv("RATE_LIMIT_ENABLED", "maybe")
	assert.True(t, envBool("RATE_LIMIT_ENABLED", true))
}

func TestParseMethodsNormalizes(t *testing.T) {
	m := parseMethods("get, head ,POST")
	assert.True(t, m["GET"])
	assert.True(t, m["HEAD"])
	assert.True(t, m["POST"])
	assert.False(t, m["DELETE"])
}

func TestParseDurFallsBackOnGarbage(t *testing.T) {
	assert.Equal(t, 30*time.Second, parseDur("30s"))
	assert.Equal(t, time.Second, parseDur("garbage"))
}

func TestRateLimitConfigClampsFloors(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	// TTL is raised to five refill intervals so bucket state outlives refills.
	assert.Equal(t, 10*time.Second, cfg.TTL)
}
