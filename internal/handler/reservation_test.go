package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armanhn/office-seat-reservation/internal/domain"
)

func TestReasonStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid time order", domain.ErrInvalidTimeOrder, http.StatusBadRequest},
		{"past start time", domain.ErrPastStartTime, http.StatusBadRequest},
		{"timeslot conflict", domain.ErrTimeslotConflict, http.StatusConflict},
		{"seat unavailable", domain.ErrSeatUnavailable, http.StatusConflict},
		{"already checked in", domain.ErrAlreadyCheckedIn, http.StatusConflict},
		{"outside window", domain.ErrOutsideCheckInWindow, http.StatusConflict},
		{"wrong user", domain.ErrWrongUser, http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reasonStatus(tc.err))
		})
	}
}

func testContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParseDayExplicitDate(t *testing.T) {
	day, start, end, err := parseDay(testContext("/v1/seats/1/schedule?date=2025-06-02"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), day)
	assert.Equal(t, day, start)
	assert.Equal(t, day.Add(24*time.Hour), end)
}

func TestParseDayDefaultsToToday(t *testing.T) {
	day, start, end, err := parseDay(testContext("/v1/seats/1/schedule"))
	require.NoError(t, err)
	now := time.Now().UTC()
	assert.Equal(t, now.Year(), day.Year())
	assert.Equal(t, now.YearDay(), day.YearDay())
	assert.Equal(t, day, start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestParseDayRejectsGarbage(t *testing.T) {
	_, _, _, err := parseDay(testContext("/v1/seats/1/schedule?date=junk"))
	assert.Error(t, err)
}

func TestGetUserIDAcceptsJWTNumericClaim(t *testing.T) {
	c := testContext("/v1/me")
	c.Set("user_id", float64(42))
	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestGetUserIDRejectsMissingClaim(t *testing.T) {
	_, err := getUserID(testContext("/v1/me"))
	assert.Error(t, err)
}

func TestGetEmail(t *testing.T) {
	c := testContext("/v1/me")
	_, err := getEmail(c)
	assert.Error(t, err)

	c.Set("email", "dana@example.com")
	email, err := getEmail(c)
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", email)
}
