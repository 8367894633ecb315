package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the user_id placed into the context by the JWT
// middleware and converts it to uint64.  JWT numeric claims arrive as
// float64; string subjects are parsed for robustness.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getEmail extracts the email claim placed into the context by the JWT
// middleware.  Reservations attribute their owner by email, so most
// protected handlers need this alongside the numeric user ID.
func getEmail(c echo.Context) (string, error) {
	if s, ok := c.Get("email").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("invalid email in context")
}
