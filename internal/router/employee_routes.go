package router

import (
	"github.com/labstack/echo/v4"

	"github.com/armanhn/office-seat-reservation/internal/handler"
	"github.com/armanhn/office-seat-reservation/internal/middleware"
)

// RegisterEmployee registers the booking lifecycle endpoints under /v1.
// All routes require a valid JWT; both roles may book seats.  Employees
// reserve a seat for a time window, cancel their own bookings, check in
// on arrival and list their upcoming reservations.
func RegisterEmployee(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("EMPLOYEE", "ADMIN"),
	)
	g.POST("/seats/:id/reservations", h.CreateReservation)
	g.POST("/seats/:id/check-in", h.CheckIn)
	g.DELETE("/reservations/:id", h.CancelReservation)
	g.GET("/my-reservations", h.ListMyReservations)
}
