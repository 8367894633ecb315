package router

import (
	"github.com/labstack/echo/v4"

	"github.com/armanhn/office-seat-reservation/internal/handler"
	"github.com/armanhn/office-seat-reservation/internal/middleware"
)

// RegisterAdmin registers layout management endpoints under
// /v1/admin.  All routes require a valid JWT with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.POST("/buildings", h.CreateBuilding)
	g.PUT("/buildings/:id", h.UpdateBuilding)
	g.DELETE("/buildings/:id", h.DeleteBuilding)

	g.POST("/buildings/:id/floors", h.CreateFloor)
	g.PUT("/floors/:id", h.UpdateFloor)
	g.DELETE("/floors/:id", h.DeleteFloor)

	g.POST("/floors/:id/seats", h.CreateSeats)
	g.PUT("/seats/:id", h.UpdateSeat)
	g.PATCH("/seats/:id/availability", h.SetSeatAvailability)
	g.DELETE("/seats/:id", h.DeleteSeat)
}
