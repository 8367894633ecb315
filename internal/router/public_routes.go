package router

import (
	"github.com/labstack/echo/v4"

	"github.com/armanhn/office-seat-reservation/internal/handler"
)

// RegisterPublic registers unauthenticated browse endpoints.  The
// PublicHandler returns sanitized data for buildings, floors and seats;
// no JWT or role middleware applies.  The optional cache middleware
// short-circuits repeated reads of the floor map and schedules.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	// All bookable locations.
	g.GET("/buildings", p.GetBuildings)
	// Active floors of a building.
	g.GET("/buildings/:id/floors", p.GetFloorsByBuilding)
	// Floor map with per-seat status for a day (?date=YYYY-MM-DD).
	g.GET("/floors/:id/seats", p.GetSeatsByFloor)
	// One seat's booked windows for a day.
	g.GET("/seats/:id/schedule", p.GetSeatSchedule)
}
