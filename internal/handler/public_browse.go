// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines the public browsing API: unauthenticated
// users can discover buildings, floors and seats and inspect a seat's
// schedule for a day. Sensitive fields (owner emails, timestamps) are
// filtered from responses.

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/armanhn/office-seat-reservation/internal/domain"
	"github.com/armanhn/office-seat-reservation/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
type PublicHandler struct {
	BuildingRepo *repository.BuildingRepo
	FloorRepo    *repository.FloorRepo
	SeatRepo     *repository.SeatRepo
}

// PublicBuilding represents a building exposed via the public API. It
// contains only safe fields.
type PublicBuilding struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

// PublicFloor represents a floor exposed via the public API.
type PublicFloor struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// PublicSeat represents a seat on a floor map together with its derived
// booking status over the requested day.
type PublicSeat struct {
	ID        uint64            `json:"id"`
	Name      string            `json:"name"`
	PosX      int32             `json:"pos_x"`
	PosY      int32             `json:"pos_y"`
	Available bool              `json:"available"`
	Status    domain.SeatStatus `json:"status"`
}

// PublicReservationSlot is one booked window on a seat's daily schedule.
// Owner identity is deliberately withheld.
type PublicReservationSlot struct {
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	CheckedIn bool      `json:"checked_in"`
}

// parseDay interprets the optional ?date=YYYY-MM-DD query parameter,
// defaulting to today in UTC.  The returned window is [00:00, 24:00) of
// that day.
func parseDay(c echo.Context) (day, windowStart, windowEnd time.Time, err error) {
	raw := c.QueryParam("date")
	if raw == "" {
		now := time.Now().UTC()
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		day, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, time.Time{}, err
		}
	}
	return day, day, day.Add(24 * time.Hour), nil
}

// GetBuildings returns all buildings open for browsing.
func (h *PublicHandler) GetBuildings(c echo.Context) error {
	ctx := c.Request().Context()
	buildings, err := h.BuildingRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicBuilding, 0, len(buildings))
	for _, b := range buildings {
		out = append(out, PublicBuilding{ID: b.ID, Name: b.Name, Address: b.Address})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetFloorsByBuilding lists active floors of a building.  It validates
// that the building exists before listing.
func (h *PublicHandler) GetFloorsByBuilding(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.BuildingRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrBuildingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "building not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	floors, err := h.FloorRepo.ListByBuilding(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicFloor, 0, len(floors))
	for _, f := range floors {
		if !f.IsActive {
			continue
		}
		out = append(out, PublicFloor{ID: f.ID, Name: f.Name, Description: f.Description})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetSeatsByFloor renders the floor map: every seat with its position
// metadata and its booking status over the requested day.  An optional
// ?date=YYYY-MM-DD query selects a day other than today.
func (h *PublicHandler) GetSeatsByFloor(c echo.Context) error {
	ctx := c.Request().Context()
	floorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.FloorRepo.GetByID(ctx, floorID); err != nil {
		if err == repository.ErrFloorNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	day, windowStart, windowEnd, err := parseDay(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	seats, err := h.SeatRepo.ListAggregatesByFloor(ctx, floorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicSeat, 0, len(seats))
	for _, s := range seats {
		out = append(out, PublicSeat{
			ID:        s.ID,
			Name:      s.Name,
			PosX:      s.PosX,
			PosY:      s.PosY,
			Available: s.Available,
			Status:    domain.DeriveStatus(s, windowStart, windowEnd),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":  day.Format("2006-01-02"),
		"items": out,
	})
}

// GetSeatSchedule returns a single seat's booked windows for a day along
// with the derived status.  The caller can use it to pick a free slot
// before reserving.
func (h *PublicHandler) GetSeatSchedule(c echo.Context) error {
	ctx := c.Request().Context()
	seatID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	day, windowStart, windowEnd, err := parseDay(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	seat, err := h.SeatRepo.GetAggregate(ctx, seatID)
	if err != nil {
		if err == repository.ErrSeatNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	slots := make([]PublicReservationSlot, 0)
	for _, r := range domain.FilterByDate(seat.Reservations, day) {
		slots = append(slots, PublicReservationSlot{
			StartsAt:  r.StartsAt,
			EndsAt:    r.EndsAt,
			CheckedIn: r.CheckedIn,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"seat_id":      seat.ID,
		"name":         seat.Name,
		"date":         day.Format("2006-01-02"),
		"status":       domain.DeriveStatus(seat, windowStart, windowEnd),
		"reservations": slots,
	})
}
