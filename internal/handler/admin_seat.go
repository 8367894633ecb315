package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/armanhn/office-seat-reservation/internal/model"
	"github.com/armanhn/office-seat-reservation/internal/repository"
)

type seatReq struct {
	Name      string `json:"name"`
	PosX      int32  `json:"pos_x"`
	PosY      int32  `json:"pos_y"`
	Available *bool  `json:"available"`
}

// createSeatsReq accepts either a single seat (top-level fields) or a
// whole floor map in one request ("seats" array).
type createSeatsReq struct {
	seatReq
	Seats []seatReq `json:"seats"`
}

type availabilityReq struct {
	Available *bool `json:"available"`
}

// CreateSeats handles POST /v1/admin/floors/:id/seats.  The body either
// carries a single seat object or a "seats" array for bulk creation of a
// whole floor map.
func (h *AdminHandler) CreateSeats(c echo.Context) error {
	floorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || floorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor id"})
	}
	ctx := c.Request().Context()
	if _, err := h.FloorRepo.GetByID(ctx, floorID); err != nil {
		if errors.Is(err, repository.ErrFloorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var req createSeatsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.Seats) > 0 {
		seats := make([]model.Seat, 0, len(req.Seats))
		for _, s := range req.Seats {
			name := strings.TrimSpace(s.Name)
			if name == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "every seat needs a name"})
			}
			available := true
			if s.Available != nil {
				available = *s.Available
			}
			seats = append(seats, model.Seat{
				FloorID:   floorID,
				Name:      name,
				Available: available,
				PosX:      s.PosX,
				PosY:      s.PosY,
			})
		}
		if err := h.SeatRepo.CreateBulk(ctx, seats); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seats"})
		}
		return c.JSON(http.StatusCreated, echo.Map{"created": len(seats)})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name or seats array is required"})
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	seat := &model.Seat{
		FloorID:   floorID,
		Name:      name,
		Available: available,
		PosX:      req.PosX,
		PosY:      req.PosY,
	}
	if err := h.SeatRepo.Create(ctx, seat); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seat"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":        seat.ID,
		"floor_id":  seat.FloorID,
		"name":      seat.Name,
		"pos_x":     seat.PosX,
		"pos_y":     seat.PosY,
		"available": seat.Available,
	})
}

// UpdateSeat handles PUT /v1/admin/seats/:id.
func (h *AdminHandler) UpdateSeat(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	ctx := c.Request().Context()
	existing, err := h.SeatRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var req seatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = existing.Name
	}
	available := existing.Available
	if req.Available != nil {
		available = *req.Available
	}
	if err := h.SeatRepo.Update(ctx, id, name, req.PosX, req.PosY, available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update seat"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":        id,
		"name":      name,
		"pos_x":     req.PosX,
		"pos_y":     req.PosY,
		"available": available,
	})
}

// SetSeatAvailability handles PATCH /v1/admin/seats/:id/availability.
// Marking a seat unavailable blocks new reservations immediately;
// existing bookings are untouched.
func (h *AdminHandler) SetSeatAvailability(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var req availabilityReq
	if err := c.Bind(&req); err != nil || req.Available == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "available is required"})
	}
	if err := h.SeatRepo.SetAvailability(c.Request().Context(), id, *req.Available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update seat"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "available": *req.Available})
}

// DeleteSeat handles DELETE /v1/admin/seats/:id.  Deletion is refused
// with 409 while the seat still carries active upcoming reservations.
func (h *AdminHandler) DeleteSeat(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	if err := h.SeatRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat has active upcoming reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete seat"})
	}
	return c.NoContent(http.StatusNoContent)
}
