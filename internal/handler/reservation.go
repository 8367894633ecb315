package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/armanhn/office-seat-reservation/internal/config"
	"github.com/armanhn/office-seat-reservation/internal/domain"
	"github.com/armanhn/office-seat-reservation/internal/queue"
	"github.com/armanhn/office-seat-reservation/internal/repository"
	queuepub "github.com/armanhn/office-seat-reservation/internal/service"
)

// ReservationHandler serves the booking lifecycle for employees: placing
// a reservation on a seat, cancelling it, checking in and listing one's
// own bookings.  The admission and check-in decisions live in the domain
// package; this layer loads the seat aggregate inside a transaction,
// applies the rules with an explicit "now", persists the outcome and
// translates domain errors to HTTP statuses and reason codes.
type ReservationHandler struct {
	Cfg          config.Config
	Seats        *repository.SeatRepo
	Reservations *repository.ReservationRepo
	Floors       *repository.FloorRepo
	Buildings    *repository.BuildingRepo
}

// NewReservationHandler constructs a ReservationHandler and panics if any
// dependency is nil.
func NewReservationHandler(cfg config.Config, seats *repository.SeatRepo, reservations *repository.ReservationRepo, floors *repository.FloorRepo, buildings *repository.BuildingRepo) *ReservationHandler {
	if seats == nil || reservations == nil || floors == nil || buildings == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Cfg:          cfg,
		Seats:        seats,
		Reservations: reservations,
		Floors:       floors,
		Buildings:    buildings,
	}
}

type createReservationReq struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// reasonStatus maps a domain rejection to its HTTP status.  Bad input
// (ordering, past start) is the client's mistake; conflicts with seat
// state are 409; acting on someone else's booking is 403.
func reasonStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidTimeOrder), errors.Is(err, domain.ErrPastStartTime):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrWrongUser):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrTimeslotConflict),
		errors.Is(err, domain.ErrSeatUnavailable),
		errors.Is(err, domain.ErrAlreadyCheckedIn),
		errors.Is(err, domain.ErrOutsideCheckInWindow):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func domainErrorJSON(c echo.Context, err error) error {
	return c.JSON(reasonStatus(err), echo.Map{
		"error":  err.Error(),
		"reason": domain.Reason(err),
	})
}

// CreateReservation handles POST /v1/seats/:id/reservations.  The seat
// aggregate is loaded under a row lock, the candidate window is admitted
// by the domain rules, and the new reservation is appended together with
// an optimistic version bump.  A version conflict means a concurrent
// writer won; the request fails with 409 and the client decides whether
// to retry.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	seatID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || seatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at and ends_at are required"})
	}

	ctx := c.Request().Context()
	tx, err := h.Seats.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	seat, err := h.Seats.GetAggregateTx(ctx, tx, seatID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	res := domain.NewReservation(seatID, email, req.StartsAt.UTC(), req.EndsAt.UTC())
	if err := seat.AddReservation(res, time.Now().UTC()); err != nil {
		return domainErrorJSON(c, err)
	}

	if err := h.Seats.AppendReservationTx(ctx, tx, seat, res, userID); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat was modified concurrently, please retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.publishConfirmed(userID, email, seat, res)

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_id": res.ID,
		"seat_id":        seatID,
		"starts_at":      res.StartsAt,
		"ends_at":        res.EndsAt,
	})
}

// publishConfirmed emits the confirmation event in the background.  Event
// delivery is best effort; a broker outage never fails the booking.
func (h *ReservationHandler) publishConfirmed(userID uint64, email string, seat *domain.Seat, res *domain.Reservation) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ev := queue.ReservationConfirmedEvent{
			ReservationID: res.ID,
			UserID:        userID,
			UserEmail:     email,
			SeatID:        seat.ID,
			SeatName:      seat.Name,
			StartsAt:      res.StartsAt.UTC().Format(time.RFC3339),
			EndsAt:        res.EndsAt.UTC().Format(time.RFC3339),
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if floor, err := h.Floors.GetByID(ctx, seat.FloorID); err == nil {
			ev.FloorName = floor.Name
			if b, err := h.Buildings.GetByID(ctx, floor.BuildingID); err == nil {
				ev.BuildingName = b.Name
			}
		}
		if err := queuepub.PublishReservationConfirmed(ctx, ev); err != nil {
			log.Printf("reservation: publish confirmed event failed: %v", err)
		}
	}()
}

// CancelReservation handles DELETE /v1/reservations/:id.  Cancellation is
// a soft flag; the row stays in the seat's history and the slot becomes
// bookable again.  Cancelling twice succeeds because the flag is already
// set.
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx := c.Request().Context()
	info, err := h.Reservations.CancelForUser(ctx, resID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
	}

	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ev := queue.ReservationCancelledEvent{
			ReservationID: info.ID,
			UserID:        userID,
			UserEmail:     info.UserEmail,
			SeatID:        info.SeatID,
			StartsAt:      info.StartsAt.UTC().Format(time.RFC3339),
			EndsAt:        info.EndsAt.UTC().Format(time.RFC3339),
			CancelledAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if s, err := h.Seats.GetByID(pctx, info.SeatID); err == nil {
			ev.SeatName = s.Name
		}
		if err := queuepub.PublishReservationCancelled(pctx, ev); err != nil {
			log.Printf("reservation: publish cancelled event failed: %v", err)
		}
	}()

	return c.NoContent(http.StatusNoContent)
}

// CheckIn handles POST /v1/seats/:id/check-in.  The seat picks the
// reservation whose check-in window covers the current moment; the
// reservation then verifies ownership and the one-shot flag.  The three
// failure modes (outside window, wrong user, already checked in) surface
// as distinct reason codes.
func (h *ReservationHandler) CheckIn(c echo.Context) error {
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	seatID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || seatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}

	ctx := c.Request().Context()
	tx, err := h.Seats.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	seat, err := h.Seats.GetAggregateTx(ctx, tx, seatID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	lead := time.Duration(h.Cfg.CheckInLeadMin) * time.Minute
	res, err := seat.CheckIn(email, time.Now().UTC(), lead)
	if err != nil {
		return domainErrorJSON(c, err)
	}

	if err := h.Reservations.MarkCheckedInTx(ctx, tx, res.ID); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation state changed concurrently"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record check-in"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{
		"reservation_id": res.ID,
		"seat_id":        seatID,
		"checked_in":     true,
	})
}

// ListMyReservations handles GET /v1/my-reservations.  The rows come back
// with cancelled entries and owner emails so the grace-window filtering
// can run through the domain rules: anything cancelled or starting
// earlier than the configured grace before today's midnight is dropped.
func (h *ReservationHandler) ListMyReservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx := c.Request().Context()
	details, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}

	candidates := make([]*domain.Reservation, 0, len(details))
	for _, d := range details {
		candidates = append(candidates, &domain.Reservation{
			ID:        d.ID,
			SeatID:    d.SeatID,
			UserEmail: d.UserEmail,
			StartsAt:  d.StartsAt,
			EndsAt:    d.EndsAt,
			CheckedIn: d.CheckedIn,
			Cancelled: d.Cancelled,
		})
	}
	grace := time.Duration(h.Cfg.ScheduleGraceMin) * time.Minute
	kept := domain.FilterByUser(candidates, email, time.Now().UTC(), grace)
	keptIDs := make(map[uint64]struct{}, len(kept))
	for _, r := range kept {
		keptIDs[r.ID] = struct{}{}
	}

	items := make([]repository.ReservationDetail, 0, len(kept))
	for _, d := range details {
		if _, ok := keptIDs[d.ID]; ok {
			items = append(items, d)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
