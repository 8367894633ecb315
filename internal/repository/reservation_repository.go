package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ReservationRepo provides read and state-transition operations for
// reservations.  Admission of new reservations goes through
// SeatRepo.AppendReservationTx because it is a write on the seat
// aggregate; the operations here are the per-row transitions (cancel,
// check-in) and the read-side listings.  All timestamp fields are
// assumed to be stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ErrReservationNotFound is returned when a reservation lookup yields no rows.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationDetail carries a reservation together with its seat, floor
// and building context for display to users.  It is returned by
// ListByUser; the grace-period filtering of stale entries is applied by
// the caller through the domain rules, which is why cancelled rows and
// the owner email are included here.
type ReservationDetail struct {
	ID           uint64    `json:"id"`
	SeatID       uint64    `json:"seat_id"`
	SeatName     string    `json:"seat_name"`
	FloorID      uint64    `json:"floor_id"`
	FloorName    string    `json:"floor_name"`
	BuildingID   uint64    `json:"building_id"`
	BuildingName string    `json:"building_name"`
	UserEmail    string    `json:"-"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	CheckedIn    bool      `json:"checked_in"`
	Cancelled    bool      `json:"-"`
}

// ListByUser returns all reservations for the given user along with
// seat, floor and building details, ordered by start time ascending.
// When no reservations exist, an empty slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT res.id, res.seat_id, s.name, f.id, f.name, b.id, b.name,
	                  u.email, res.starts_at, res.ends_at, res.checked_in, res.cancelled
	           FROM reservations res
	           JOIN seats s ON s.id = res.seat_id
	           JOIN floors f ON f.id = s.floor_id
	           JOIN buildings b ON b.id = f.building_id
	           JOIN users u ON u.id = res.user_id
	           WHERE res.user_id = ?
	           ORDER BY res.starts_at`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(
			&d.ID, &d.SeatID, &d.SeatName, &d.FloorID, &d.FloorName, &d.BuildingID, &d.BuildingName,
			&d.UserEmail, &d.StartsAt, &d.EndsAt, &d.CheckedIn, &d.Cancelled,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// CancelledInfo describes a reservation that has just been cancelled so
// that the caller can publish an event without re-querying.
type CancelledInfo struct {
	ID        uint64
	SeatID    uint64
	UserEmail string
	StartsAt  time.Time
	EndsAt    time.Time
}

// CancelForUser soft-cancels a reservation owned by the given user.
// The row is never deleted; the cancelled flag is set and the entry
// stops participating in conflict checks.  Cancelling an
// already-cancelled reservation succeeds (the flag is already set),
// making the operation idempotent at the storage layer.  It returns
// ErrReservationNotFound when the id is unknown and ErrForbidden when
// the reservation belongs to a different user.
func (r *ReservationRepo) CancelForUser(ctx context.Context, reservationID, userID uint64) (*CancelledInfo, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `SELECT res.user_id, res.seat_id, u.email, res.starts_at, res.ends_at
	           FROM reservations res
	           JOIN users u ON u.id = res.user_id
	           WHERE res.id = ? FOR UPDATE`
	var info CancelledInfo
	var ownerID uint64
	if err := tx.QueryRowContext(ctx, q, reservationID).
		Scan(&ownerID, &info.SeatID, &info.UserEmail, &info.StartsAt, &info.EndsAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrForbidden
	}
	info.ID = reservationID

	const upd = `UPDATE reservations SET cancelled = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, reservationID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &info, nil
}

// MarkCheckedInTx persists a check-in decided by the domain rules.  The
// guarded WHERE clause keeps the flag monotonic: zero affected rows
// means a concurrent request already checked the reservation in or
// cancelled it after our aggregate snapshot was taken.
func (r *ReservationRepo) MarkCheckedInTx(ctx context.Context, tx *sql.Tx, reservationID uint64) error {
	const q = `UPDATE reservations SET checked_in = 1, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND checked_in = 0 AND cancelled = 0`
	res, err := tx.ExecContext(ctx, q, reservationID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVersionConflict
	}
	return nil
}
