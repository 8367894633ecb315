package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/armanhn/office-seat-reservation/internal/domain"
	"github.com/armanhn/office-seat-reservation/internal/model"
)

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// SeatRepo provides methods to work with seats in the database.  Besides
// plain CRUD it loads and saves the seat aggregate (seat row plus full
// reservation history) that the domain rules operate on.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *SeatRepo) DB() *sql.DB { return r.db }

// Create inserts a single seat record. On success the seat's ID is populated.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	const q = `INSERT INTO seats (floor_id, name, available, pos_x, pos_y)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.FloorID, s.Name, s.Available, s.PosX, s.PosY)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// CreateBulk inserts multiple seats in a single statement.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (floor_id, name, available, pos_x, pos_y) VALUES `
	args := make([]interface{}, 0, len(seats)*5)
	for i, seat := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, seat.FloorID, seat.Name, seat.Available, seat.PosX, seat.PosY)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// ListByFloor retrieves all seats of a floor ordered by name.
func (r *SeatRepo) ListByFloor(ctx context.Context, floorID uint64) ([]model.Seat, error) {
	const q = `SELECT id, floor_id, name, available, pos_x, pos_y, version, created_at, updated_at
	           FROM seats
	           WHERE floor_id = ?
	           ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, floorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(
			&s.ID, &s.FloorID, &s.Name, &s.Available, &s.PosX, &s.PosY,
			&s.Version, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat row by its id without its reservations.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, floor_id, name, available, pos_x, pos_y, version, created_at, updated_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.FloorID, &s.Name, &s.Available, &s.PosX, &s.PosY, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Update changes name, position and availability of a seat.  Returns
// sql.ErrNoRows when the seat does not exist.
func (r *SeatRepo) Update(ctx context.Context, id uint64, name string, posX, posY int32, available bool) error {
	const q = `UPDATE seats
	           SET name = ?, pos_x = ?, pos_y = ?, available = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, posX, posY, available, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetAvailability flips only the available flag.  Returns sql.ErrNoRows
// when the seat does not exist.
func (r *SeatRepo) SetAvailability(ctx context.Context, id uint64, available bool) error {
	const q = `UPDATE seats SET available = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, available, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a seat.  It refuses with ErrConflict while the seat
// still has active upcoming reservations.
func (r *SeatRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var upcoming int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations
		 WHERE seat_id = ? AND cancelled = 0 AND ends_at > UTC_TIMESTAMP()`, id).Scan(&upcoming); err != nil {
		return err
	}
	if upcoming > 0 {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM reservations WHERE seat_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM seats WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = sql.ErrNoRows
		return err
	}
	return nil
}

// GetAggregateTx loads the seat together with its full reservation
// history (cancelled entries included) for the domain rules to operate
// on.  The seat row is locked FOR UPDATE so that concurrent
// add-reservation requests on the same seat serialize their
// read-modify-write cycles inside their transactions.  Reservations
// come back in insertion order and carry the owning user's email for
// attribution.
func (r *SeatRepo) GetAggregateTx(ctx context.Context, tx *sql.Tx, seatID uint64) (*domain.Seat, error) {
	const q = `SELECT id, floor_id, name, available, pos_x, pos_y, version
	           FROM seats WHERE id = ? FOR UPDATE`
	seat := &domain.Seat{}
	err := tx.QueryRowContext(ctx, q, seatID).
		Scan(&seat.ID, &seat.FloorID, &seat.Name, &seat.Available, &seat.PosX, &seat.PosY, &seat.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}

	const resQ = `SELECT res.id, res.seat_id, u.email, res.starts_at, res.ends_at,
	                     res.checked_in, res.cancelled, res.created_at, res.updated_at
	              FROM reservations res
	              JOIN users u ON u.id = res.user_id
	              WHERE res.seat_id = ?
	              ORDER BY res.id`
	rows, err := tx.QueryContext(ctx, resQ, seatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		res := &domain.Reservation{}
		if err := rows.Scan(
			&res.ID, &res.SeatID, &res.UserEmail, &res.StartsAt, &res.EndsAt,
			&res.CheckedIn, &res.Cancelled, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		seat.Reservations = append(seat.Reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seat, nil
}

// ListAggregatesByFloor loads every seat on a floor together with its
// reservation history in two queries.  No locks are taken; this read
// path feeds the browse endpoints where a slightly stale view is fine.
func (r *SeatRepo) ListAggregatesByFloor(ctx context.Context, floorID uint64) ([]*domain.Seat, error) {
	const qSeats = `SELECT id, floor_id, name, available, pos_x, pos_y, version
	                FROM seats WHERE floor_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, qSeats, floorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]*domain.Seat, 0)
	byID := make(map[uint64]*domain.Seat)
	for rows.Next() {
		s := &domain.Seat{}
		if err := rows.Scan(&s.ID, &s.FloorID, &s.Name, &s.Available, &s.PosX, &s.PosY, &s.Version); err != nil {
			return nil, err
		}
		seats = append(seats, s)
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(seats) == 0 {
		return seats, nil
	}

	const qRes = `SELECT res.id, res.seat_id, u.email, res.starts_at, res.ends_at,
	                     res.checked_in, res.cancelled, res.created_at, res.updated_at
	              FROM reservations res
	              JOIN users u ON u.id = res.user_id
	              JOIN seats s ON s.id = res.seat_id
	              WHERE s.floor_id = ?
	              ORDER BY res.id`
	resRows, err := r.db.QueryContext(ctx, qRes, floorID)
	if err != nil {
		return nil, err
	}
	defer resRows.Close()
	for resRows.Next() {
		res := &domain.Reservation{}
		if err := resRows.Scan(
			&res.ID, &res.SeatID, &res.UserEmail, &res.StartsAt, &res.EndsAt,
			&res.CheckedIn, &res.Cancelled, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if s, ok := byID[res.SeatID]; ok {
			s.Reservations = append(s.Reservations, res)
		}
	}
	if err := resRows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// GetAggregate loads a single seat aggregate without locking, for read
// paths outside a write transaction.
func (r *SeatRepo) GetAggregate(ctx context.Context, seatID uint64) (*domain.Seat, error) {
	const q = `SELECT id, floor_id, name, available, pos_x, pos_y, version
	           FROM seats WHERE id = ?`
	seat := &domain.Seat{}
	err := r.db.QueryRowContext(ctx, q, seatID).
		Scan(&seat.ID, &seat.FloorID, &seat.Name, &seat.Available, &seat.PosX, &seat.PosY, &seat.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}

	const resQ = `SELECT res.id, res.seat_id, u.email, res.starts_at, res.ends_at,
	                     res.checked_in, res.cancelled, res.created_at, res.updated_at
	              FROM reservations res
	              JOIN users u ON u.id = res.user_id
	              WHERE res.seat_id = ?
	              ORDER BY res.id`
	rows, err := r.db.QueryContext(ctx, resQ, seatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		res := &domain.Reservation{}
		if err := rows.Scan(
			&res.ID, &res.SeatID, &res.UserEmail, &res.StartsAt, &res.EndsAt,
			&res.CheckedIn, &res.Cancelled, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		seat.Reservations = append(seat.Reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seat, nil
}

// AppendReservationTx persists a reservation freshly admitted by the
// domain rules and bumps the seat's optimistic version in the same
// transaction.  When the version check matches zero rows another writer
// won the race; ErrVersionConflict is returned and the caller must roll
// back without retrying.  The generated ID is set on the reservation.
func (r *SeatRepo) AppendReservationTx(ctx context.Context, tx *sql.Tx, seat *domain.Seat, res *domain.Reservation, userID uint64) error {
	const qInsert = `INSERT INTO reservations (seat_id, user_id, starts_at, ends_at)
	                 VALUES (?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, qInsert, seat.ID, userID, res.StartsAt.UTC(), res.EndsAt.UTC())
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	const qVersion = `UPDATE seats SET version = version + 1, updated_at = CURRENT_TIMESTAMP
	                  WHERE id = ? AND version = ?`
	verRes, err := tx.ExecContext(ctx, qVersion, seat.ID, seat.Version)
	if err != nil {
		return err
	}
	if n, _ := verRes.RowsAffected(); n == 0 {
		return ErrVersionConflict
	}
	seat.Version++
	return nil
}
