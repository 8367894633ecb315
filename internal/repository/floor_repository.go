package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/armanhn/office-seat-reservation/internal/model"
)

// ErrFloorNotFound is returned when a floor lookup fails.
var ErrFloorNotFound = errors.New("floor not found")

// FloorRepo provides methods to create and retrieve floors.
type FloorRepo struct {
	db *sql.DB
}

// NewFloorRepo constructs a FloorRepo with the given DB handle.
func NewFloorRepo(db *sql.DB) *FloorRepo {
	return &FloorRepo{db: db}
}

// Create inserts a new floor into the database.  The floor must have
// BuildingID and Name set.  After the insert the record is read back so
// timestamp and status fields are populated too.
func (r *FloorRepo) Create(ctx context.Context, f *model.Floor) error {
	const qInsert = `INSERT INTO floors (building_id, name, description)
	                 VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, f.BuildingID, f.Name, f.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)

	const qSelect = `SELECT id, building_id, name, description, is_active, created_at, updated_at
	                 FROM floors WHERE id = ?`
	var description sql.NullString
	if err := r.db.QueryRowContext(ctx, qSelect, f.ID).
		Scan(&f.ID, &f.BuildingID, &f.Name, &description, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return err
	}
	if description.Valid {
		d := description.String
		f.Description = &d
	}
	return nil
}

// GetByID retrieves a floor by its ID.  It returns ErrFloorNotFound
// when no row is found.
func (r *FloorRepo) GetByID(ctx context.Context, id uint64) (*model.Floor, error) {
	const q = `SELECT id, building_id, name, description, is_active, created_at, updated_at FROM floors WHERE id = ?`
	var f model.Floor
	var description sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&f.ID, &f.BuildingID, &f.Name, &description, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFloorNotFound
		}
		return nil, err
	}
	if description.Valid {
		d := description.String
		f.Description = &d
	}
	return &f, nil
}

// ListByBuilding returns all floors inside a building ordered by id.
// Useful for GET /v1/buildings/:id/floors.
func (r *FloorRepo) ListByBuilding(ctx context.Context, buildingID uint64) ([]*model.Floor, error) {
	const q = `SELECT id, building_id, name, description, is_active, created_at, updated_at
	           FROM floors
	           WHERE building_id = ?
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Floor
	for rows.Next() {
		f := new(model.Floor)
		var description sql.NullString
		if err := rows.Scan(&f.ID, &f.BuildingID, &f.Name, &description, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			d := description.String
			f.Description = &d
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes floor fields (name/description/is_active).  Returns
// sql.ErrNoRows when not found.
func (r *FloorRepo) Update(ctx context.Context, f *model.Floor) error {
	const q = `UPDATE floors
	           SET name = ?, description = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, f.Name, f.Description, f.IsActive, f.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a floor together with its seats and their reservations.
// It returns ErrConflict when any seat on the floor still has an active
// upcoming reservation so that admins cannot silently strand bookings.
func (r *FloorRepo) Delete(ctx context.Context, id uint64) error {
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
	var exists uint64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM floors WHERE id = ?`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	var upcoming int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations res
		 JOIN seats s ON s.id = res.seat_id
		 WHERE s.floor_id = ? AND res.cancelled = 0 AND res.ends_at > UTC_TIMESTAMP()`, id).Scan(&upcoming); err != nil {
		return err
	}
	if upcoming > 0 {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE res FROM reservations res
		 JOIN seats s ON s.id = res.seat_id
		 WHERE s.floor_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM seats WHERE floor_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM floors WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
