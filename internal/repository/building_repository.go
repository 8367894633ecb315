// This file defines repository methods for buildings. A Building is a
// venue that contains floors of bookable seats. Only minimal fields
// (ID, Name, Address) should be exposed in public API responses.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/armanhn/office-seat-reservation/internal/model"
)

// ErrBuildingNotFound is returned when a building cannot be found in the DB.
var ErrBuildingNotFound = errors.New("building not found")

// BuildingRepo encapsulates all database queries related to buildings.
type BuildingRepo struct {
	db *sql.DB
}

// NewBuildingRepo constructs a BuildingRepo with the provided DB handle.
func NewBuildingRepo(db *sql.DB) *BuildingRepo {
	return &BuildingRepo{db: db}
}

// Create inserts a new building into the database.  On success the
// building's ID field will be populated with the auto-generated value.
// After the insert, a SELECT is executed to populate the CreatedAt and
// UpdatedAt fields so that callers receive a fully populated record.
func (r *BuildingRepo) Create(ctx context.Context, b *model.Building) error {
	const qInsert = "INSERT INTO buildings (name, address) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, b.Name, b.Address)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	const qSelect = "SELECT name, address, created_at, updated_at FROM buildings WHERE id = ?"
	var address sql.NullString
	if err := r.db.QueryRowContext(ctx, qSelect, b.ID).Scan(&b.Name, &address, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	if address.Valid {
		a := address.String
		b.Address = &a
	}
	return nil
}

// GetByID fetches a building by its ID.  It returns ErrBuildingNotFound
// if no row is found.
func (r *BuildingRepo) GetByID(ctx context.Context, id uint64) (*model.Building, error) {
	const q = "SELECT id, name, address, created_at, updated_at FROM buildings WHERE id = ?"
	var b model.Building
	var address sql.NullString
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.Name, &address, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBuildingNotFound
		}
		return nil, err
	}
	if address.Valid {
		a := address.String
		b.Address = &a
	}
	return &b, nil
}

// ListAll returns all buildings ordered by id. It is used for public
// browsing endpoints so that any user can discover bookable locations.
func (r *BuildingRepo) ListAll(ctx context.Context) ([]*model.Building, error) {
	const q = `SELECT id, name, address FROM buildings ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Building
	for rows.Next() {
		b := &model.Building{}
		var address sql.NullString
		if err := rows.Scan(&b.ID, &b.Name, &address); err != nil {
			return nil, err
		}
		if address.Valid {
			a := address.String
			b.Address = &a
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes the building name and address.  It returns
// sql.ErrNoRows when no row is affected (not found).
func (r *BuildingRepo) Update(ctx context.Context, id uint64, name string, address *string) error {
	const q = `UPDATE buildings
	           SET name = ?, address = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, address, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a building and all dependent records (floors, seats and
// reservations) within a transaction. If the building does not exist,
// sql.ErrNoRows is returned.
func (r *BuildingRepo) Delete(ctx context.Context, id uint64) error {
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
	if err = tx.QueryRowContext(ctx, `SELECT id FROM buildings WHERE id = ?`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	// Cascade delete: reservations for seats on floors of this building
	if _, err = tx.ExecContext(ctx,
		`DELETE res FROM reservations res
		 JOIN seats s ON s.id = res.seat_id
		 JOIN floors f ON f.id = s.floor_id
		 WHERE f.building_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE s FROM seats s
		 JOIN floors f ON f.id = s.floor_id
		 WHERE f.building_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM floors WHERE building_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM buildings WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
