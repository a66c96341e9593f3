package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

// ErrAirplaneTypeNotFound is returned when a type lookup yields no rows.
var ErrAirplaneTypeNotFound = errors.New("airplane type not found")

// AirplaneTypeRepo provides access to the airplane_types table.
type AirplaneTypeRepo struct {
	db *sql.DB
}

// NewAirplaneTypeRepo constructs an AirplaneTypeRepo with the given DB handle.
func NewAirplaneTypeRepo(db *sql.DB) *AirplaneTypeRepo {
	return &AirplaneTypeRepo{db: db}
}

// Create inserts an airplane type.  A duplicate name returns ErrDuplicate.
func (r *AirplaneTypeRepo) Create(ctx context.Context, t *model.AirplaneType) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO airplane_types (name) VALUES (?)`, t.Name)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID retrieves an airplane type by its ID.
func (r *AirplaneTypeRepo) GetByID(ctx context.Context, id uint64) (*model.AirplaneType, error) {
	var t model.AirplaneType
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM airplane_types WHERE id = ?`, id).
		Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAirplaneTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns all airplane types ordered by id.
func (r *AirplaneTypeRepo) List(ctx context.Context) ([]model.AirplaneType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM airplane_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AirplaneType
	for rows.Next() {
		var t model.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update renames an airplane type.
func (r *AirplaneTypeRepo) Update(ctx context.Context, t *model.AirplaneType) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE airplane_types SET name = ? WHERE id = ?`, t.Name, t.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, t.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an airplane type row.
func (r *AirplaneTypeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM airplane_types WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAirplaneTypeNotFound
	}
	return nil
}
