package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

// ErrAirplaneNotFound is returned when an airplane lookup yields no rows.
var ErrAirplaneNotFound = errors.New("airplane not found")

// AirplaneRow is an airplane joined with its type name for read shapes.
type AirplaneRow struct {
	model.Airplane
	TypeName string
}

// AirplaneRepo provides access to the airplanes table.
type AirplaneRepo struct {
	db *sql.DB
}

// NewAirplaneRepo constructs an AirplaneRepo with the given DB handle.
func NewAirplaneRepo(db *sql.DB) *AirplaneRepo {
	return &AirplaneRepo{db: db}
}

// Create inserts an airplane.  The (name, airplane_type_id) unique key
// surfaces as ErrDuplicate.
func (r *AirplaneRepo) Create(ctx context.Context, a *model.Airplane) error {
	const q = `INSERT INTO airplanes (name, seat_rows, seats_per_row, airplane_type_id)
	           VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.Rows, a.SeatsPerRow, a.AirplaneTypeID)
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
	a.ID = uint64(id)
	return nil
}

// GetByID retrieves an airplane with its type name.
func (r *AirplaneRepo) GetByID(ctx context.Context, id uint64) (*AirplaneRow, error) {
	const q = `SELECT a.id, a.name, a.seat_rows, a.seats_per_row, a.airplane_type_id, t.name
	           FROM airplanes a
	           JOIN airplane_types t ON t.id = a.airplane_type_id
	           WHERE a.id = ?`
	var row AirplaneRow
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&row.ID, &row.Name, &row.Rows, &row.SeatsPerRow, &row.AirplaneTypeID, &row.TypeName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAirplaneNotFound
		}
		return nil, err
	}
	return &row, nil
}

// List returns all airplanes with type names, ordered by id.
func (r *AirplaneRepo) List(ctx context.Context) ([]AirplaneRow, error) {
	const q = `SELECT a.id, a.name, a.seat_rows, a.seats_per_row, a.airplane_type_id, t.name
	           FROM airplanes a
	           JOIN airplane_types t ON t.id = a.airplane_type_id
	           ORDER BY a.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AirplaneRow
	for rows.Next() {
		var row AirplaneRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Rows, &row.SeatsPerRow,
			&row.AirplaneTypeID, &row.TypeName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes an airplane's name, layout and type.
func (r *AirplaneRepo) Update(ctx context.Context, a *model.Airplane) error {
	const q = `UPDATE airplanes
	           SET name = ?, seat_rows = ?, seats_per_row = ?, airplane_type_id = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.Rows, a.SeatsPerRow, a.AirplaneTypeID, a.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, a.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an airplane row.
func (r *AirplaneRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM airplanes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAirplaneNotFound
	}
	return nil
}
