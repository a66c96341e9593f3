package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

// ErrAirportNotFound is returned when an airport lookup yields no rows.
var ErrAirportNotFound = errors.New("airport not found")

// AirportRow is an airport joined with its closest big city name.  CityName
// is nil when the airport has no city link.
type AirportRow struct {
	model.Airport
	CityName *string
}

// AirportRepo provides access to the airports table.
type AirportRepo struct {
	db *sql.DB
}

// NewAirportRepo constructs an AirportRepo with the given DB handle.
func NewAirportRepo(db *sql.DB) *AirportRepo {
	return &AirportRepo{db: db}
}

// Create inserts an airport.  A duplicate name returns ErrDuplicate.
func (r *AirportRepo) Create(ctx context.Context, a *model.Airport) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO airports (name, closest_big_city_id) VALUES (?, ?)`,
		a.Name, a.ClosestBigCityID)
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

// GetByID retrieves an airport with its city name via a LEFT JOIN so that
// airports whose city was deleted still resolve.
func (r *AirportRepo) GetByID(ctx context.Context, id uint64) (*AirportRow, error) {
	const q = `SELECT a.id, a.name, a.closest_big_city_id, c.name
	           FROM airports a
	           LEFT JOIN cities c ON c.id = a.closest_big_city_id
	           WHERE a.id = ?`
	var row AirportRow
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&row.ID, &row.Name, &row.ClosestBigCityID, &row.CityName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAirportNotFound
		}
		return nil, err
	}
	return &row, nil
}

// List returns all airports with city names, ordered by id.
func (r *AirportRepo) List(ctx context.Context) ([]AirportRow, error) {
	const q = `SELECT a.id, a.name, a.closest_big_city_id, c.name
	           FROM airports a
	           LEFT JOIN cities c ON c.id = a.closest_big_city_id
	           ORDER BY a.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AirportRow
	for rows.Next() {
		var row AirportRow
		if err := rows.Scan(&row.ID, &row.Name, &row.ClosestBigCityID, &row.CityName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes an airport's name and city link.
func (r *AirportRepo) Update(ctx context.Context, a *model.Airport) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE airports SET name = ?, closest_big_city_id = ? WHERE id = ?`,
		a.Name, a.ClosestBigCityID, a.ID)
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

// Delete removes an airport row.
func (r *AirportRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM airports WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAirportNotFound
	}
	return nil
}
