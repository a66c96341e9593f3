package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

// ErrCityNotFound is returned when a city lookup yields no rows.
var ErrCityNotFound = errors.New("city not found")

// CityRow is a city joined with its country name for read shapes.
type CityRow struct {
	model.City
	CountryName string
}

// CityRepo provides access to the cities table.
type CityRepo struct {
	db *sql.DB
}

// NewCityRepo constructs a CityRepo with the given DB handle.
func NewCityRepo(db *sql.DB) *CityRepo {
	return &CityRepo{db: db}
}

// Create inserts a city.  On success the ID field is populated.
func (r *CityRepo) Create(ctx context.Context, c *model.City) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cities (name, country_id) VALUES (?, ?)`, c.Name, c.CountryID)
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
	c.ID = uint64(id)
	return nil
}

// GetByID retrieves a city with its country name.
func (r *CityRepo) GetByID(ctx context.Context, id uint64) (*CityRow, error) {
	const q = `SELECT c.id, c.name, c.country_id, co.name
	           FROM cities c
	           JOIN countries co ON co.id = c.country_id
	           WHERE c.id = ?`
	var row CityRow
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&row.ID, &row.Name, &row.CountryID, &row.CountryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return &row, nil
}

// List returns all cities with country names, ordered by id.
func (r *CityRepo) List(ctx context.Context) ([]CityRow, error) {
	const q = `SELECT c.id, c.name, c.country_id, co.name
	           FROM cities c
	           JOIN countries co ON co.id = c.country_id
	           ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CityRow
	for rows.Next() {
		var row CityRow
		if err := rows.Scan(&row.ID, &row.Name, &row.CountryID, &row.CountryName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes a city's name and country.
func (r *CityRepo) Update(ctx context.Context, c *model.City) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cities SET name = ?, country_id = ? WHERE id = ?`, c.Name, c.CountryID, c.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a city row.  Airports referencing the city keep their rows
// with the link cleared (ON DELETE SET NULL).
func (r *CityRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCityNotFound
	}
	return nil
}
