package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

// ErrCountryNotFound is returned when a country lookup yields no rows.
var ErrCountryNotFound = errors.New("country not found")

// CountryRepo provides access to the countries table.
type CountryRepo struct {
	db *sql.DB
}

// NewCountryRepo constructs a CountryRepo with the given DB handle.
func NewCountryRepo(db *sql.DB) *CountryRepo {
	return &CountryRepo{db: db}
}

// Create inserts a country.  On success the ID field is populated.
// A duplicate name returns ErrDuplicate.
func (r *CountryRepo) Create(ctx context.Context, c *model.Country) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO countries (name) VALUES (?)`, c.Name)
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

// GetByID retrieves a country by its ID.
func (r *CountryRepo) GetByID(ctx context.Context, id uint64) (*model.Country, error) {
	var c model.Country
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM countries WHERE id = ?`, id).
		Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCountryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all countries ordered by id.
func (r *CountryRepo) List(ctx context.Context) ([]model.Country, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM countries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Country
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update renames a country.  Returns ErrCountryNotFound when no row matched
// and ErrDuplicate when the new name is taken.
func (r *CountryRepo) Update(ctx context.Context, c *model.Country) error {
	res, err := r.db.ExecContext(ctx, `UPDATE countries SET name = ? WHERE id = ?`, c.Name, c.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also zero for a no-op rename; confirm existence.
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a country row.
func (r *CountryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM countries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCountryNotFound
	}
	return nil
}
