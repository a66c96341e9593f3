package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

// ErrCrewNotFound is returned when a crew lookup yields no rows.
var ErrCrewNotFound = errors.New("crew member not found")

// CrewRepo provides access to the crews table.
type CrewRepo struct {
	db *sql.DB
}

// NewCrewRepo constructs a CrewRepo with the given DB handle.
func NewCrewRepo(db *sql.DB) *CrewRepo {
	return &CrewRepo{db: db}
}

// Create inserts a crew member.  On success the ID field is populated.
func (r *CrewRepo) Create(ctx context.Context, c *model.Crew) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO crews (first_name, last_name) VALUES (?, ?)`, c.FirstName, c.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID retrieves a crew member by ID.
func (r *CrewRepo) GetByID(ctx context.Context, id uint64) (*model.Crew, error) {
	var c model.Crew
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name FROM crews WHERE id = ?`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCrewNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all crew members ordered by id.
func (r *CrewRepo) List(ctx context.Context) ([]model.Crew, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name FROM crews ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Crew
	for rows.Next() {
		var c model.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes a crew member's names.
func (r *CrewRepo) Update(ctx context.Context, c *model.Crew) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE crews SET first_name = ?, last_name = ? WHERE id = ?`,
		c.FirstName, c.LastName, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a crew row and its flight assignments.
func (r *CrewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM crews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCrewNotFound
	}
	return nil
}
