package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

// ErrRouteNotFound is returned when a route lookup yields no rows.
var ErrRouteNotFound = errors.New("route not found")

// RouteRow is a route joined with its endpoint airport names.
type RouteRow struct {
	model.Route
	SourceName      string
	DestinationName string
}

// RouteRepo provides access to the routes table.
type RouteRepo struct {
	db *sql.DB
}

// NewRouteRepo constructs a RouteRepo with the given DB handle.
func NewRouteRepo(db *sql.DB) *RouteRepo {
	return &RouteRepo{db: db}
}

// Create inserts a route.  The (source_id, destination_id) unique key
// surfaces as ErrDuplicate.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
	const q = `INSERT INTO routes (source_id, destination_id, distance) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance)
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
	rt.ID = uint64(id)
	return nil
}

// GetByID retrieves a route with airport names.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (*RouteRow, error) {
	const q = `SELECT r.id, r.source_id, r.destination_id, r.distance, s.name, d.name
	           FROM routes r
	           JOIN airports s ON s.id = r.source_id
	           JOIN airports d ON d.id = r.destination_id
	           WHERE r.id = ?`
	var row RouteRow
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&row.ID, &row.SourceID, &row.DestinationID, &row.Distance,
			&row.SourceName, &row.DestinationName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	return &row, nil
}

// List returns all routes with airport names, ordered by id.
func (r *RouteRepo) List(ctx context.Context) ([]RouteRow, error) {
	const q = `SELECT r.id, r.source_id, r.destination_id, r.distance, s.name, d.name
	           FROM routes r
	           JOIN airports s ON s.id = r.source_id
	           JOIN airports d ON d.id = r.destination_id
	           ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RouteRow
	for rows.Next() {
		var row RouteRow
		if err := rows.Scan(&row.ID, &row.SourceID, &row.DestinationID, &row.Distance,
			&row.SourceName, &row.DestinationName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes a route's endpoints and distance.
func (r *RouteRepo) Update(ctx context.Context, rt *model.Route) error {
	const q = `UPDATE routes SET source_id = ?, destination_id = ?, distance = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rt.SourceID, rt.DestinationID, rt.Distance, rt.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, rt.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a route row.
func (r *RouteRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRouteNotFound
	}
	return nil
}
