package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

// ErrFlightNotFound is returned when a flight lookup yields no rows.
var ErrFlightNotFound = errors.New("flight not found")

// FlightRow is a flight joined with route endpoints and the airplane's seat
// layout.  The layout fields are what ticket row/seat bounds are checked
// against.
type FlightRow struct {
	model.Flight
	SourceName      string
	DestinationName string
	Distance        uint32
	AirplaneName    string
	AirplaneRows    uint32
	SeatsPerRow     uint32
}

// FlightRepo provides access to flights and their crew assignments.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo constructs a FlightRepo with the given DB handle.
func NewFlightRepo(db *sql.DB) *FlightRepo {
	return &FlightRepo{db: db}
}

const flightSelect = `SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
	       s.name, d.name, r.distance, a.name, a.seat_rows, a.seats_per_row
	FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN airports s ON s.id = r.source_id
	JOIN airports d ON d.id = r.destination_id
	JOIN airplanes a ON a.id = f.airplane_id`

func scanFlight(sc interface{ Scan(...any) error }, row *FlightRow) error {
	return sc.Scan(&row.ID, &row.RouteID, &row.AirplaneID, &row.DepartureTime, &row.ArrivalTime,
		&row.SourceName, &row.DestinationName, &row.Distance,
		&row.AirplaneName, &row.AirplaneRows, &row.SeatsPerRow)
}

// Create inserts a flight and its crew links in one transaction.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight, crewIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time) VALUES (?, ?, ?, ?)`,
		f.RouteID, f.AirplaneID, f.DepartureTime, f.ArrivalTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)

	for _, cid := range crewIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO flight_crews (flight_id, crew_id) VALUES (?, ?)`, f.ID, cid); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetByID retrieves a flight with route and airplane details.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*FlightRow, error) {
	var row FlightRow
	err := scanFlight(r.db.QueryRowContext(ctx, flightSelect+` WHERE f.id = ?`, id), &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &row, nil
}

// List returns all flights with route and airplane details, ordered by id.
func (r *FlightRepo) List(ctx context.Context) ([]FlightRow, error) {
	rows, err := r.db.QueryContext(ctx, flightSelect+` ORDER BY f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FlightRow
	for rows.Next() {
		var row FlightRow
		if err := scanFlight(rows, &row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CrewByFlight returns the crew members assigned to a flight.
func (r *FlightRepo) CrewByFlight(ctx context.Context, flightID uint64) ([]model.Crew, error) {
	const q = `SELECT c.id, c.first_name, c.last_name
	           FROM crews c
	           JOIN flight_crews fc ON fc.crew_id = c.id
	           WHERE fc.flight_id = ?
	           ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, q, flightID)
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

// Update changes a flight's schedule and, when crewIDs is non-nil, replaces
// its crew assignments.
func (r *FlightRepo) Update(ctx context.Context, f *model.Flight, crewIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE flights SET route_id = ?, airplane_id = ?, departure_time = ?, arrival_time = ? WHERE id = ?`,
		f.RouteID, f.AirplaneID, f.DepartureTime, f.ArrivalTime, f.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists uint64
		err := tx.QueryRowContext(ctx, `SELECT id FROM flights WHERE id = ?`, f.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFlightNotFound
		}
		if err != nil {
			return err
		}
	}
	if crewIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM flight_crews WHERE flight_id = ?`, f.ID); err != nil {
			return err
		}
		for _, cid := range crewIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO flight_crews (flight_id, crew_id) VALUES (?, ?)`, f.ID, cid); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// Delete removes a flight row.  Tickets referencing the flight keep their
// rows with the link cleared (ON DELETE SET NULL).
func (r *FlightRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flights WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFlightNotFound
	}
	return nil
}
