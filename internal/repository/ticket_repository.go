package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/skyfleet/airline-booking-api/internal/model"
)

// ErrTicketNotFound is returned when a ticket lookup yields no rows, or
// when an owner-scoped lookup hits a ticket belonging to someone else.
var ErrTicketNotFound = errors.New("ticket not found")

// SeatRef is a ticket in seat-map shape: position only, no purchase or
// ownership details.
type SeatRef struct {
	ID   uint64 `json:"id"`
	Row  uint32 `json:"row"`
	Seat uint32 `json:"seat"`
}

// TicketRepo provides access to the tickets table.  Ownership runs through
// the owning order: a ticket is visible to the user who created its order.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// Create inserts a ticket.  The (flight_id, seat_row, seat, order_id)
// unique key is the only serialization point for concurrent purchases; the
// second writer of an identical tuple gets ErrDuplicate.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	const q = `INSERT INTO tickets (order_id, flight_id, seat_row, seat) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.OrderID, t.FlightID, t.Row, t.Seat)
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

// GetByID retrieves a ticket regardless of owner.  Staff callers use this.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.QueryRowContext(ctx,
		`SELECT id, order_id, flight_id, seat_row, seat FROM tickets WHERE id = ?`, id).
		Scan(&t.ID, &t.OrderID, &t.FlightID, &t.Row, &t.Seat)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetByIDAndOwner retrieves a ticket only if its owning order belongs to
// the given user.
func (r *TicketRepo) GetByIDAndOwner(ctx context.Context, id, userID uint64) (*model.Ticket, error) {
	const q = `SELECT t.id, t.order_id, t.flight_id, t.seat_row, t.seat
	           FROM tickets t
	           JOIN orders o ON o.id = t.order_id
	           WHERE t.id = ? AND o.user_id = ?`
	var t model.Ticket
	err := r.db.QueryRowContext(ctx, q, id, userID).
		Scan(&t.ID, &t.OrderID, &t.FlightID, &t.Row, &t.Seat)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByOwner returns the tickets whose owning order belongs to userID.
func (r *TicketRepo) ListByOwner(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	const q = `SELECT t.id, t.order_id, t.flight_id, t.seat_row, t.seat
	           FROM tickets t
	           JOIN orders o ON o.id = t.order_id
	           WHERE o.user_id = ?
	           ORDER BY t.id`
	return r.list(ctx, q, userID)
}

// ListAll returns every ticket.  Staff callers only.
func (r *TicketRepo) ListAll(ctx context.Context) ([]model.Ticket, error) {
	return r.list(ctx,
		`SELECT id, order_id, flight_id, seat_row, seat FROM tickets ORDER BY id`)
}

// ListByOrder returns the tickets under one order.
func (r *TicketRepo) ListByOrder(ctx context.Context, orderID uint64) ([]model.Ticket, error) {
	return r.list(ctx,
		`SELECT id, order_id, flight_id, seat_row, seat FROM tickets WHERE order_id = ? ORDER BY id`,
		orderID)
}

func (r *TicketRepo) list(ctx context.Context, q string, args ...any) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Ticket
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.OrderID, &t.FlightID, &t.Row, &t.Seat); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SeatMap returns every booked seat on a flight ordered by row then seat.
// The reduced shape lets guests check availability without exposing who
// booked what.
func (r *TicketRepo) SeatMap(ctx context.Context, flightID uint64) ([]SeatRef, error) {
	const q = `SELECT id, seat_row, seat FROM tickets
	           WHERE flight_id = ?
	           ORDER BY seat_row, seat`
	rows, err := r.db.QueryContext(ctx, q, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SeatRef
	for rows.Next() {
		var s SeatRef
		if err := rows.Scan(&s.ID, &s.Row, &s.Seat); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a ticket's flight, order and seat position.  Staff
// callers only; seat bounds are validated by the caller against the target
// flight before this runs.
func (r *TicketRepo) Update(ctx context.Context, t *model.Ticket) error {
	const q = `UPDATE tickets SET order_id = ?, flight_id = ?, seat_row = ?, seat = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.OrderID, t.FlightID, t.Row, t.Seat, t.ID)
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

// Delete removes a ticket row.
func (r *TicketRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTicketNotFound
	}
	return nil
}
