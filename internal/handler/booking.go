package handler

import (
	"context"
	"fmt"

	"github.com/skyfleet/airline-booking-api/internal/queue"
	"github.com/skyfleet/airline-booking-api/internal/repository"
)

// BookingHandler bundles the repositories behind orders and tickets.  Every
// endpoint requires authentication; regular users only ever see their own
// records, staff see everything.  Publish, when set, receives a
// TicketBookedEvent after each successful ticket write; it runs on its own
// goroutine and its failures never affect the HTTP response.
type BookingHandler struct {
	Orders  *repository.OrderRepo
	Tickets *repository.TicketRepo
	Flights *repository.FlightRepo
	Publish func(ctx context.Context, event queue.TicketBookedEvent) error
}

// NewBookingHandler constructs a BookingHandler and panics if any repository
// is nil.  publish may be nil to disable event publishing.
func NewBookingHandler(
	orders *repository.OrderRepo,
	tickets *repository.TicketRepo,
	flights *repository.FlightRepo,
	publish func(ctx context.Context, event queue.TicketBookedEvent) error,
) *BookingHandler {
	if orders == nil || tickets == nil || flights == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Orders: orders, Tickets: tickets, Flights: flights, Publish: publish}
}

// seatBoundsErrors checks a 1-based seat position against an airplane's
// cabin layout and returns a per-field error map, or nil when the position
// fits.  The layout comes from the flight being booked at write time, so a
// reconfigured airplane is always checked against its current dimensions.
func seatBoundsErrors(row, seat, rows, seatsPerRow uint32) map[string]string {
	errs := map[string]string{}
	if row < 1 || row > rows {
		errs["row"] = fmt.Sprintf("row must be between 1 and %d", rows)
	}
	if seat < 1 || seat > seatsPerRow {
		errs["seat"] = fmt.Sprintf("seat must be between 1 and %d", seatsPerRow)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
