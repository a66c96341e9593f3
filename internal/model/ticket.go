package model

// Ticket reserves one physical seat on a flight under an order.  Row and
// Seat are 1-based positions inside the airplane's cabin grid and must fall
// inside the flight airplane's Rows × SeatsPerRow layout; that check happens
// at write time because the airplane configuration can change between
// writes.  The tuple (flight, row, seat, order) is unique.
//
// Order and flight references are nullable: deleting either keeps the
// ticket row as an orphaned history record with the link cleared.
//
// Fields:
//
//	ID       – primary key identifier.
//	OrderID  – owning order, nil after order deletion.
//	FlightID – booked flight, nil after flight deletion.
//	Row      – cabin row (1-based).
//	Seat     – seat within the row (1-based).
type Ticket struct {
	ID       uint64  // tickets.id
	OrderID  *uint64 // tickets.order_id (nullable)
	FlightID *uint64 // tickets.flight_id (nullable)
	Row      uint32  // tickets.row
	Seat     uint32  // tickets.seat
}
