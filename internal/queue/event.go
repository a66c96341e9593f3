// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketBookedEvent is published after a ticket is written.  It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type TicketBookedEvent struct {
	TicketID uint64 `json:"ticket_id"`
	OrderID  uint64 `json:"order_id"`
	UserID   uint64 `json:"user_id"`
	FlightID uint64 `json:"flight_id"`
	Route    string `json:"route"`
	Row      uint32 `json:"row"`
	Seat     uint32 `json:"seat"`
	BookedAt string `json:"booked_at"`
}
