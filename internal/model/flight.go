package model

import "time"

// Flight schedules an airplane on a route with an assigned crew set.  The
// crew links live in the `flight_crews` join table and are loaded
// separately.
//
// Fields:
//
//	ID            – primary key identifier.
//	RouteID       – route being flown.
//	AirplaneID    – airplane operating the flight.
//	DepartureTime – scheduled departure (UTC).
//	ArrivalTime   – scheduled arrival (UTC).
type Flight struct {
	ID            uint64    // flights.id
	RouteID       uint64    // flights.route_id
	AirplaneID    uint64    // flights.airplane_id
	DepartureTime time.Time // flights.departure_time
	ArrivalTime   time.Time // flights.arrival_time
}
