package model

// Route connects a source airport to a destination airport.  The pair
// (SourceID, DestinationID) is unique; the reverse direction is a distinct
// route.
//
// Fields:
//
//	ID            – primary key identifier.
//	SourceID      – departure airport.
//	DestinationID – arrival airport.
//	Distance      – route length in kilometres (>= 1).
type Route struct {
	ID            uint64 // routes.id
	SourceID      uint64 // routes.source_id
	DestinationID uint64 // routes.destination_id
	Distance      uint32 // routes.distance
}
