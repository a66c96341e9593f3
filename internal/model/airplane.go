package model

// AirplaneType groups airplanes of the same make.  Type names are unique.
type AirplaneType struct {
	ID   uint64 // airplane_types.id
	Name string // airplane_types.name (unique)
}

// Airplane describes a physical aircraft and its seat layout.  Rows and
// SeatsPerRow define the cabin grid that ticket row/seat numbers are
// validated against.  The pair (Name, AirplaneTypeID) is unique.
//
// Fields:
//
//	ID             – primary key identifier.
//	Name           – airplane name, unique per type.
//	Rows           – number of seating rows (>= 1).
//	SeatsPerRow    – seats in each row (>= 1).
//	AirplaneTypeID – reference to the airplane type.
type Airplane struct {
	ID             uint64 // airplanes.id
	Name           string // airplanes.name
	Rows           uint32 // airplanes.rows
	SeatsPerRow    uint32 // airplanes.seats_per_row
	AirplaneTypeID uint64 // airplanes.airplane_type_id
}

// Capacity returns the total seat count of the cabin grid.
func (a Airplane) Capacity() uint32 {
	return a.Rows * a.SeatsPerRow
}
