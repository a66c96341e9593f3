package model

// Crew is a crew member assignable to flights.
type Crew struct {
	ID        uint64 // crews.id
	FirstName string // crews.first_name
	LastName  string // crews.last_name
}
