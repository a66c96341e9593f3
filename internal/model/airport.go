package model

// Airport is a named airfield linked to its closest big city.  The city
// reference is nullable: deleting a city keeps its airports and clears the
// link.
//
// Fields:
//
//	ID               – primary key identifier.
//	Name             – unique airport name.
//	ClosestBigCityID – nearby city, nil when unset or the city was deleted.
type Airport struct {
	ID               uint64  // airports.id
	Name             string  // airports.name (unique)
	ClosestBigCityID *uint64 // airports.closest_big_city_id (nullable)
}
