package model

// City belongs to exactly one country.  City names are unique.  This struct
// corresponds to a row in the `cities` table.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – unique city name.
//	CountryID – containing country.
type City struct {
	ID        uint64 // cities.id
	Name      string // cities.name (unique)
	CountryID uint64 // cities.country_id
}
