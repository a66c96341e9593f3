package handler

import "github.com/skyfleet/airline-booking-api/internal/repository"

// CatalogHandler bundles the repositories behind the reference-data
// resources: countries, cities, airplane types, airplanes, airports,
// routes, crews and flights.  Reads are public; writes are mounted behind
// the STAFF role at the router.
//
// Every resource answers in two shapes.  List responses are compact with
// related records flattened to their names; detail responses expand one
// level of relation, each carrying an href to its canonical URL.  Write
// payloads take primary-key references for all foreign fields.
type CatalogHandler struct {
	Countries     *repository.CountryRepo
	Cities        *repository.CityRepo
	AirplaneTypes *repository.AirplaneTypeRepo
	Airplanes     *repository.AirplaneRepo
	Airports      *repository.AirportRepo
	Routes        *repository.RouteRepo
	Crews         *repository.CrewRepo
	Flights       *repository.FlightRepo
	Tickets       *repository.TicketRepo // seat-map reads
}

// NewCatalogHandler constructs a CatalogHandler and panics if any
// dependency is nil.
func NewCatalogHandler(
	countries *repository.CountryRepo,
	cities *repository.CityRepo,
	airplaneTypes *repository.AirplaneTypeRepo,
	airplanes *repository.AirplaneRepo,
	airports *repository.AirportRepo,
	routes *repository.RouteRepo,
	crews *repository.CrewRepo,
	flights *repository.FlightRepo,
	tickets *repository.TicketRepo,
) *CatalogHandler {
	if countries == nil || cities == nil || airplaneTypes == nil || airplanes == nil ||
		airports == nil || routes == nil || crews == nil || flights == nil || tickets == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{
		Countries:     countries,
		Cities:        cities,
		AirplaneTypes: airplaneTypes,
		Airplanes:     airplanes,
		Airports:      airports,
		Routes:        routes,
		Crews:         crews,
		Flights:       flights,
		Tickets:       tickets,
	}
}

// refLink is the one-level relation expansion used in detail shapes.
type refLink struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Href string `json:"href"`
}
