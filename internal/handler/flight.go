package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skyfleet/airline-booking-api/internal/model"
	"github.com/skyfleet/airline-booking-api/internal/repository"
)

// flightListResp is the compact list shape: route flattened to a
// "SRC → DST" label, airplane to its name.
type flightListResp struct {
	ID            uint64    `json:"id"`
	Route         string    `json:"route"`
	Airplane      string    `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

// flightRouteRef and flightAirplaneRef are the one-level expansions used
// in flight detail responses.
type flightRouteRef struct {
	ID          uint64 `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    uint32 `json:"distance"`
	Href        string `json:"href"`
}

type flightAirplaneRef struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Rows        uint32 `json:"rows"`
	SeatsPerRow uint32 `json:"seats_per_row"`
	Capacity    uint32 `json:"capacity"`
	Href        string `json:"href"`
}

type flightDetailResp struct {
	ID            uint64            `json:"id"`
	Route         flightRouteRef    `json:"route"`
	Airplane      flightAirplaneRef `json:"airplane"`
	Crew          []crewResp        `json:"crew"`
	DepartureTime time.Time         `json:"departure_time"`
	ArrivalTime   time.Time         `json:"arrival_time"`
}

type flightReq struct {
	RouteID       uint64    `json:"route_id"`
	AirplaneID    uint64    `json:"airplane_id"`
	CrewIDs       []uint64  `json:"crew_ids"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

func (b flightReq) validate() map[string]string {
	errs := map[string]string{}
	if b.RouteID == 0 {
		errs["route_id"] = "this field is required"
	}
	if b.AirplaneID == 0 {
		errs["airplane_id"] = "this field is required"
	}
	if b.DepartureTime.IsZero() {
		errs["departure_time"] = "this field is required"
	}
	if b.ArrivalTime.IsZero() {
		errs["arrival_time"] = "this field is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func flightDetail(row *repository.FlightRow, crew []model.Crew) flightDetailResp {
	crewOutList := make([]crewResp, 0, len(crew))
	for _, m := range crew {
		crewOutList = append(crewOutList, crewOut(m))
	}
	return flightDetailResp{
		ID: row.ID,
		Route: flightRouteRef{
			ID:          row.RouteID,
			Source:      row.SourceName,
			Destination: row.DestinationName,
			Distance:    row.Distance,
			Href:        href("routes", row.RouteID),
		},
		Airplane: flightAirplaneRef{
			ID:          row.AirplaneID,
			Name:        row.AirplaneName,
			Rows:        row.AirplaneRows,
			SeatsPerRow: row.SeatsPerRow,
			Capacity:    row.AirplaneRows * row.SeatsPerRow,
			Href:        href("airplanes", row.AirplaneID),
		},
		Crew:          crewOutList,
		DepartureTime: row.DepartureTime,
		ArrivalTime:   row.ArrivalTime,
	}
}

// checkFlightRefs verifies the referenced route, airplane and crew exist.
func (h *CatalogHandler) checkFlightRefs(c echo.Context, body flightReq) (map[string]string, error) {
	ctx := c.Request().Context()
	errs := map[string]string{}
	if _, err := h.Routes.GetByID(ctx, body.RouteID); err != nil {
		if !errors.Is(err, repository.ErrRouteNotFound) {
			return nil, err
		}
		errs["route_id"] = "route does not exist"
	}
	if _, err := h.Airplanes.GetByID(ctx, body.AirplaneID); err != nil {
		if !errors.Is(err, repository.ErrAirplaneNotFound) {
			return nil, err
		}
		errs["airplane_id"] = "airplane does not exist"
	}
	for _, cid := range body.CrewIDs {
		if _, err := h.Crews.GetByID(ctx, cid); err != nil {
			if !errors.Is(err, repository.ErrCrewNotFound) {
				return nil, err
			}
			errs["crew_ids"] = fmt.Sprintf("crew member %d does not exist", cid)
			break
		}
	}
	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

// ListFlights handles GET /v1/flights.
func (h *CatalogHandler) ListFlights(c echo.Context) error {
	items, err := h.Flights.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	out := make([]flightListResp, 0, len(items))
	for _, it := range items {
		out = append(out, flightListResp{
			ID:            it.ID,
			Route:         it.SourceName + " → " + it.DestinationName,
			Airplane:      it.AirplaneName,
			DepartureTime: it.DepartureTime,
			ArrivalTime:   it.ArrivalTime,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetFlight handles GET /v1/flights/:id.
func (h *CatalogHandler) GetFlight(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	ctx := c.Request().Context()
	row, err := h.Flights.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return dbError(c)
	}
	crew, err := h.Flights.CrewByFlight(ctx, id)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, flightDetail(row, crew))
}

// FlightSeatMap handles GET /v1/flights/:id/tickets.  It returns every
// booked seat on the flight in a reduced shape that omits purchase and
// ownership details, so anyone can check availability.
func (h *CatalogHandler) FlightSeatMap(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	ctx := c.Request().Context()
	row, err := h.Flights.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return dbError(c)
	}
	seats, err := h.Tickets.SeatMap(ctx, id)
	if err != nil {
		return dbError(c)
	}
	if seats == nil {
		seats = []repository.SeatRef{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"flight_id":     row.ID,
		"rows":          row.AirplaneRows,
		"seats_per_row": row.SeatsPerRow,
		"tickets":       seats,
	})
}

// CreateFlight handles POST /v1/flights (staff).
func (h *CatalogHandler) CreateFlight(c echo.Context) error {
	var body flightReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	if errs, err := h.checkFlightRefs(c, body); err != nil {
		return dbError(c)
	} else if errs != nil {
		return fieldErrors(c, errs)
	}
	f := &model.Flight{
		RouteID:       body.RouteID,
		AirplaneID:    body.AirplaneID,
		DepartureTime: body.DepartureTime.UTC(),
		ArrivalTime:   body.ArrivalTime.UTC(),
	}
	ctx := c.Request().Context()
	if err := h.Flights.Create(ctx, f, body.CrewIDs); err != nil {
		return dbError(c)
	}
	row, err := h.Flights.GetByID(ctx, f.ID)
	if err != nil {
		return dbError(c)
	}
	crew, err := h.Flights.CrewByFlight(ctx, f.ID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, flightDetail(row, crew))
}

// UpdateFlight handles PUT /v1/flights/:id (staff).
func (h *CatalogHandler) UpdateFlight(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var body flightReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	if errs, err := h.checkFlightRefs(c, body); err != nil {
		return dbError(c)
	} else if errs != nil {
		return fieldErrors(c, errs)
	}
	f := &model.Flight{
		ID:            id,
		RouteID:       body.RouteID,
		AirplaneID:    body.AirplaneID,
		DepartureTime: body.DepartureTime.UTC(),
		ArrivalTime:   body.ArrivalTime.UTC(),
	}
	ctx := c.Request().Context()
	if err := h.Flights.Update(ctx, f, body.CrewIDs); err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return dbError(c)
	}
	row, err := h.Flights.GetByID(ctx, id)
	if err != nil {
		return dbError(c)
	}
	crew, err := h.Flights.CrewByFlight(ctx, id)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, flightDetail(row, crew))
}

// DeleteFlight handles DELETE /v1/flights/:id (staff).  Tickets already
// sold keep their rows with the flight link cleared.
func (h *CatalogHandler) DeleteFlight(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	if err := h.Flights.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
