package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfleet/airline-booking-api/internal/repository"
)

func newCatalogEnv(t *testing.T) (*CatalogHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := NewCatalogHandler(
		repository.NewCountryRepo(db),
		repository.NewCityRepo(db),
		repository.NewAirplaneTypeRepo(db),
		repository.NewAirplaneRepo(db),
		repository.NewAirportRepo(db),
		repository.NewRouteRepo(db),
		repository.NewCrewRepo(db),
		repository.NewFlightRepo(db),
		repository.NewTicketRepo(db),
	)
	return h, mock
}

func TestCreateCountryDuplicateName(t *testing.T) {
	h, mock := newCatalogEnv(t)
	mock.ExpectExec("INSERT INTO countries").
		WithArgs("France").
		WillReturnError(fmt.Errorf("Error 1062 (23000): Duplicate entry 'France' for key 'uq_countries_name'"))

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/countries",
		`{"name":"France"}`, 1, RoleStaff)
	require.NoError(t, h.CreateCountry(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeFieldErrors(t, rec)
	assert.Contains(t, errs, "name")
}

func TestCreateCountryBlankName(t *testing.T) {
	h, _ := newCatalogEnv(t)

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/countries",
		`{"name":"   "}`, 1, RoleStaff)
	require.NoError(t, h.CreateCountry(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeFieldErrors(t, rec)
	assert.Contains(t, errs, "name")
}

func TestGetAirplaneReportsCapacity(t *testing.T) {
	h, mock := newCatalogEnv(t)
	mock.ExpectQuery("FROM airplanes a").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "seat_rows", "seats_per_row", "airplane_type_id", "type_name"}).
			AddRow(4, "B738-01", 32, 6, 2, "Boeing 737-800"))

	c, rec := newAuthedContext(t, http.MethodGet, "/v1/airplanes/4", "", 0, "")
	c.SetParamNames("id")
	c.SetParamValues("4")
	require.NoError(t, h.GetAirplane(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp airplaneDetailResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint32(192), resp.Capacity)
	assert.Equal(t, "Boeing 737-800", resp.AirplaneType.Name)
	assert.Equal(t, "/v1/airplane-types/2", resp.AirplaneType.Href)
}

func TestCreateAirplaneUnknownType(t *testing.T) {
	h, mock := newCatalogEnv(t)
	mock.ExpectQuery("SELECT id, name FROM airplane_types").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/airplanes",
		`{"name":"B738-01","rows":32,"seats_per_row":6,"airplane_type_id":99}`, 1, RoleStaff)
	require.NoError(t, h.CreateAirplane(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeFieldErrors(t, rec)
	assert.Contains(t, errs, "airplane_type_id")
}

func TestCreateAirplaneDuplicateNameAndType(t *testing.T) {
	h, mock := newCatalogEnv(t)
	mock.ExpectQuery("SELECT id, name FROM airplane_types").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "Boeing 737-800"))
	mock.ExpectExec("INSERT INTO airplanes").
		WillReturnError(fmt.Errorf("Error 1062 (23000): Duplicate entry 'B738-01-2' for key 'uq_airplanes_name_type'"))

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/airplanes",
		`{"name":"B738-01","rows":32,"seats_per_row":6,"airplane_type_id":2}`, 1, RoleStaff)
	require.NoError(t, h.CreateAirplane(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeFieldErrors(t, rec)
	assert.Contains(t, errs, "name")
}

func TestCreateRouteDuplicateEndpoints(t *testing.T) {
	h, mock := newCatalogEnv(t)
	airportCols := []string{"id", "name", "closest_big_city_id", "city_name"}
	mock.ExpectQuery("FROM airports a").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(airportCols).AddRow(1, "Heathrow", nil, nil))
	mock.ExpectQuery("FROM airports a").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows(airportCols).AddRow(2, "Schiphol", nil, nil))
	mock.ExpectExec("INSERT INTO routes").
		WillReturnError(fmt.Errorf("Error 1062 (23000): Duplicate entry '1-2' for key 'uq_routes_endpoints'"))

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/routes",
		`{"source_id":1,"destination_id":2,"distance":371}`, 1, RoleStaff)
	require.NoError(t, h.CreateRoute(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeFieldErrors(t, rec)
	assert.Contains(t, errs, "source_id")
}

func TestGetFlightMissing(t *testing.T) {
	h, mock := newCatalogEnv(t)
	mock.ExpectQuery("FROM flights f").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, rec := newAuthedContext(t, http.MethodGet, "/v1/flights/404", "", 0, "")
	c.SetParamNames("id")
	c.SetParamValues("404")
	require.NoError(t, h.GetFlight(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFlightSeatMapPublicShape(t *testing.T) {
	h, mock := newCatalogEnv(t)
	expectFlightLayout(mock, 9, 2, 6)
	mock.ExpectQuery("FROM tickets").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_row", "seat"}).
			AddRow(17, 1, 1).
			AddRow(18, 2, 4))

	c, rec := newAuthedContext(t, http.MethodGet, "/v1/flights/9/tickets", "", 0, "")
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, h.FlightSeatMap(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		FlightID    uint64               `json:"flight_id"`
		Rows        uint32               `json:"rows"`
		SeatsPerRow uint32               `json:"seats_per_row"`
		Tickets     []repository.SeatRef `json:"tickets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(9), resp.FlightID)
	assert.Equal(t, uint32(2), resp.Rows)
	require.Len(t, resp.Tickets, 2)
	assert.Equal(t, uint32(4), resp.Tickets[1].Seat)
	// no owner or order fields in the public shape
	assert.NotContains(t, rec.Body.String(), "order_id")
}
