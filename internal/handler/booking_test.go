package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyfleet/airline-booking-api/internal/repository"
)

func TestSeatBoundsErrors(t *testing.T) {
	cases := []struct {
		name       string
		row, seat  uint32
		wantFields []string
	}{
		{"inside", 1, 1, nil},
		{"last seat", 2, 6, nil},
		{"row past cabin", 3, 1, []string{"row"}},
		{"row zero", 0, 1, []string{"row"}},
		{"seat past row", 1, 7, []string{"seat"}},
		{"seat zero", 1, 0, []string{"seat"}},
		{"both out", 9, 9, []string{"row", "seat"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := seatBoundsErrors(tc.row, tc.seat, 2, 6)
			if tc.wantFields == nil {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			assert.Len(t, errs, len(tc.wantFields))
			for _, f := range tc.wantFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func newBookingEnv(t *testing.T) (*BookingHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := NewBookingHandler(
		repository.NewOrderRepo(db),
		repository.NewTicketRepo(db),
		repository.NewFlightRepo(db),
		nil,
	)
	return h, mock
}

func newAuthedContext(t *testing.T, method, target, body string, uid uint64, role string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("user_id", uid)
	c.Set("role", role)
	return c, rec
}

func decodeFieldErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Errors
}

func expectFlightLayout(mock sqlmock.Sqlmock, id uint64, rows, seatsPerRow uint32) {
	cols := []string{"id", "route_id", "airplane_id", "departure_time", "arrival_time",
		"source", "destination", "distance", "airplane", "seat_rows", "seats_per_row"}
	dep := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	arr := time.Date(2026, 6, 1, 11, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM flights f").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(id, 1, 4, dep, arr, "Heathrow", "Schiphol", 371, "B738-01", rows, seatsPerRow))
}

func expectOwnOrder(mock sqlmock.Sqlmock, orderID, userID uint64) {
	mock.ExpectQuery("SELECT id, user_id, created_at FROM orders").
		WithArgs(orderID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).
			AddRow(orderID, userID, time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)))
}

func TestCreateTicketRowOutOfBounds(t *testing.T) {
	h, mock := newBookingEnv(t)
	expectOwnOrder(mock, 4, 7)
	expectFlightLayout(mock, 9, 2, 6)

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/tickets",
		`{"order_id":4,"flight_id":9,"row":3,"seat":1}`, 7, RoleCustomer)
	require.NoError(t, h.CreateTicket(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeFieldErrors(t, rec)
	assert.Contains(t, errs, "row")
	assert.NotContains(t, errs, "seat")
}

func TestCreateTicketDuplicateSeat(t *testing.T) {
	h, mock := newBookingEnv(t)
	expectOwnOrder(mock, 4, 7)
	expectFlightLayout(mock, 9, 32, 6)
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnError(fmt.Errorf("Error 1062 (23000): Duplicate entry '9-1-1-4' for key 'uq_tickets_seat'"))

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/tickets",
		`{"order_id":4,"flight_id":9,"row":1,"seat":1}`, 7, RoleCustomer)
	require.NoError(t, h.CreateTicket(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeFieldErrors(t, rec)
	assert.Contains(t, errs, "seat")
}

func TestCreateTicketForeignOrderLooksMissing(t *testing.T) {
	h, mock := newBookingEnv(t)
	// Order 4 belongs to another user; the scoped lookup comes back empty.
	mock.ExpectQuery("SELECT id, user_id, created_at FROM orders").
		WithArgs(uint64(4), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/tickets",
		`{"order_id":4,"flight_id":9,"row":1,"seat":1}`, 7, RoleCustomer)
	require.NoError(t, h.CreateTicket(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeFieldErrors(t, rec)
	assert.Contains(t, errs, "order_id")
}

func TestCreateTicketSuccess(t *testing.T) {
	h, mock := newBookingEnv(t)
	expectOwnOrder(mock, 4, 7)
	expectFlightLayout(mock, 9, 32, 6)
	mock.ExpectExec("INSERT INTO tickets").
		WillReturnResult(sqlmock.NewResult(17, 1))

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/tickets",
		`{"order_id":4,"flight_id":9,"row":1,"seat":1}`, 7, RoleCustomer)
	require.NoError(t, h.CreateTicket(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp ticketListResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(17), resp.ID)
	assert.Equal(t, uint32(1), resp.Row)
}

func TestGetTicketForeignOwnerGets404(t *testing.T) {
	h, mock := newBookingEnv(t)
	mock.ExpectQuery("FROM tickets t").
		WithArgs(uint64(12), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "flight_id", "seat_row", "seat"}))

	c, rec := newAuthedContext(t, http.MethodGet, "/v1/tickets/12", "", 7, RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("12")
	require.NoError(t, h.GetTicket(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderForeignOwnerGets404(t *testing.T) {
	h, mock := newBookingEnv(t)
	mock.ExpectQuery("SELECT id, user_id, created_at FROM orders").
		WithArgs(uint64(42), uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))

	c, rec := newAuthedContext(t, http.MethodGet, "/v1/orders/42", "", 7, RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.GetOrder(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderStaffSeesAnyOrder(t *testing.T) {
	h, mock := newBookingEnv(t)
	mock.ExpectQuery("SELECT id, user_id, created_at FROM orders").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).
			AddRow(42, 9, time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)))
	mock.ExpectQuery("FROM tickets").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "flight_id", "seat_row", "seat"}).
			AddRow(17, 42, 9, 1, 1))

	c, rec := newAuthedContext(t, http.MethodGet, "/v1/orders/42", "", 1, RoleStaff)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.GetOrder(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp orderDetailResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(42), resp.ID)
	require.Len(t, resp.Tickets, 1)
	assert.Equal(t, uint64(17), resp.Tickets[0].ID)
}

func TestCreateOrderOwnedByCaller(t *testing.T) {
	h, mock := newBookingEnv(t)
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectQuery("SELECT id, user_id, created_at FROM orders").
		WithArgs(uint64(21)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).
			AddRow(21, 7, time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)))

	c, rec := newAuthedContext(t, http.MethodPost, "/v1/orders", "", 7, RoleCustomer)
	require.NoError(t, h.CreateOrder(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp orderListResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.UserID)
	assert.Equal(t, uint64(7), *resp.UserID)
}
