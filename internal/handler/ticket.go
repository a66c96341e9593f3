package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skyfleet/airline-booking-api/internal/model"
	"github.com/skyfleet/airline-booking-api/internal/queue"
	"github.com/skyfleet/airline-booking-api/internal/repository"
	"github.com/skyfleet/airline-booking-api/internal/utils"
)

type ticketListResp struct {
	ID       uint64  `json:"id"`
	OrderID  *uint64 `json:"order_id"`
	FlightID *uint64 `json:"flight_id"`
	Row      uint32  `json:"row"`
	Seat     uint32  `json:"seat"`
}

// ticketFlightRef is the one-level flight expansion in ticket detail shapes.
type ticketFlightRef struct {
	ID            uint64    `json:"id"`
	Route         string    `json:"route"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Href          string    `json:"href"`
}

type ticketDetailResp struct {
	ID      uint64           `json:"id"`
	OrderID *uint64          `json:"order_id"`
	Flight  *ticketFlightRef `json:"flight"`
	Row     uint32           `json:"row"`
	Seat    uint32           `json:"seat"`
}

type ticketReq struct {
	OrderID  uint64 `json:"order_id"`
	FlightID uint64 `json:"flight_id"`
	Row      uint32 `json:"row"`
	Seat     uint32 `json:"seat"`
}

func (b ticketReq) validate() map[string]string {
	errs := map[string]string{}
	if b.OrderID == 0 {
		errs["order_id"] = "this field is required"
	}
	if b.FlightID == 0 {
		errs["flight_id"] = "this field is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ticketOut(t model.Ticket) ticketListResp {
	return ticketListResp{ID: t.ID, OrderID: t.OrderID, FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
}

func (h *BookingHandler) ticketDetail(c echo.Context, t *model.Ticket) error {
	resp := ticketDetailResp{ID: t.ID, OrderID: t.OrderID, Row: t.Row, Seat: t.Seat}
	if t.FlightID != nil {
		fl, err := h.Flights.GetByID(c.Request().Context(), *t.FlightID)
		if err != nil && !errors.Is(err, repository.ErrFlightNotFound) {
			return dbError(c)
		}
		if fl != nil {
			resp.Flight = &ticketFlightRef{
				ID:            fl.ID,
				Route:         fl.SourceName + " → " + fl.DestinationName,
				DepartureTime: fl.DepartureTime,
				ArrivalTime:   fl.ArrivalTime,
				Href:          href("flights", fl.ID),
			}
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// resolveOrder loads the order a ticket write refers to.  Regular users can
// only reach their own orders; a miss comes back as a field error so the
// caller cannot tell someone else's order apart from a missing one.
func (h *BookingHandler) resolveOrder(c echo.Context, orderID, uid uint64) (*model.Order, map[string]string, error) {
	ctx := c.Request().Context()
	var (
		o   *model.Order
		err error
	)
	if isStaff(c) {
		o, err = h.Orders.GetByID(ctx, orderID)
	} else {
		o, err = h.Orders.GetByIDAndOwner(ctx, orderID, uid)
	}
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, map[string]string{"order_id": "order does not exist"}, nil
		}
		return nil, nil, err
	}
	return o, nil, nil
}

// CreateTicket handles POST /v1/tickets.  The referenced order must belong
// to the caller unless the caller is staff; row and seat are checked against
// the flight airplane's current cabin layout; the (flight, row, seat, order)
// unique key turns a double booking into a field error.
func (h *BookingHandler) CreateTicket(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body ticketReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}

	ctx := c.Request().Context()
	order, ferrs, err := h.resolveOrder(c, body.OrderID, uid)
	if err != nil {
		return dbError(c)
	}
	if ferrs != nil {
		return fieldErrors(c, ferrs)
	}

	fl, err := h.Flights.GetByID(ctx, body.FlightID)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return fieldErrors(c, map[string]string{"flight_id": "flight does not exist"})
		}
		return dbError(c)
	}
	if errs := seatBoundsErrors(body.Row, body.Seat, fl.AirplaneRows, fl.SeatsPerRow); errs != nil {
		return fieldErrors(c, errs)
	}

	t := &model.Ticket{
		OrderID:  &body.OrderID,
		FlightID: &body.FlightID,
		Row:      body.Row,
		Seat:     body.Seat,
	}
	if err := h.Tickets.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fieldErrors(c, map[string]string{
				"seat": "this seat is already booked on this flight for this order",
			})
		}
		return dbError(c)
	}

	utils.LogEvent("booking", "ticket_created",
		fmt.Sprintf("ticket=%d order=%d flight=%d row=%d seat=%d", t.ID, order.ID, fl.ID, t.Row, t.Seat))

	if h.Publish != nil {
		ownerID := uid
		if order.UserID != nil {
			ownerID = *order.UserID
		}
		ev := queue.TicketBookedEvent{
			TicketID: t.ID,
			OrderID:  order.ID,
			UserID:   ownerID,
			FlightID: fl.ID,
			Route:    fl.SourceName + " → " + fl.DestinationName,
			Row:      t.Row,
			Seat:     t.Seat,
			BookedAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = h.Publish(pctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, ticketOut(*t))
}

// ListTickets handles GET /v1/tickets.  Regular users see only tickets
// under their own orders; staff see everything.
func (h *BookingHandler) ListTickets(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	var (
		items []model.Ticket
		lerr  error
	)
	if isStaff(c) {
		items, lerr = h.Tickets.ListAll(ctx)
	} else {
		items, lerr = h.Tickets.ListByOwner(ctx, uid)
	}
	if lerr != nil {
		return dbError(c)
	}
	out := make([]ticketListResp, 0, len(items))
	for _, t := range items {
		out = append(out, ticketOut(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetTicket handles GET /v1/tickets/:id.  Non-owners get 404, never 403.
func (h *BookingHandler) GetTicket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	var t *model.Ticket
	if isStaff(c) {
		t, err = h.Tickets.GetByID(ctx, id)
	} else {
		t, err = h.Tickets.GetByIDAndOwner(ctx, id, uid)
	}
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return dbError(c)
	}
	return h.ticketDetail(c, t)
}

// UpdateTicket handles PUT /v1/tickets/:id (staff).  Seat bounds are
// re-validated against the target flight, which may differ from the one the
// ticket was booked on.
func (h *BookingHandler) UpdateTicket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var body ticketReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}

	ctx := c.Request().Context()
	if _, err := h.Tickets.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return dbError(c)
	}
	if _, err := h.Orders.GetByID(ctx, body.OrderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return fieldErrors(c, map[string]string{"order_id": "order does not exist"})
		}
		return dbError(c)
	}
	fl, err := h.Flights.GetByID(ctx, body.FlightID)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return fieldErrors(c, map[string]string{"flight_id": "flight does not exist"})
		}
		return dbError(c)
	}
	if errs := seatBoundsErrors(body.Row, body.Seat, fl.AirplaneRows, fl.SeatsPerRow); errs != nil {
		return fieldErrors(c, errs)
	}

	t := &model.Ticket{
		ID:       id,
		OrderID:  &body.OrderID,
		FlightID: &body.FlightID,
		Row:      body.Row,
		Seat:     body.Seat,
	}
	if err := h.Tickets.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fieldErrors(c, map[string]string{
				"seat": "this seat is already booked on this flight for this order",
			})
		}
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return dbError(c)
	}
	return h.ticketDetail(c, t)
}

// DeleteTicket handles DELETE /v1/tickets/:id (staff).
func (h *BookingHandler) DeleteTicket(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	if err := h.Tickets.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
