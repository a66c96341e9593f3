package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skyfleet/airline-booking-api/internal/model"
	"github.com/skyfleet/airline-booking-api/internal/repository"
	"github.com/skyfleet/airline-booking-api/internal/utils"
)

type orderListResp struct {
	ID        uint64    `json:"id"`
	UserID    *uint64   `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type orderDetailResp struct {
	ID        uint64           `json:"id"`
	UserID    *uint64          `json:"user_id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []ticketListResp `json:"tickets"`
}

type reassignOrderReq struct {
	UserID *uint64 `json:"user_id"`
}

func orderOut(o model.Order) orderListResp {
	return orderListResp{ID: o.ID, UserID: o.UserID, CreatedAt: o.CreatedAt}
}

func (h *BookingHandler) orderDetail(c echo.Context, o *model.Order) error {
	tickets, err := h.Tickets.ListByOrder(c.Request().Context(), o.ID)
	if err != nil {
		return dbError(c)
	}
	out := make([]ticketListResp, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketOut(t))
	}
	return c.JSON(http.StatusOK, orderDetailResp{
		ID:        o.ID,
		UserID:    o.UserID,
		CreatedAt: o.CreatedAt,
		Tickets:   out,
	})
}

// CreateOrder handles POST /v1/orders.  The order is always owned by the
// caller; the request body is ignored.
func (h *BookingHandler) CreateOrder(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	o, err := h.Orders.Create(c.Request().Context(), uid)
	if err != nil {
		return dbError(c)
	}
	utils.LogEvent("booking", "order_created", fmt.Sprintf("order=%d user=%d", o.ID, uid))
	return c.JSON(http.StatusCreated, orderOut(*o))
}

// ListOrders handles GET /v1/orders.  Regular users see only their own
// orders; staff see everything.
func (h *BookingHandler) ListOrders(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	var (
		items []model.Order
		lerr  error
	)
	if isStaff(c) {
		items, lerr = h.Orders.ListAll(ctx)
	} else {
		items, lerr = h.Orders.ListByOwner(ctx, uid)
	}
	if lerr != nil {
		return dbError(c)
	}
	out := make([]orderListResp, 0, len(items))
	for _, o := range items {
		out = append(out, orderOut(o))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetOrder handles GET /v1/orders/:id.  Non-owners get 404, never 403, so
// an out-of-scope id is indistinguishable from a missing one.
func (h *BookingHandler) GetOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	var o *model.Order
	if isStaff(c) {
		o, err = h.Orders.GetByID(ctx, id)
	} else {
		o, err = h.Orders.GetByIDAndOwner(ctx, id, uid)
	}
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return dbError(c)
	}
	return h.orderDetail(c, o)
}

// ReassignOrder handles PUT /v1/orders/:id (staff).  The only mutable field
// is the owner; created_at never changes.
func (h *BookingHandler) ReassignOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var body reassignOrderReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	if err := h.Orders.Reassign(ctx, id, body.UserID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return dbError(c)
	}
	o, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		return dbError(c)
	}
	return h.orderDetail(c, o)
}

// DeleteOrder handles DELETE /v1/orders/:id (staff).  Tickets under the
// order stay behind as orphaned history with the link cleared.
func (h *BookingHandler) DeleteOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	if err := h.Orders.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
