package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyfleet/airline-booking-api/internal/model"
	"github.com/skyfleet/airline-booking-api/internal/repository"
)

// routeListResp is the compact list shape: endpoints flattened to airport
// names.
type routeListResp struct {
	ID          uint64 `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    uint32 `json:"distance"`
}

// routeDetailResp expands both endpoints one level.
type routeDetailResp struct {
	ID          uint64  `json:"id"`
	Source      refLink `json:"source"`
	Destination refLink `json:"destination"`
	Distance    uint32  `json:"distance"`
}

type routeReq struct {
	SourceID      uint64 `json:"source_id"`
	DestinationID uint64 `json:"destination_id"`
	Distance      uint32 `json:"distance"`
}

func (b routeReq) validate() map[string]string {
	errs := map[string]string{}
	if b.SourceID == 0 {
		errs["source_id"] = "this field is required"
	}
	if b.DestinationID == 0 {
		errs["destination_id"] = "this field is required"
	}
	if b.Distance < 1 {
		errs["distance"] = "must be greater than or equal to 1"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func routeDetail(row *repository.RouteRow) routeDetailResp {
	return routeDetailResp{
		ID:          row.ID,
		Source:      refLink{ID: row.SourceID, Name: row.SourceName, Href: href("airports", row.SourceID)},
		Destination: refLink{ID: row.DestinationID, Name: row.DestinationName, Href: href("airports", row.DestinationID)},
		Distance:    row.Distance,
	}
}

// checkRouteEndpoints verifies both airports exist, reporting per-field
// errors keyed the way write payloads name them.
func (h *CatalogHandler) checkRouteEndpoints(c echo.Context, body routeReq) (map[string]string, error) {
	ctx := c.Request().Context()
	errs := map[string]string{}
	if _, err := h.Airports.GetByID(ctx, body.SourceID); err != nil {
		if !errors.Is(err, repository.ErrAirportNotFound) {
			return nil, err
		}
		errs["source_id"] = "airport does not exist"
	}
	if _, err := h.Airports.GetByID(ctx, body.DestinationID); err != nil {
		if !errors.Is(err, repository.ErrAirportNotFound) {
			return nil, err
		}
		errs["destination_id"] = "airport does not exist"
	}
	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}

// ListRoutes handles GET /v1/routes.
func (h *CatalogHandler) ListRoutes(c echo.Context) error {
	items, err := h.Routes.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	out := make([]routeListResp, 0, len(items))
	for _, it := range items {
		out = append(out, routeListResp{
			ID:          it.ID,
			Source:      it.SourceName,
			Destination: it.DestinationName,
			Distance:    it.Distance,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetRoute handles GET /v1/routes/:id.
func (h *CatalogHandler) GetRoute(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	row, err := h.Routes.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, routeDetail(row))
}

// CreateRoute handles POST /v1/routes (staff).  A repeated
// (source, destination) pair is a validation failure.
func (h *CatalogHandler) CreateRoute(c echo.Context) error {
	var body routeReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	if errs, err := h.checkRouteEndpoints(c, body); err != nil {
		return dbError(c)
	} else if errs != nil {
		return fieldErrors(c, errs)
	}
	rt := &model.Route{SourceID: body.SourceID, DestinationID: body.DestinationID, Distance: body.Distance}
	ctx := c.Request().Context()
	if err := h.Routes.Create(ctx, rt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fieldErrors(c, map[string]string{"source_id": "route between these airports already exists"})
		}
		return dbError(c)
	}
	row, err := h.Routes.GetByID(ctx, rt.ID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, routeDetail(row))
}

// UpdateRoute handles PUT /v1/routes/:id (staff).
func (h *CatalogHandler) UpdateRoute(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var body routeReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	if errs, err := h.checkRouteEndpoints(c, body); err != nil {
		return dbError(c)
	} else if errs != nil {
		return fieldErrors(c, errs)
	}
	rt := &model.Route{ID: id, SourceID: body.SourceID, DestinationID: body.DestinationID, Distance: body.Distance}
	ctx := c.Request().Context()
	if err := h.Routes.Update(ctx, rt); err != nil {
		switch {
		case errors.Is(err, repository.ErrRouteNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return fieldErrors(c, map[string]string{"source_id": "route between these airports already exists"})
		}
		return dbError(c)
	}
	row, err := h.Routes.GetByID(ctx, id)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, routeDetail(row))
}

// DeleteRoute handles DELETE /v1/routes/:id (staff).
func (h *CatalogHandler) DeleteRoute(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	if err := h.Routes.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
