package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skyfleet/airline-booking-api/internal/model"
	"github.com/skyfleet/airline-booking-api/internal/repository"
)

// airportListResp is the compact list shape: city flattened to its name,
// null when the airport has no city link.
type airportListResp struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	ClosestBigCity *string `json:"closest_big_city"`
}

// airportDetailResp expands the city one level; null when unlinked.
type airportDetailResp struct {
	ID             uint64   `json:"id"`
	Name           string   `json:"name"`
	ClosestBigCity *refLink `json:"closest_big_city"`
}

type airportReq struct {
	Name             string  `json:"name"`
	ClosestBigCityID *uint64 `json:"closest_big_city_id"`
}

func airportDetail(row *repository.AirportRow) airportDetailResp {
	resp := airportDetailResp{ID: row.ID, Name: row.Name}
	if row.ClosestBigCityID != nil && row.CityName != nil {
		resp.ClosestBigCity = &refLink{
			ID:   *row.ClosestBigCityID,
			Name: *row.CityName,
			Href: href("cities", *row.ClosestBigCityID),
		}
	}
	return resp
}

// ListAirports handles GET /v1/airports.
func (h *CatalogHandler) ListAirports(c echo.Context) error {
	items, err := h.Airports.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	out := make([]airportListResp, 0, len(items))
	for _, it := range items {
		out = append(out, airportListResp{ID: it.ID, Name: it.Name, ClosestBigCity: it.CityName})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetAirport handles GET /v1/airports/:id.
func (h *CatalogHandler) GetAirport(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	row, err := h.Airports.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAirportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airport not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, airportDetail(row))
}

// CreateAirport handles POST /v1/airports (staff).
func (h *CatalogHandler) CreateAirport(c echo.Context) error {
	var body airportReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return fieldErrors(c, map[string]string{"name": "this field is required"})
	}
	ctx := c.Request().Context()
	if body.ClosestBigCityID != nil {
		if _, err := h.Cities.GetByID(ctx, *body.ClosestBigCityID); err != nil {
			if errors.Is(err, repository.ErrCityNotFound) {
				return fieldErrors(c, map[string]string{"closest_big_city_id": "city does not exist"})
			}
			return dbError(c)
		}
	}
	a := &model.Airport{Name: strings.TrimSpace(body.Name), ClosestBigCityID: body.ClosestBigCityID}
	if err := h.Airports.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fieldErrors(c, map[string]string{"name": "airport with this name already exists"})
		}
		return dbError(c)
	}
	row, err := h.Airports.GetByID(ctx, a.ID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, airportDetail(row))
}

// UpdateAirport handles PUT /v1/airports/:id (staff).
func (h *CatalogHandler) UpdateAirport(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var body airportReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" {
		return fieldErrors(c, map[string]string{"name": "this field is required"})
	}
	ctx := c.Request().Context()
	if body.ClosestBigCityID != nil {
		if _, err := h.Cities.GetByID(ctx, *body.ClosestBigCityID); err != nil {
			if errors.Is(err, repository.ErrCityNotFound) {
				return fieldErrors(c, map[string]string{"closest_big_city_id": "city does not exist"})
			}
			return dbError(c)
		}
	}
	a := &model.Airport{ID: id, Name: strings.TrimSpace(body.Name), ClosestBigCityID: body.ClosestBigCityID}
	if err := h.Airports.Update(ctx, a); err != nil {
		switch {
		case errors.Is(err, repository.ErrAirportNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airport not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return fieldErrors(c, map[string]string{"name": "airport with this name already exists"})
		}
		return dbError(c)
	}
	row, err := h.Airports.GetByID(ctx, id)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, airportDetail(row))
}

// DeleteAirport handles DELETE /v1/airports/:id (staff).
func (h *CatalogHandler) DeleteAirport(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	if err := h.Airports.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAirportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airport not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
