package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skyfleet/airline-booking-api/internal/model"
	"github.com/skyfleet/airline-booking-api/internal/repository"
)

type airplaneTypeResp struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ListAirplaneTypes handles GET /v1/airplane-types.
func (h *CatalogHandler) ListAirplaneTypes(c echo.Context) error {
	items, err := h.AirplaneTypes.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	out := make([]airplaneTypeResp, 0, len(items))
	for _, it := range items {
		out = append(out, airplaneTypeResp{ID: it.ID, Name: it.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetAirplaneType handles GET /v1/airplane-types/:id.
func (h *CatalogHandler) GetAirplaneType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	it, err := h.AirplaneTypes.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAirplaneTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airplane type not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, airplaneTypeResp{ID: it.ID, Name: it.Name})
}

// CreateAirplaneType handles POST /v1/airplane-types (staff).
func (h *CatalogHandler) CreateAirplaneType(c echo.Context) error {
	var body countryReq // single required name field, same shape
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	t := &model.AirplaneType{Name: strings.TrimSpace(body.Name)}
	if err := h.AirplaneTypes.Create(c.Request().Context(), t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fieldErrors(c, map[string]string{"name": "airplane type with this name already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, airplaneTypeResp{ID: t.ID, Name: t.Name})
}

// UpdateAirplaneType handles PUT /v1/airplane-types/:id (staff).
func (h *CatalogHandler) UpdateAirplaneType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var body countryReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	t := &model.AirplaneType{ID: id, Name: strings.TrimSpace(body.Name)}
	if err := h.AirplaneTypes.Update(c.Request().Context(), t); err != nil {
		switch {
		case errors.Is(err, repository.ErrAirplaneTypeNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airplane type not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return fieldErrors(c, map[string]string{"name": "airplane type with this name already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, airplaneTypeResp{ID: t.ID, Name: t.Name})
}

// DeleteAirplaneType handles DELETE /v1/airplane-types/:id (staff).
func (h *CatalogHandler) DeleteAirplaneType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	if err := h.AirplaneTypes.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAirplaneTypeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airplane type not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
