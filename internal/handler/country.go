package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skyfleet/airline-booking-api/internal/model"
	"github.com/skyfleet/airline-booking-api/internal/repository"
)

type countryResp struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type countryReq struct {
	Name string `json:"name"`
}

func (b countryReq) validate() map[string]string {
	if strings.TrimSpace(b.Name) == "" {
		return map[string]string{"name": "this field is required"}
	}
	return nil
}

// ListCountries handles GET /v1/countries.
func (h *CatalogHandler) ListCountries(c echo.Context) error {
	items, err := h.Countries.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	out := make([]countryResp, 0, len(items))
	for _, it := range items {
		out = append(out, countryResp{ID: it.ID, Name: it.Name})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetCountry handles GET /v1/countries/:id.
func (h *CatalogHandler) GetCountry(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	it, err := h.Countries.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "country not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, countryResp{ID: it.ID, Name: it.Name})
}

// CreateCountry handles POST /v1/countries (staff).
func (h *CatalogHandler) CreateCountry(c echo.Context) error {
	var body countryReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	country := &model.Country{Name: strings.TrimSpace(body.Name)}
	if err := h.Countries.Create(c.Request().Context(), country); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fieldErrors(c, map[string]string{"name": "country with this name already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, countryResp{ID: country.ID, Name: country.Name})
}

// UpdateCountry handles PUT /v1/countries/:id (staff).
func (h *CatalogHandler) UpdateCountry(c echo.Context) error {
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
	country := &model.Country{ID: id, Name: strings.TrimSpace(body.Name)}
	if err := h.Countries.Update(c.Request().Context(), country); err != nil {
		switch {
		case errors.Is(err, repository.ErrCountryNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "country not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return fieldErrors(c, map[string]string{"name": "country with this name already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, countryResp{ID: country.ID, Name: country.Name})
}

// DeleteCountry handles DELETE /v1/countries/:id (staff).
func (h *CatalogHandler) DeleteCountry(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	if err := h.Countries.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "country not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
