package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skyfleet/airline-booking-api/internal/model"
	"github.com/skyfleet/airline-booking-api/internal/repository"
)

// cityListResp is the compact list shape: country flattened to its name.
type cityListResp struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// cityDetailResp expands the country one level.
type cityDetailResp struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Country refLink `json:"country"`
}

type cityReq struct {
	Name      string `json:"name"`
	CountryID uint64 `json:"country_id"`
}

func (b cityReq) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(b.Name) == "" {
		errs["name"] = "this field is required"
	}
	if b.CountryID == 0 {
		errs["country_id"] = "this field is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func cityDetail(row *repository.CityRow) cityDetailResp {
	return cityDetailResp{
		ID:   row.ID,
		Name: row.Name,
		Country: refLink{
			ID:   row.CountryID,
			Name: row.CountryName,
			Href: href("countries", row.CountryID),
		},
	}
}

// ListCities handles GET /v1/cities.
func (h *CatalogHandler) ListCities(c echo.Context) error {
	items, err := h.Cities.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	out := make([]cityListResp, 0, len(items))
	for _, it := range items {
		out = append(out, cityListResp{ID: it.ID, Name: it.Name, Country: it.CountryName})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetCity handles GET /v1/cities/:id.
func (h *CatalogHandler) GetCity(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	row, err := h.Cities.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, cityDetail(row))
}

// CreateCity handles POST /v1/cities (staff).
func (h *CatalogHandler) CreateCity(c echo.Context) error {
	var body cityReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	ctx := c.Request().Context()
	if _, err := h.Countries.GetByID(ctx, body.CountryID); err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return fieldErrors(c, map[string]string{"country_id": "country does not exist"})
		}
		return dbError(c)
	}
	city := &model.City{Name: strings.TrimSpace(body.Name), CountryID: body.CountryID}
	if err := h.Cities.Create(ctx, city); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fieldErrors(c, map[string]string{"name": "city with this name already exists"})
		}
		return dbError(c)
	}
	row, err := h.Cities.GetByID(ctx, city.ID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, cityDetail(row))
}

// UpdateCity handles PUT /v1/cities/:id (staff).
func (h *CatalogHandler) UpdateCity(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var body cityReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	ctx := c.Request().Context()
	if _, err := h.Countries.GetByID(ctx, body.CountryID); err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return fieldErrors(c, map[string]string{"country_id": "country does not exist"})
		}
		return dbError(c)
	}
	city := &model.City{ID: id, Name: strings.TrimSpace(body.Name), CountryID: body.CountryID}
	if err := h.Cities.Update(ctx, city); err != nil {
		switch {
		case errors.Is(err, repository.ErrCityNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return fieldErrors(c, map[string]string{"name": "city with this name already exists"})
		}
		return dbError(c)
	}
	row, err := h.Cities.GetByID(ctx, id)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, cityDetail(row))
}

// DeleteCity handles DELETE /v1/cities/:id (staff).  Airports keep their
// rows; only the city link is cleared.
func (h *CatalogHandler) DeleteCity(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	if err := h.Cities.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
