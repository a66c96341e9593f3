package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skyfleet/airline-booking-api/internal/model"
	"github.com/skyfleet/airline-booking-api/internal/repository"
)

type crewResp struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type crewReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (b crewReq) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(b.FirstName) == "" {
		errs["first_name"] = "this field is required"
	}
	if strings.TrimSpace(b.LastName) == "" {
		errs["last_name"] = "this field is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func crewOut(c model.Crew) crewResp {
	return crewResp{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FirstName + " " + c.LastName,
	}
}

// ListCrews handles GET /v1/crews.
func (h *CatalogHandler) ListCrews(c echo.Context) error {
	items, err := h.Crews.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	out := make([]crewResp, 0, len(items))
	for _, it := range items {
		out = append(out, crewOut(it))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetCrew handles GET /v1/crews/:id.
func (h *CatalogHandler) GetCrew(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	it, err := h.Crews.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCrewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "crew member not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, crewOut(*it))
}

// CreateCrew handles POST /v1/crews (staff).
func (h *CatalogHandler) CreateCrew(c echo.Context) error {
	var body crewReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	crew := &model.Crew{
		FirstName: strings.TrimSpace(body.FirstName),
		LastName:  strings.TrimSpace(body.LastName),
	}
	if err := h.Crews.Create(c.Request().Context(), crew); err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, crewOut(*crew))
}

// UpdateCrew handles PUT /v1/crews/:id (staff).
func (h *CatalogHandler) UpdateCrew(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var body crewReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	crew := &model.Crew{
		ID:        id,
		FirstName: strings.TrimSpace(body.FirstName),
		LastName:  strings.TrimSpace(body.LastName),
	}
	if err := h.Crews.Update(c.Request().Context(), crew); err != nil {
		if errors.Is(err, repository.ErrCrewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "crew member not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, crewOut(*crew))
}

// DeleteCrew handles DELETE /v1/crews/:id (staff).
func (h *CatalogHandler) DeleteCrew(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	if err := h.Crews.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCrewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "crew member not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
