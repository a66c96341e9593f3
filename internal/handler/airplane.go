package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skyfleet/airline-booking-api/internal/model"
	"github.com/skyfleet/airline-booking-api/internal/repository"
)

// airplaneListResp is the compact list shape: type flattened to its name,
// capacity derived from the layout.
type airplaneListResp struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Rows         uint32 `json:"rows"`
	SeatsPerRow  uint32 `json:"seats_per_row"`
	Capacity     uint32 `json:"capacity"`
	AirplaneType string `json:"airplane_type"`
}

// airplaneDetailResp expands the type one level.
type airplaneDetailResp struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Rows         uint32  `json:"rows"`
	SeatsPerRow  uint32  `json:"seats_per_row"`
	Capacity     uint32  `json:"capacity"`
	AirplaneType refLink `json:"airplane_type"`
}

type airplaneReq struct {
	Name           string `json:"name"`
	Rows           uint32 `json:"rows"`
	SeatsPerRow    uint32 `json:"seats_per_row"`
	AirplaneTypeID uint64 `json:"airplane_type_id"`
}

func (b airplaneReq) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(b.Name) == "" {
		errs["name"] = "this field is required"
	}
	if b.Rows < 1 {
		errs["rows"] = "must be greater than or equal to 1"
	}
	if b.SeatsPerRow < 1 {
		errs["seats_per_row"] = "must be greater than or equal to 1"
	}
	if b.AirplaneTypeID == 0 {
		errs["airplane_type_id"] = "this field is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func airplaneDetail(row *repository.AirplaneRow) airplaneDetailResp {
	return airplaneDetailResp{
		ID:          row.ID,
		Name:        row.Name,
		Rows:        row.Rows,
		SeatsPerRow: row.SeatsPerRow,
		Capacity:    row.Capacity(),
		AirplaneType: refLink{
			ID:   row.AirplaneTypeID,
			Name: row.TypeName,
			Href: href("airplane-types", row.AirplaneTypeID),
		},
	}
}

// ListAirplanes handles GET /v1/airplanes.
func (h *CatalogHandler) ListAirplanes(c echo.Context) error {
	items, err := h.Airplanes.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	out := make([]airplaneListResp, 0, len(items))
	for _, it := range items {
		out = append(out, airplaneListResp{
			ID:           it.ID,
			Name:         it.Name,
			Rows:         it.Rows,
			SeatsPerRow:  it.SeatsPerRow,
			Capacity:     it.Capacity(),
			AirplaneType: it.TypeName,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetAirplane handles GET /v1/airplanes/:id.
func (h *CatalogHandler) GetAirplane(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	row, err := h.Airplanes.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAirplaneNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airplane not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, airplaneDetail(row))
}

// CreateAirplane handles POST /v1/airplanes (staff).  A repeated
// (name, airplane_type_id) pair is a validation failure, not a conflict.
func (h *CatalogHandler) CreateAirplane(c echo.Context) error {
	var body airplaneReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	ctx := c.Request().Context()
	if _, err := h.AirplaneTypes.GetByID(ctx, body.AirplaneTypeID); err != nil {
		if errors.Is(err, repository.ErrAirplaneTypeNotFound) {
			return fieldErrors(c, map[string]string{"airplane_type_id": "airplane type does not exist"})
		}
		return dbError(c)
	}
	a := &model.Airplane{
		Name:           strings.TrimSpace(body.Name),
		Rows:           body.Rows,
		SeatsPerRow:    body.SeatsPerRow,
		AirplaneTypeID: body.AirplaneTypeID,
	}
	if err := h.Airplanes.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fieldErrors(c, map[string]string{"name": "airplane with this name and type already exists"})
		}
		return dbError(c)
	}
	row, err := h.Airplanes.GetByID(ctx, a.ID)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, airplaneDetail(row))
}

// UpdateAirplane handles PUT /v1/airplanes/:id (staff).  Shrinking the
// layout does not touch existing tickets; bounds only apply to subsequent
// ticket writes.
func (h *CatalogHandler) UpdateAirplane(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	var body airplaneReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := body.validate(); errs != nil {
		return fieldErrors(c, errs)
	}
	ctx := c.Request().Context()
	if _, err := h.AirplaneTypes.GetByID(ctx, body.AirplaneTypeID); err != nil {
		if errors.Is(err, repository.ErrAirplaneTypeNotFound) {
			return fieldErrors(c, map[string]string{"airplane_type_id": "airplane type does not exist"})
		}
		return dbError(c)
	}
	a := &model.Airplane{
		ID:             id,
		Name:           strings.TrimSpace(body.Name),
		Rows:           body.Rows,
		SeatsPerRow:    body.SeatsPerRow,
		AirplaneTypeID: body.AirplaneTypeID,
	}
	if err := h.Airplanes.Update(ctx, a); err != nil {
		switch {
		case errors.Is(err, repository.ErrAirplaneNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airplane not found"})
		case errors.Is(err, repository.ErrDuplicate):
			return fieldErrors(c, map[string]string{"name": "airplane with this name and type already exists"})
		}
		return dbError(c)
	}
	row, err := h.Airplanes.GetByID(ctx, id)
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, airplaneDetail(row))
}

// DeleteAirplane handles DELETE /v1/airplanes/:id (staff).
func (h *CatalogHandler) DeleteAirplane(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return badID(c)
	}
	if err := h.Airplanes.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAirplaneNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "airplane not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
