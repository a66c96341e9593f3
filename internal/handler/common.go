// Package handler exposes the HTTP handlers of the booking API.  Handlers
// bundle the repositories they need and translate repository sentinels into
// HTTP status codes.  Field-level validation failures and unique-key
// conflicts are both reported as 400 with a per-field error map, matching
// what API clients correct; ownership misses surface as 404 so an
// out-of-scope id is indistinguishable from a missing one.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Roles carried in the JWT "role" claim.
const (
	RoleStaff    = "STAFF"
	RoleCustomer = "CUSTOMER"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// isStaff reports whether the request carries the STAFF role.
func isStaff(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == RoleStaff
}

// parseID parses the :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// href builds the canonical URL of a resource for detail-shape responses.
func href(collection string, id uint64) string {
	return fmt.Sprintf("/v1/%s/%d", collection, id)
}

// fieldErrors writes a 400 response with a per-field error map.
func fieldErrors(c echo.Context, errs map[string]string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
}

// badID writes the standard invalid-id response.
func badID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
}

// dbError writes the generic database failure response.
func dbError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
}
