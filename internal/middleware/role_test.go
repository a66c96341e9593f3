package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRole(t *testing.T, role interface{}, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/orders/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := RequireRole(allowed...)(next)(c)
	require.NoError(t, err)
	return rec
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	rec := runRole(t, "STAFF", "STAFF")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleForbidsOtherRole(t *testing.T) {
	rec := runRole(t, "CUSTOMER", "STAFF")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleForbidsMissingRole(t *testing.T) {
	rec := runRole(t, nil, "STAFF", "CUSTOMER")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
