package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivecrm/olivecrm/internal/server/models"
)

func rbacCall(t *testing.T, role string, allowed ...string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(CtxRole, role)
	}

	called := false
	handler := RBAC(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, called
}

func TestRBAC(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed []string
		want    bool
	}{
		{"allowed role passes", models.RoleManager, []string{models.RoleManager, models.RoleUser}, true},
		{"admin passes any check", models.RoleAdmin, []string{models.RoleManager}, true},
		{"viewer blocked from writes", models.RoleViewer, []string{models.RoleManager, models.RoleUser}, false},
		{"missing role blocked", "", []string{models.RoleManager}, false},
		{"unknown role blocked", "auditor", []string{models.RoleManager}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called := rbacCall(t, tt.role, tt.allowed...)
			assert.Equal(t, tt.want, called)
			if !tt.want {
				assert.Equal(t, http.StatusForbidden, rec.Code)
				assert.JSONEq(t, `{"error": "forbidden"}`, rec.Body.String())
			}
		})
	}
}
