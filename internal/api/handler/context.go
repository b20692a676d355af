package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
)

// ctxActor extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both subject and role
// must be non-empty (presence proves the middleware ran). The role-to-data
// policy itself is enforced in the service layer.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if id == "" || role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Actor{ID: id, Role: role}, nil
}
