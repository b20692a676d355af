package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC enforces a role allow-list on a route group. Fine-grained ownership
// checks happen in the service layer; this gate only keeps whole role
// classes away from surfaces they can never use.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "you don't have permission to access this resource")
			}
			return next(c)
		}
	}
}
