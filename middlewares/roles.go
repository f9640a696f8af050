package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole passes when the authenticated role matches at least one
// of the allowed values. Must run after RequireAuth.
func RequireRole(roles ...int) echo.MiddlewareFunc {
	allowed := make(map[int]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(int)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
			}
			return next(c)
		}
	}
}
