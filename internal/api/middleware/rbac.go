package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/saborshop/storefront/internal/core/domain"
)

// RBAC lets through only requests whose "role" claim is one of allowedRoles.
// Other callers get domain.ErrForbidden, rendered as 403 by the API error
// handler.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return fmt.Errorf("role %q on %s: %w", role, c.Path(), domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
