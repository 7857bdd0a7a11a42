package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

// RequireRole admits only the listed roles. It assumes Auth already ran and
// populated the role in the context; an absent role reads as a mismatch and
// is rejected the same way.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrRoleNotAllowed
			}
			return next(c)
		}
	}
}
