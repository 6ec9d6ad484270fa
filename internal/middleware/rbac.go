package middleware

import (
	"planit/internal/common"
	"planit/internal/models"

	"github.com/labstack/echo/v4"
)

// SelfOrAdmin lets the request through when the path parameter names the
// caller's own user id or the caller is an admin.
func SelfOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := common.AuthorizeSelfOrAdmin(models.ID(c.Param(param)), CurrentUser(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := common.AuthorizeRole(roles, CurrentUser(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}
