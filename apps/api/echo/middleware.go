package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
)

// adminMiddleware lets staff and superusers through and forwards their backend token.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if !claims.Admin().IsAdmin() {
				return errNotAdmin
			}
			req := ctx.Request()
			ctx.SetRequest(req.WithContext(core.WithAccessToken(req.Context(), claims.Access)))
			ctx.Set(contextAdminKey, claims.Admin())
			return next(ctx)
		}
	}
}
