package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/account"
)

type (
	LoginResponse struct {
		Token string        `json:"token"`
		Admin account.Admin `json:"admin"`
	}
)

type authApi struct {
	svc      *account.Service
	validate *validator.Validate
	conf     *core.Config
}

func registerAuthAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	admin echo.MiddlewareFunc,
	svc *account.Service,
	validate *validator.Validate,
	conf *core.Config,
) {
	api := authApi{
		svc:      svc,
		validate: validate,
		conf:     conf,
	}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/login", api.login)

	// authed endpoints
	ag.POST("/token-refresh", api.refreshToken, jwt)
	ag.GET("/me", api.me, jwt, admin)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data account.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess, err := api.svc.Login(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(GetAdminClaims(sess.Admin, sess.Access, api.conf), api.conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Admin: sess.Admin})
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, adm, err := refreshToken(ctx, api.svc, api.conf)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Admin: adm})
}

func (api *authApi) me(ctx echo.Context) error {
	adm, err := api.svc.Profile(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "fetching profile")
	}
	return ctx.JSON(http.StatusOK, adm)
}
