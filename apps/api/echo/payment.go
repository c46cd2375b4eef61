package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core/payment"
)

type paymentApi struct {
	svc      *payment.Service
	validate *validator.Validate
}

func registerPaymentAPI(g *echo.Group, svc *payment.Service, validate *validator.Validate) {
	api := paymentApi{svc: svc, validate: validate}

	g.GET("", api.list)
}

func (api *paymentApi) list(ctx echo.Context) error {
	var q payment.Query
	if err := ctx.Bind(&q); err != nil {
		return errors.Wrap(err, "binding to payment.Query")
	}
	if err := q.Validate(api.validate); err != nil {
		return err
	}
	view, err := api.svc.List(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}
