package echoapi

import (
	"fmt"
	"net/http"
	"net/mail"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/excuse"
	"github.com/arbitres/console/core/period"
)

const headerUsedFallback = "X-Used-Fallback"

type (
	CountsResponse struct {
		Date           core.Date              `json:"date"`
		Counts         period.Counts          `json:"counts"`
		FallbackCounts map[period.Bucket]bool `json:"fallback_counts"`
	}

	NotifyResponse struct {
		Recipients   int  `json:"recipients"`
		Excuses      int  `json:"excuses"`
		UsedFallback bool `json:"used_fallback"`
	}
)

type excuseApi struct {
	svc        *excuse.Service
	validate   *validator.Validate
	recipients []mail.Address
}

func registerExcuseAPI(g *echo.Group, svc *excuse.Service, validate *validator.Validate, recipients []mail.Address) {
	api := excuseApi{
		svc:        svc,
		validate:   validate,
		recipients: recipients,
	}

	g.GET("", api.view)
	g.GET("/counts", api.counts)
	g.GET("/export", api.export)
	g.POST("/notify", api.notify)
}

func (api *excuseApi) bindQuery(ctx echo.Context) (excuse.Query, error) {
	var q excuse.Query
	if err := ctx.Bind(&q); err != nil {
		return q, errors.Wrap(err, "binding to excuse.Query")
	}
	return q, q.Validate(api.validate)
}

// Handlers

func (api *excuseApi) view(ctx echo.Context) error {
	q, err := api.bindQuery(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.View(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *excuseApi) counts(ctx echo.Context) error {
	q, err := api.bindQuery(ctx)
	if err != nil {
		return err
	}
	crit, err := q.Resolve()
	if err != nil {
		return err
	}
	counts, fallbacks := api.svc.Counts(ctx.Request().Context(), crit.Date)
	return ctx.JSON(http.StatusOK, CountsResponse{Date: crit.Date, Counts: counts, FallbackCounts: fallbacks})
}

func (api *excuseApi) export(ctx echo.Context) error {
	q, err := api.bindQuery(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.View(ctx.Request().Context(), q)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("excuses_%s_%s.csv", view.Period, view.Date)
	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	res.Header().Set(headerUsedFallback, strconv.FormatBool(view.Degraded()))
	res.WriteHeader(http.StatusOK)
	return excuse.WriteCSV(res, view.Excuses)
}

func (api *excuseApi) notify(ctx echo.Context) error {
	q, err := api.bindQuery(ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.Notify(ctx.Request().Context(), q, api.recipients)
	if err != nil {
		if err == excuse.ErrNoRecipients {
			return core.NewValidationError(err)
		}
		return errors.Wrap(err, "sending digest")
	}
	return ctx.JSON(http.StatusAccepted, NotifyResponse{
		Recipients:   len(api.recipients),
		Excuses:      len(view.Excuses),
		UsedFallback: view.Degraded(),
	})
}
