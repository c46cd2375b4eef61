package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arbitres/console/core/fetch"
	"github.com/arbitres/console/core/league"
)

type (
	LeaguesResponse struct {
		Leagues      []league.League `json:"leagues"`
		UsedFallback bool            `json:"used_fallback"`
	}
)

func registerLeagueAPI(g *echo.Group, svc *league.Service) {
	g.GET("", func(ctx echo.Context) error {
		res := svc.List(ctx.Request().Context())
		return ctx.JSON(http.StatusOK, LeaguesResponse{Leagues: res.Records, UsedFallback: res.UsedFallback})
	})
}

func registerFetchEventAPI(g *echo.Group, recorder *fetch.Recorder) {
	g.GET("", func(ctx echo.Context) error {
		var filter fetch.EventFilter
		if err := ctx.Bind(&filter); err != nil {
			return err
		}
		events, err := recorder.Query(ctx.Request().Context(), filter)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, events)
	})
}
