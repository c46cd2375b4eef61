package echoapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/league"
	"github.com/arbitres/console/core/match"
)

type matchApi struct {
	svc      *match.Service
	validate *validator.Validate
}

func registerMatchAPI(g *echo.Group, svc *match.Service, validate *validator.Validate) {
	api := matchApi{svc: svc, validate: validate}

	g.GET("", api.list)
	g.GET("/competitions", api.competitions)
}

// unknownLeagueError reports name with the closest competition names.
func unknownLeagueError(name string) error {
	msg := "unknown league"
	if suggestions := league.Suggest(name, match.CompetitionNames()); len(suggestions) > 0 {
		if len(suggestions) > 3 {
			suggestions = suggestions[:3]
		}
		msg += ", did you mean: " + strings.Join(suggestions, ", ") + "?"
	}
	return core.NewValidationError(match.ErrUnknownCompetition, core.FieldError{Field: "league", Error: msg})
}

// Handlers

func (api *matchApi) list(ctx echo.Context) error {
	var q match.Query
	if err := ctx.Bind(&q); err != nil {
		return errors.Wrap(err, "binding to match.Query")
	}
	if q.League != "" {
		if _, ok := match.LookupCompetition(q.League); !ok {
			return unknownLeagueError(q.League)
		}
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

func (api *matchApi) competitions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, match.Competitions())
}
