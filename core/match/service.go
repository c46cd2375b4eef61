// Package match lists a league's matches with their refereeing crews.
package match

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/fetch"
	"github.com/arbitres/console/core/period"
)

const Resource = "matches"

// ErrUnknownCompetition is returned for a league without a matches endpoint.
var ErrUnknownCompetition = errors.New("unknown competition")

// Repository reads one page of a league's matches.
type Repository interface {
	QueryMatches(ctx context.Context, c Competition, page int) (Page, error)
}

// Query selects and filters a league's matches.
type Query struct {
	League string `json:"league" query:"league" validate:"required"`
	Status string `json:"status" query:"status"`
	Search string `json:"search" query:"search" validate:"max=100"`
	Date   string `json:"date" query:"date" validate:"omitempty,isodate"`
	Page   int    `json:"page" query:"page" validate:"min=0"`
}

func (q Query) Validate(validate *validator.Validate) error {
	if err := validate.Struct(q); err != nil {
		return errors.Wrap(err, "validating query")
	}
	if _, ok := LookupCompetition(q.League); !ok {
		return core.NewValidationError(ErrUnknownCompetition, core.FieldError{Field: "league", Error: "unknown league"})
	}
	if st := core.CleanString(q.Status, true); st != "" && st != "all" && !Status(st).Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "status", Error: "must be one of: all scheduled in_progress completed cancelled"})
	}
	return nil
}

// Entry is a match with its time bucket relative to the view's reference date.
type Entry struct {
	Match
	Period period.Bucket `json:"period"`
}

type View struct {
	Competition  Competition    `json:"competition"`
	Date         core.Date      `json:"date"`
	Matches      []Entry        `json:"matches"`
	StatusCounts map[string]int `json:"status_counts"`
	Statistics   Statistics     `json:"statistics"`
	UsedFallback bool           `json:"used_fallback"`
}

type Service struct {
	repo     Repository
	recorder *fetch.Recorder
	logger   core.Logger
}

func NewService(repo Repository, recorder *fetch.Recorder, logger core.Logger) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()
	return &Service{repo: repo, recorder: recorder, logger: logger}
}

// List reads one page of the league's matches, falling back to the demonstration matches,
// then filters by status and search text. Status counts are computed before the status filter.
func (svc *Service) List(ctx context.Context, q Query) (View, error) {
	comp, ok := LookupCompetition(q.League)
	if !ok {
		return View{}, core.NewValidationError(ErrUnknownCompetition, core.FieldError{Field: "league", Error: "unknown league"})
	}
	ref := core.Today()
	if core.CleanString(q.Date) != "" {
		var err error
		if ref, err = core.ParseDate(q.Date); err != nil {
			return View{}, core.NewValidationError(err, core.FieldError{Field: "date", Error: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	var stats Statistics
	res := fetch.Resilient(ctx, svc.logger, Resource+"/"+comp.Slug,
		func(ctx context.Context) ([]Match, error) {
			p, err := svc.repo.QueryMatches(ctx, comp, page)
			stats = p.Statistics
			return p.Matches, err
		},
		func() []Match { return Demo(comp.Label) },
	)
	svc.recorder.Record(ctx, fetch.NewEvent(Resource, comp.Slug, ref.String(), res.UsedFallback, res.Err))
	if res.UsedFallback {
		stats = Statistics{TotalMatches: len(res.Records), Page: 1, PageSize: len(res.Records), TotalPages: 1}
	}

	counts := CountByStatus(res.Records)
	status := Status(core.CleanString(q.Status, true))
	search := core.CleanString(q.Search)

	entries := make([]Entry, 0, len(res.Records))
	for _, m := range res.Records {
		if status.Valid() && m.Status != status {
			continue
		}
		if search != "" && !matchesSearch(m, search) {
			continue
		}
		entries = append(entries, Entry{Match: m, Period: period.Of(m, ref)})
	}

	return View{
		Competition:  comp,
		Date:         ref,
		Matches:      entries,
		StatusCounts: counts,
		Statistics:   stats,
		UsedFallback: res.UsedFallback,
	}, nil
}

// CountByStatus counts matches per status, plus "all".
func CountByStatus(matches []Match) map[string]int {
	counts := map[string]int{"all": len(matches)}
	for _, st := range Statuses {
		counts[string(st)] = 0
	}
	for _, m := range matches {
		counts[string(m.Status)]++
	}
	return counts
}

func matchesSearch(m Match, s string) bool {
	for _, field := range append([]string{m.HomeTeam, m.AwayTeam, m.Stadium}, m.Referees.Names()...) {
		if core.ContainsFold(field, s) {
			return true
		}
	}
	return false
}
