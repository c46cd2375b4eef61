package excuse

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/period"
)

// AllLeagues are the league selector values meaning "no league filter".
var AllLeagues = map[string]bool{"": true, "all": true, "toutes": true}

// Query is a user's view request.
type Query struct {
	Period string `json:"period" query:"period"`
	Date   string `json:"date" query:"date" validate:"omitempty,isodate"`
	Search string `json:"search" query:"search" validate:"max=100"`
	League string `json:"league" query:"league" validate:"max=100"`
}

// Validate checks the query with validate, then the period selector.
func (q Query) Validate(validate *validator.Validate) error {
	if err := validate.Struct(q); err != nil {
		return errors.Wrap(err, "validating query")
	}
	if _, ok := period.Parse(q.Period); !ok {
		return core.NewValidationError(nil, core.FieldError{Field: "period", Error: "must be one of: all past ongoing upcoming"})
	}
	return nil
}

// Criteria is a resolved Query.
type Criteria struct {
	Period period.Bucket
	Date   core.Date
	Filter Filter
}

// Resolve parses the query. An empty date means today.
func (q Query) Resolve() (Criteria, error) {
	bucket, ok := period.Parse(q.Period)
	if !ok {
		return Criteria{}, core.NewValidationError(nil, core.FieldError{Field: "period", Error: "must be one of: all past ongoing upcoming"})
	}
	ref := core.Today()
	if core.CleanString(q.Date) != "" {
		var err error
		if ref, err = core.ParseDate(q.Date); err != nil {
			return Criteria{}, core.NewValidationError(err, core.FieldError{Field: "date", Error: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	return Criteria{
		Period: bucket,
		Date:   ref,
		Filter: Filter{Search: q.Search, League: q.League},
	}, nil
}

// Filter narrows a list client-side.
type Filter struct {
	Search string // case-insensitive substring of first or last name
	League string // exact league label; empty, "all" and "toutes" disable it
}

// Match reports whether e passes both predicates.
func (f Filter) Match(e Excuse) bool {
	if s := core.CleanString(f.Search); s != "" {
		if !core.ContainsFold(e.FirstName, s) && !core.ContainsFold(e.LastName, s) {
			return false
		}
	}
	if l := core.CleanString(f.League); !AllLeagues[core.CleanString(l, true)] {
		if e.League != l {
			return false
		}
	}
	return true
}

// Apply returns the matching excuses in their original order.
func (f Filter) Apply(excuses []Excuse) []Excuse {
	out := make([]Excuse, 0, len(excuses))
	for _, e := range excuses {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
