package match

import (
	"sort"

	"github.com/arbitres/console/core"
)

// Status is the progress of a match.
type Status string

const (
	Scheduled  Status = "scheduled"
	InProgress Status = "in_progress"
	Completed  Status = "completed"
	Cancelled  Status = "cancelled"
)

// Statuses lists every status in display order.
var Statuses = []Status{Scheduled, InProgress, Completed, Cancelled}

// DefaultReferee is shown for unassigned officials.
const DefaultReferee = "Non assigné"

var statusAliases = map[string]Status{
	"scheduled":   Scheduled,
	"programme":   Scheduled,
	"programmé":   Scheduled,
	"a_venir":     Scheduled,
	"upcoming":    Scheduled,
	"in_progress": InProgress,
	"en_cours":    InProgress,
	"live":        InProgress,
	"ongoing":     InProgress,
	"completed":   Completed,
	"termine":     Completed,
	"terminé":     Completed,
	"finished":    Completed,
	"cancelled":   Cancelled,
	"canceled":    Cancelled,
	"annule":      Cancelled,
	"annulé":      Cancelled,
}

// ParseStatus maps backend values to a Status. Unknown values are Scheduled.
func ParseStatus(s string) Status {
	if st, ok := statusAliases[core.CleanString(s, true)]; ok {
		return st
	}
	return Scheduled
}

func (s Status) Valid() bool {
	switch s {
	case Scheduled, InProgress, Completed, Cancelled:
		return true
	}
	return false
}

// Label returns the French display label.
func (s Status) Label() string {
	switch s {
	case InProgress:
		return "En cours"
	case Completed:
		return "Terminé"
	case Cancelled:
		return "Annulé"
	default:
		return "Programmé"
	}
}

// Referees is the refereeing crew of a match.
type Referees struct {
	Principal  string `json:"principal"`
	Assistant1 string `json:"assistant1"`
	Assistant2 string `json:"assistant2"`
	Fourth     string `json:"fourth"`
}

// Names lists the assigned officials.
func (r Referees) Names() []string {
	names := make([]string, 0, 4)
	for _, n := range []string{r.Principal, r.Assistant1, r.Assistant2, r.Fourth} {
		if n != "" && n != DefaultReferee {
			names = append(names, n)
		}
	}
	return names
}

type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type Match struct {
	ID       int       `json:"id"`
	League   string    `json:"league"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Date     core.Date `json:"date"`
	Time     string    `json:"time"`
	Stadium  string    `json:"stadium"`
	Referees Referees  `json:"referees"`
	Status   Status    `json:"status"`
	Score    *Score    `json:"score,omitempty"`
}

// Range implements period.Ranged as a single-day range.
func (m Match) Range() (core.Date, core.Date) {
	return m.Date, m.Date
}

// Statistics is the backend's pagination block.
type Statistics struct {
	TotalMatches int  `json:"total_matches"`
	Page         int  `json:"page"`
	PageSize     int  `json:"page_size"`
	TotalPages   int  `json:"total_pages"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
}

// Page is one page of a league's matches.
type Page struct {
	Matches    []Match    `json:"matches"`
	Statistics Statistics `json:"statistics"`
}

// Competition is a league with its own matches endpoint.
type Competition struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

var competitions = []Competition{
	{Slug: "ligue1", Label: "Ligue 1"},
	{Slug: "ligue2", Label: "Ligue 2"},
	{Slug: "c1", Label: "C1"},
	{Slug: "c2", Label: "C2"},
	{Slug: "jeunes", Label: "Jeunes"},
	{Slug: "coupe-tunisie", Label: "Coupe de Tunisie"},
}

// Competitions lists the leagues that have a matches endpoint.
func Competitions() []Competition {
	return append([]Competition(nil), competitions...)
}

// LookupCompetition finds a competition by slug or label, ignoring case.
func LookupCompetition(s string) (Competition, bool) {
	s = core.CleanString(s, true)
	for _, c := range competitions {
		if c.Slug == s || core.CleanString(c.Label, true) == s {
			return c, true
		}
	}
	return Competition{}, false
}

// CompetitionNames lists slugs and labels, for suggestions.
func CompetitionNames() []string {
	names := make([]string, 0, 2*len(competitions))
	for _, c := range competitions {
		names = append(names, c.Slug, c.Label)
	}
	sort.Strings(names)
	return names
}
