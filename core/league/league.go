// Package league lists the federation's competitions.
package league

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kat-co/vala"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/fetch"
)

const Resource = "leagues"

type League struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var demo = []League{
	{ID: 1, Name: "Ligue 1"},
	{ID: 2, Name: "Ligue 2"},
	{ID: 3, Name: "C1"},
	{ID: 4, Name: "C2"},
	{ID: 5, Name: "Jeunes"},
	{ID: 6, Name: "Coupe de Tunisie"},
}

// Demo returns a copy of the demonstration leagues.
func Demo() []League {
	return append([]League(nil), demo...)
}

// Repository reads leagues from the backend.
type Repository interface {
	QueryLeagues(ctx context.Context) ([]League, error)
}

// Cache keeps the last good backend answer.
type Cache interface {
	GetLeagues(ctx context.Context) ([]League, bool, error)
	SetLeagues(ctx context.Context, leagues []League) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo     Repository
	cache    Cache
	recorder *fetch.Recorder
	logger   core.Logger
}

// NewService builds the service. cache may be nil.
func NewService(repo Repository, cache Cache, recorder *fetch.Recorder, logger core.Logger) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()
	return &Service{repo: repo, cache: cache, recorder: recorder, logger: logger}
}

// List returns the cached leagues if any, else reads the backend and caches a good answer.
// Demonstration leagues are never cached.
func (svc *Service) List(ctx context.Context) fetch.Result[League] {
	if svc.cache != nil {
		leagues, ok, err := svc.cache.GetLeagues(ctx)
		if err != nil {
			svc.logger.Warn(fmt.Sprintf("reading league cache: %v", err), err)
		} else if ok {
			return fetch.Result[League]{Records: leagues}
		}
	}

	res := fetch.Resilient(ctx, svc.logger, Resource, svc.repo.QueryLeagues, Demo)
	svc.recorder.Record(ctx, fetch.NewEvent(Resource, "", "", res.UsedFallback, res.Err))

	if !res.UsedFallback && svc.cache != nil {
		if err := svc.cache.SetLeagues(ctx, res.Records); err != nil {
			svc.logger.Warn(fmt.Sprintf("writing league cache: %v", err), err)
		}
	}
	return res
}

// Refresh drops the cached list and reads the backend again.
func (svc *Service) Refresh(ctx context.Context) fetch.Result[League] {
	if svc.cache != nil {
		if err := svc.cache.Invalidate(ctx); err != nil {
			svc.logger.Warn(fmt.Sprintf("invalidating league cache: %v", err), err)
		}
	}
	return svc.List(ctx)
}

// Names returns the league names, sorted.
func Names(leagues []League) []string {
	names := make([]string, 0, len(leagues))
	for _, l := range leagues {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return names
}

// minSimilarity is the lowest ratio for a name to be suggested.
const minSimilarity = 0.6

// Suggest returns the candidates resembling name, most similar first.
func Suggest(name string, candidates []string) []string {
	type scored struct {
		name  string
		ratio float64
	}
	target := strings.Split(strings.ToLower(name), "")

	var matches []scored
	for _, c := range candidates {
		m := difflib.NewMatcher(target, strings.Split(strings.ToLower(c), ""))
		if m.QuickRatio() < minSimilarity {
			continue
		}
		if r := m.Ratio(); r >= minSimilarity {
			matches = append(matches, scored{c, r})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ratio > matches[j].ratio })

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.name)
	}
	return out
}
