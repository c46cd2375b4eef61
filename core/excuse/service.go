// Package excuse aggregates referees' excuses from the REST backend into
// time-bucketed, filtered views.
package excuse

import (
	"context"
	"sync"

	"github.com/kat-co/vala"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/fetch"
	"github.com/arbitres/console/core/period"
)

// Resource names the excuses in logs and fetch events.
const Resource = "excuses"

// Repository reads excuses from the backend.
// QueryExcuses asks the backend for one bucket relative to ref; it does not filter locally.
type Repository interface {
	QueryExcuses(ctx context.Context, bucket period.Bucket, ref core.Date) ([]Excuse, error)
}

// View is the selected-bucket list with the four bucket counts.
// Counts may disagree with Excuses when only some reads failed.
type View struct {
	Period         period.Bucket          `json:"period"`
	Date           core.Date              `json:"date"`
	Excuses        []Excuse               `json:"excuses"`
	Counts         period.Counts          `json:"counts"`
	UsedFallback   bool                   `json:"used_fallback"`
	FallbackCounts map[period.Bucket]bool `json:"fallback_counts"`
}

// Degraded reports whether any part of the view is demonstration data.
func (v View) Degraded() bool {
	if v.UsedFallback {
		return true
	}
	for _, fb := range v.FallbackCounts {
		if fb {
			return true
		}
	}
	return false
}

type Service struct {
	repo     Repository
	recorder *fetch.Recorder
	mailSvc  core.EmailService
	logger   core.Logger
	appName  string
}

func NewService(repo Repository, recorder *fetch.Recorder, mailSvc core.EmailService, logger core.Logger, conf *core.Config) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(logger, "logger"),
		vala.IsNotNil(conf, "conf"),
	).CheckAndPanic()

	return &Service{
		repo:     repo,
		recorder: recorder,
		mailSvc:  mailSvc,
		logger:   logger,
		appName:  conf.AppName,
	}
}

// Fallback returns the demonstration excuses falling in bucket relative to ref.
func Fallback(bucket period.Bucket, ref core.Date) []Excuse {
	return period.Filter(Demo(), bucket, ref)
}

// FetchBucket reads one bucket. On any backend failure the demonstration excuses of that
// bucket are returned with UsedFallback set.
func (svc *Service) FetchBucket(ctx context.Context, bucket period.Bucket, ref core.Date) fetch.Result[Excuse] {
	res := fetch.Resilient(ctx, svc.logger, Resource+"/"+string(bucket),
		func(ctx context.Context) ([]Excuse, error) {
			return svc.repo.QueryExcuses(ctx, bucket, ref)
		},
		func() []Excuse { return Fallback(bucket, ref) },
	)
	svc.recorder.Record(ctx, fetch.NewEvent(Resource, string(bucket), ref.String(), res.UsedFallback, res.Err))
	return res
}

// Counts reads the four buckets concurrently. A failed bucket is counted locally over the
// demonstration dataset; the returned map flags which counts are local.
func (svc *Service) Counts(ctx context.Context, ref core.Date) (period.Counts, map[period.Bucket]bool) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	counts := make(period.Counts, len(period.Buckets))
	fallbacks := make(map[period.Bucket]bool, len(period.Buckets))

	for _, b := range period.Buckets {
		wg.Add(1)
		go func(b period.Bucket) {
			defer wg.Done()
			res := svc.FetchBucket(ctx, b, ref)

			mu.Lock()
			defer mu.Unlock()
			counts[b] = len(res.Records)
			fallbacks[b] = res.UsedFallback
		}(b)
	}
	wg.Wait()
	return counts, fallbacks
}

// View fetches the selected bucket and all four counts, then applies the name and league
// filters to the list. Only invalid queries return an error.
func (svc *Service) View(ctx context.Context, q Query) (View, error) {
	crit, err := q.Resolve()
	if err != nil {
		return View{}, err
	}
	return svc.ViewCriteria(ctx, crit), nil
}

// ViewCriteria is View for an already resolved query.
func (svc *Service) ViewCriteria(ctx context.Context, crit Criteria) View {
	var (
		wg     sync.WaitGroup
		res    fetch.Result[Excuse]
		counts period.Counts
		fbs    map[period.Bucket]bool
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		res = svc.FetchBucket(ctx, crit.Period, crit.Date)
	}()
	go func() {
		defer wg.Done()
		counts, fbs = svc.Counts(ctx, crit.Date)
	}()
	wg.Wait()

	return View{
		Period:         crit.Period,
		Date:           crit.Date,
		Excuses:        crit.Filter.Apply(res.Records),
		Counts:         counts,
		UsedFallback:   res.UsedFallback,
		FallbackCounts: fbs,
	}
}
