// Package fetch substitutes a fixed demonstration dataset whenever a backend read fails,
// and keeps an audit trail of every read.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/arbitres/console/core"
)

// Result is the outcome of a resilient read.
// Records is never nil. When UsedFallback is set, Records is demonstration data
// and Err holds the cause.
type Result[T any] struct {
	Records      []T   `json:"records"`
	UsedFallback bool  `json:"used_fallback"`
	Err          error `json:"-"`
}

// Call performs one backend read.
type Call[T any] func(ctx context.Context) ([]T, error)

// Fallback produces the demonstration records to substitute.
type Fallback[T any] func() []T

var nowFunc = time.Now // mockable

// Resilient runs call once. Any error (transport, non-2xx, malformed payload) is logged
// and replaced by the fallback records. There are no retries.
func Resilient[T any](ctx context.Context, logger core.Logger, resource string, call Call[T], fallback Fallback[T]) Result[T] {
	records, err := call(ctx)
	if err != nil {
		logger.Warn(fmt.Sprintf("%s: backend unavailable, using demonstration data", resource), err)
		return Result[T]{Records: nonNil(fallback()), UsedFallback: true, Err: err}
	}
	return Result[T]{Records: nonNil(records)}
}

func nonNil[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return records
}

// Event records one backend read.
type Event struct {
	ID           int       `json:"id" db:"id"`
	Resource     string    `json:"resource" db:"resource"`
	Period       string    `json:"period,omitempty" db:"period"`
	RefDate      string    `json:"ref_date,omitempty" db:"ref_date"`
	UsedFallback bool      `json:"used_fallback" db:"used_fallback"`
	ErrorKind    string    `json:"error_kind,omitempty" db:"error_kind"`
	Error        string    `json:"error,omitempty" db:"error"`
	At           time.Time `json:"at" db:"at"`
}

// NewEvent builds the audit Event of a read from its outcome.
func NewEvent(resource, period, refDate string, usedFallback bool, err error) Event {
	evt := Event{
		Resource:     resource,
		Period:       period,
		RefDate:      refDate,
		UsedFallback: usedFallback,
		At:           nowFunc().UTC(),
	}
	if err != nil {
		evt.Error = err.Error()
		if fErr, ok := core.AsFetchError(err); ok {
			evt.ErrorKind = string(fErr.Kind)
		}
	}
	return evt
}

// EventFilter narrows event queries.
type EventFilter struct {
	Resource     string `query:"resource"`
	FallbackOnly bool   `query:"fallback_only"`
	Limit        int    `query:"limit"`
}

const (
	DefaultEventLimit = 50
	MaxEventLimit     = 500
)

// Clean applies defaults and bounds.
func (f *EventFilter) Clean() {
	f.Resource = core.CleanString(f.Resource, true)
	if f.Limit <= 0 {
		f.Limit = DefaultEventLimit
	}
	if f.Limit > MaxEventLimit {
		f.Limit = MaxEventLimit
	}
}

// Repository stores fetch events.
type Repository interface {
	AddEvent(ctx context.Context, evt Event) (Event, error)
	QueryEvents(ctx context.Context, filter EventFilter) ([]Event, error)
}

// Recorder appends events to a Repository without failing the read it describes.
type Recorder struct {
	repo   Repository
	logger core.Logger
}

func NewRecorder(repo Repository, logger core.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record stores the event. Storage errors are logged and dropped.
func (r *Recorder) Record(ctx context.Context, evt Event) {
	if r == nil || r.repo == nil {
		return
	}
	if _, err := r.repo.AddEvent(ctx, evt); err != nil {
		r.logger.Error(fmt.Sprintf("recording fetch event: %v", err), err)
	}
}

// Query lists recent events, newest first.
func (r *Recorder) Query(ctx context.Context, filter EventFilter) ([]Event, error) {
	filter.Clean()
	if r == nil || r.repo == nil {
		return []Event{}, nil
	}
	return r.repo.QueryEvents(ctx, filter)
}
