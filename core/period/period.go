// Package period classifies date ranges relative to a reference date.
package period

import (
	"strings"

	"github.com/arbitres/console/core"
)

// Bucket is a time-relative category. All is the union of the other three.
type Bucket string

const (
	All      Bucket = "all"
	Past     Bucket = "past"
	Ongoing  Bucket = "ongoing"
	Upcoming Bucket = "upcoming"
)

// Buckets lists every bucket, All first.
var Buckets = []Bucket{All, Past, Ongoing, Upcoming}

// aliases accepted when parsing user input; the French ones match the backend routes.
var aliases = map[string]Bucket{
	"":         All,
	"all":      All,
	"toutes":   All,
	"past":     Past,
	"passees":  Past,
	"ongoing":  Ongoing,
	"en-cours": Ongoing,
	"upcoming": Upcoming,
	"a-venir":  Upcoming,
}

// Parse maps user input (English or French) to a Bucket.
func Parse(s string) (Bucket, bool) {
	b, ok := aliases[core.CleanString(s, true)]
	return b, ok
}

func (b Bucket) Valid() bool {
	switch b {
	case All, Past, Ongoing, Upcoming:
		return true
	}
	return false
}

// Label returns the French display label.
func (b Bucket) Label() string {
	switch b {
	case Past:
		return "Passées"
	case Ongoing:
		return "En cours"
	case Upcoming:
		return "À venir"
	default:
		return "Toutes"
	}
}

func (b Bucket) String() string { return string(b) }

// UnmarshalParam binds query parameters (echo.BindUnmarshaler).
func (b *Bucket) UnmarshalParam(param string) error {
	parsed, ok := Parse(param)
	if !ok {
		return core.NewValidationError(nil, core.FieldError{Field: "period", Error: "unknown period " + strings.TrimSpace(param)})
	}
	*b = parsed
	return nil
}

// Classify places the inclusive range [start, end] relative to ref.
// It never returns All. start <= end is assumed.
func Classify(start, end, ref core.Date) Bucket {
	if end.Before(ref) {
		return Past
	}
	if !start.After(ref) { // start <= ref <= end
		return Ongoing
	}
	return Upcoming
}

// Ranged is anything spanning a date range.
type Ranged interface {
	Range() (start, end core.Date)
}

// Of classifies a Ranged record.
func Of(r Ranged, ref core.Date) Bucket {
	start, end := r.Range()
	return Classify(start, end, ref)
}

// Filter keeps the records that fall in bucket b. All keeps everything.
func Filter[T Ranged](records []T, b Bucket, ref core.Date) []T {
	if b == All {
		return append([]T(nil), records...)
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if Of(r, ref) == b {
			out = append(out, r)
		}
	}
	return out
}

// Partition groups every record under exactly one of Past, Ongoing or Upcoming.
func Partition[T Ranged](records []T, ref core.Date) map[Bucket][]T {
	parts := map[Bucket][]T{Past: {}, Ongoing: {}, Upcoming: {}}
	for _, r := range records {
		b := Of(r, ref)
		parts[b] = append(parts[b], r)
	}
	return parts
}

// Counts holds the number of records per bucket.
type Counts map[Bucket]int

// Count computes local counts for every bucket over records.
func Count[T Ranged](records []T, ref core.Date) Counts {
	counts := Counts{All: len(records), Past: 0, Ongoing: 0, Upcoming: 0}
	for _, r := range records {
		counts[Of(r, ref)]++
	}
	return counts
}

// StringKeys returns a copy keyed by plain strings, for templates and JSON.
func (c Counts) StringKeys() map[string]int {
	out := make(map[string]int, len(c))
	for k, v := range c {
		out[string(k)] = v
	}
	return out
}
