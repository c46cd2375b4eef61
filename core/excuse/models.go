package excuse

import (
	"strings"

	"github.com/arbitres/console/core"
)

// Status is the review state of an excuse.
type Status string

const (
	Pending  Status = "pending"
	Accepted Status = "accepted"
	Rejected Status = "rejected"
)

// Field defaults applied when the backend omits a value.
const (
	DefaultName   = "N/A"
	DefaultReason = "Non spécifiée"
	DefaultLeague = "Non spécifiée"
	DefaultStatus = Pending
)

// DefaultDate stands in for missing start and end dates.
var DefaultDate = core.NewDate(2024, 1, 1)

var statusAliases = map[string]Status{
	"pending":    Pending,
	"en_attente": Pending,
	"en attente": Pending,
	"accepted":   Accepted,
	"accepte":    Accepted,
	"acceptee":   Accepted,
	"acceptée":   Accepted,
	"accepté":    Accepted,
	"approved":   Accepted,
	"rejected":   Rejected,
	"refuse":     Rejected,
	"refusee":    Rejected,
	"refusée":    Rejected,
	"refusé":     Rejected,
}

// ParseStatus maps backend status values (French or English) to a Status.
// Unknown values map to DefaultStatus.
func ParseStatus(s string) Status {
	if st, ok := statusAliases[core.CleanString(s, true)]; ok {
		return st
	}
	return DefaultStatus
}

func (s Status) Valid() bool {
	switch s {
	case Pending, Accepted, Rejected:
		return true
	}
	return false
}

// Label returns the French display label.
func (s Status) Label() string {
	switch s {
	case Accepted:
		return "Acceptée"
	case Rejected:
		return "Refusée"
	default:
		return "En attente"
	}
}

// Excuse is a referee's declared unavailability over an inclusive date range.
type Excuse struct {
	ID         int       `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	StartDate  core.Date `json:"start_date"`
	EndDate    core.Date `json:"end_date"`
	Reason     string    `json:"reason"`
	Attachment string    `json:"attachment,omitempty"`
	Status     Status    `json:"status"`
	CreatedAt  core.Date `json:"created_at"`
	League     string    `json:"league,omitempty"`
}

// Range implements period.Ranged.
func (e Excuse) Range() (core.Date, core.Date) {
	return e.StartDate, e.EndDate
}

func (e Excuse) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// HasAttachment reports whether a supporting document was uploaded.
func (e Excuse) HasAttachment() bool {
	return e.Attachment != ""
}
