// Package payment lists referees' match fees with their settlement totals.
package payment

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/fetch"
	"github.com/arbitres/console/core/period"
)

const Resource = "payments"

// Currency of every amount.
const Currency = "TND"

type Status string

const (
	Paid    Status = "paid"
	Pending Status = "pending"
)

var statusAliases = map[string]Status{
	"paid":       Paid,
	"paye":       Paid,
	"payé":       Paid,
	"pending":    Pending,
	"en_attente": Pending,
	"en attente": Pending,
}

// ParseStatus maps backend values to a Status. Unknown values are Pending.
func ParseStatus(s string) Status {
	if st, ok := statusAliases[core.CleanString(s, true)]; ok {
		return st
	}
	return Pending
}

func (s Status) Valid() bool {
	return s == Paid || s == Pending
}

func (s Status) Label() string {
	if s == Paid {
		return "Payé"
	}
	return "En attente"
}

// Payment is the fee owed to a referee for one match.
type Payment struct {
	ID      int       `json:"id"`
	Referee string    `json:"referee"`
	Match   string    `json:"match"`
	Date    core.Date `json:"date"`
	League  string    `json:"league"`
	Amount  float64   `json:"amount"`
	Status  Status    `json:"status"`
	PaidAt  core.Date `json:"paid_at"`
	Method  string    `json:"method"`
}

// Range implements period.Ranged with the match day.
func (p Payment) Range() (core.Date, core.Date) {
	return p.Date, p.Date
}

var demo = []Payment{
	{
		ID: 1, Referee: "Ahmed Ben Ali", Match: "ES Tunis vs Club Africain",
		Date: core.NewDate(2024, time.January, 15), League: "Ligue 1", Amount: 150,
		Status: Paid, PaidAt: core.NewDate(2024, time.January, 20), Method: "Virement bancaire",
	},
	{
		ID: 2, Referee: "Fatma Khelil", Match: "CS Sfaxien vs US Monastir",
		Date: core.NewDate(2024, time.January, 20), League: "Ligue 1", Amount: 120,
		Status: Pending, Method: "Chèque",
	},
	{
		ID: 3, Referee: "Mohamed Trabelsi", Match: "CA Bizertin vs AS Marsa",
		Date: core.NewDate(2024, time.January, 25), League: "Ligue 2", Amount: 100,
		Status: Pending, Method: "Espèces",
	},
}

// Demo returns a copy of the demonstration payments.
func Demo() []Payment {
	return append([]Payment(nil), demo...)
}

// Repository reads payments from the backend.
type Repository interface {
	QueryPayments(ctx context.Context) ([]Payment, error)
}

type Query struct {
	Referee string `json:"referee" query:"referee" validate:"max=100"`
	League  string `json:"league" query:"league" validate:"max=100"`
	Status  string `json:"status" query:"status" validate:"omitempty,oneof=all paid pending"`
	Date    string `json:"date" query:"date" validate:"omitempty,isodate"`
}

func (q Query) Validate(validate *validator.Validate) error {
	return errors.Wrap(validate.Struct(q), "validating query")
}

// Totals sums amounts by settlement state.
type Totals struct {
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
}

// Sum computes the totals of payments.
func Sum(payments []Payment) Totals {
	var t Totals
	for _, p := range payments {
		t.Total += p.Amount
		if p.Status == Paid {
			t.Paid += p.Amount
		} else {
			t.Pending += p.Amount
		}
	}
	return t
}

type Entry struct {
	Payment
	Period period.Bucket `json:"period"`
}

type View struct {
	Date         core.Date `json:"date"`
	Payments     []Entry   `json:"payments"`
	Totals       Totals    `json:"totals"`
	Currency     string    `json:"currency"`
	UsedFallback bool      `json:"used_fallback"`
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

// List reads every payment, falling back to the demonstration payments, and filters them.
// Totals cover the filtered list.
func (svc *Service) List(ctx context.Context, q Query) (View, error) {
	ref := core.Today()
	if core.CleanString(q.Date) != "" {
		var err error
		if ref, err = core.ParseDate(q.Date); err != nil {
			return View{}, core.NewValidationError(err, core.FieldError{Field: "date", Error: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	res := fetch.Resilient(ctx, svc.logger, Resource, svc.repo.QueryPayments, Demo)
	svc.recorder.Record(ctx, fetch.NewEvent(Resource, "", ref.String(), res.UsedFallback, res.Err))

	referee := core.CleanString(q.Referee)
	league := core.CleanString(q.League)
	status := Status(core.CleanString(q.Status, true))

	kept := make([]Payment, 0, len(res.Records))
	entries := make([]Entry, 0, len(res.Records))
	for _, p := range res.Records {
		if referee != "" && !core.ContainsFold(p.Referee, referee) {
			continue
		}
		if l := core.CleanString(league, true); l != "" && l != "all" && l != "toutes" && p.League != league {
			continue
		}
		if status.Valid() && p.Status != status {
			continue
		}
		kept = append(kept, p)
		entries = append(entries, Entry{Payment: p, Period: period.Of(p, ref)})
	}

	return View{
		Date:         ref,
		Payments:     entries,
		Totals:       Sum(kept),
		Currency:     Currency,
		UsedFallback: res.UsedFallback,
	}, nil
}
