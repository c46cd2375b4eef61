package restapi

import (
	"context"

	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/payment"
)

// payment field candidates, in priority order.
var (
	paymentRefereeKeys = []string{"referee.full_name", "referee", "arbitre"}
	paymentMatchKeys   = []string{"match", "match_label", "rencontre"}
	paymentDateKeys    = []string{"date", "match_date", "date_match"}
	paymentLeagueKeys  = []string{"league", "ligue"}
	paymentAmountKeys  = []string{"amount", "montant"}
	paymentStatusKeys  = []string{"status", "statut"}
	paymentPaidAtKeys  = []string{"paid_at", "date_paiement", "payment_date"}
	paymentMethodKeys  = []string{"method", "payment_method", "mode_paiement"}
)

type paymentRepository struct {
	client *Client
}

var _ payment.Repository = (*paymentRepository)(nil)

func NewPaymentRepository(client *Client) payment.Repository {
	return &paymentRepository{client: client}
}

func (repo *paymentRepository) QueryPayments(ctx context.Context) ([]payment.Payment, error) {
	payload, err := repo.client.get(ctx, payment.Resource, "/payments/", nil)
	if err != nil {
		return nil, err
	}
	list, err := extractList(payload, "payments", "paiements", "results")
	if err != nil {
		return nil, core.NewFetchError(core.FetchPayload, payment.Resource, err)
	}

	payments := make([]payment.Payment, 0, len(list))
	for i, item := range list {
		r, ok := asRecord(item)
		if !ok {
			return nil, core.NewFetchError(core.FetchPayload, payment.Resource, errors.Wrapf(errShape, "record %d is %T", i, item))
		}
		date, ok, err := r.date(paymentDateKeys...)
		if err == nil && !ok {
			err = errors.New("date missing")
		}
		if err != nil {
			return nil, core.NewFetchError(core.FetchPayload, payment.Resource, errors.Wrapf(err, "record %d", i))
		}
		paidAt, _, err := r.date(paymentPaidAtKeys...)
		if err != nil {
			return nil, core.NewFetchError(core.FetchPayload, payment.Resource, errors.Wrapf(err, "record %d", i))
		}
		amount, _ := r.number(paymentAmountKeys...)

		payments = append(payments, payment.Payment{
			ID:      r.intOr(i+1, "id", "pk"),
			Referee: r.strOr("", paymentRefereeKeys...),
			Match:   r.strOr("", paymentMatchKeys...),
			Date:    date,
			League:  r.strOr("", paymentLeagueKeys...),
			Amount:  amount,
			Status:  payment.ParseStatus(r.strOr("", paymentStatusKeys...)),
			PaidAt:  paidAt,
			Method:  r.strOr("", paymentMethodKeys...),
		})
	}
	return payments, nil
}
