package main

import (
	"fmt"
	"strconv"

	"github.com/arbitres/console/core/fetch"
	"github.com/arbitres/console/core/league"
	"github.com/arbitres/console/core/payment"
)

func (cli *commandLine) payments(q payment.Query) error {
	if err := q.Validate(cli.validate); err != nil {
		return err
	}
	view, err := cli.svcs.Payment.List(cli.requestContext(), q)
	if err != nil {
		return err
	}
	if view.UsedFallback {
		renderNotice(cli.out, demoNotice)
	}

	rows := make([][]string, 0, len(view.Payments))
	for _, p := range view.Payments {
		rows = append(rows, []string{
			strconv.Itoa(p.ID), p.Referee, p.Match, p.Date.String(), p.League,
			fmt.Sprintf("%.2f", p.Amount), p.Status.Label(), dateCell(p.PaidAt), p.Method,
		})
	}
	renderTable(cli.out, []string{"ID", "Arbitre", "Match", "Date", "Ligue", "Montant", "Statut", "Payé le", "Mode"}, rows)

	t := view.Totals
	fmt.Fprintf(cli.out, "Total: %.2f %s | Payé: %.2f %s | En attente: %.2f %s\n",
		t.Total, view.Currency, t.Paid, view.Currency, t.Pending, view.Currency)
	return nil
}

func (cli *commandLine) leagues(refresh bool) error {
	var res fetch.Result[league.League]
	if refresh {
		res = cli.svcs.League.Refresh(cli.requestContext())
	} else {
		res = cli.svcs.League.List(cli.requestContext())
	}
	if res.UsedFallback {
		renderNotice(cli.out, demoNotice)
	}

	rows := make([][]string, 0, len(res.Records))
	for _, l := range res.Records {
		rows = append(rows, []string{strconv.Itoa(l.ID), l.Name})
	}
	renderTable(cli.out, []string{"ID", "Nom"}, rows)
	fmt.Fprintf(cli.out, "%d league(s): %v\n", len(res.Records), league.Names(res.Records))
	return nil
}
