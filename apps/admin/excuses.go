package main

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/arbitres/console/core/excuse"
	"github.com/arbitres/console/core/period"
)

const demoNotice = "Backend unavailable: showing demonstration data."

func (cli *commandLine) excuses(q excuse.Query, asCSV bool) error {
	if err := q.Validate(cli.validate); err != nil {
		return err
	}
	view, err := cli.svcs.Excuse.View(cli.requestContext(), q)
	if err != nil {
		return err
	}
	if asCSV {
		return excuse.WriteCSV(cli.out, view.Excuses)
	}

	if view.Degraded() {
		renderNotice(cli.out, demoNotice)
	}
	fmt.Fprintf(cli.out, "%s au %s\n", view.Period.Label(), view.Date)

	rows := make([][]string, 0, len(view.Excuses))
	for _, e := range view.Excuses {
		rows = append(rows, []string{
			strconv.Itoa(e.ID), e.FullName(), e.League, e.StartDate.String(), e.EndDate.String(),
			e.Reason, e.Status.Label(),
		})
	}
	renderTable(cli.out, []string{"ID", "Arbitre", "Ligue", "Début", "Fin", "Motif", "Statut"}, rows)

	counts := make([]string, 0, len(period.Buckets))
	for _, b := range period.Buckets {
		counts = append(counts, fmt.Sprintf("%s: %d", b.Label(), view.Counts[b]))
	}
	fmt.Fprintln(cli.out, strings.Join(counts, " | "))
	return nil
}

func (cli *commandLine) notify(q excuse.Query, to string) error {
	if err := q.Validate(cli.validate); err != nil {
		return err
	}
	var recipients []mail.Address
	if to != "" {
		addrs, err := mail.ParseAddressList(to)
		if err != nil {
			return fmt.Errorf("invalid recipients: %v", err)
		}
		for _, a := range addrs {
			recipients = append(recipients, *a)
		}
	}

	view, err := cli.svcs.Excuse.Notify(cli.requestContext(), q, recipients)
	if err != nil {
		return err
	}
	if view.Degraded() {
		renderNotice(cli.out, demoNotice)
	}
	fmt.Fprintf(cli.out, "Digest of %d excuse(s) sent to %d recipient(s)\n", len(view.Excuses), len(recipients))
	return nil
}
