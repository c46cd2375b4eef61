package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arbitres/console/core/league"
	"github.com/arbitres/console/core/match"
)

func (cli *commandLine) matches(q match.Query) error {
	if _, ok := match.LookupCompetition(q.League); !ok {
		msg := fmt.Sprintf("unknown league %q", q.League)
		if suggestions := league.Suggest(q.League, match.CompetitionNames()); len(suggestions) > 0 {
			msg += ", did you mean: " + strings.Join(suggestions, ", ") + "?"
		}
		return errors.New(msg)
	}
	if err := q.Validate(cli.validate); err != nil {
		return err
	}

	view, err := cli.svcs.Match.List(cli.requestContext(), q)
	if err != nil {
		return err
	}
	if view.UsedFallback {
		renderNotice(cli.out, demoNotice)
	}
	stats := view.Statistics
	fmt.Fprintf(cli.out, "%s: %d match(es), page %d/%d\n", view.Competition.Label, stats.TotalMatches, stats.Page, stats.TotalPages)

	rows := make([][]string, 0, len(view.Matches))
	for _, m := range view.Matches {
		score := "-"
		if m.Score != nil {
			score = fmt.Sprintf("%d - %d", m.Score.Home, m.Score.Away)
		}
		rows = append(rows, []string{
			strconv.Itoa(m.ID), m.Date.String(), m.Time, m.HomeTeam, m.AwayTeam, score,
			m.Referees.Principal, m.Status.Label(), m.Period.Label(),
		})
	}
	renderTable(cli.out, []string{"ID", "Date", "Heure", "Domicile", "Extérieur", "Score", "Arbitre", "Statut", "Période"}, rows)

	statuses := make([]string, 0, len(view.StatusCounts))
	for st, n := range view.StatusCounts {
		statuses = append(statuses, fmt.Sprintf("%s: %d", st, n))
	}
	sort.Strings(statuses)
	fmt.Fprintln(cli.out, strings.Join(statuses, " | "))
	return nil
}
