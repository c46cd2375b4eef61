package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/arbitres/console/apps/shared"
	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/excuse"
	"github.com/arbitres/console/core/fetch"
	"github.com/arbitres/console/core/match"
	"github.com/arbitres/console/core/payment"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("database disabled: set <ENV>_DATABASE_ENABLED=true")
)

type commandLine struct {
	conf     *core.Config
	svcs     *shared.Services
	validate *validator.Validate
	db       *sql.DB
	out      io.Writer
	token    string // backend access token
}

func newCommandLine(conf *core.Config, svcs *shared.Services, validate *validator.Validate, out io.Writer) *commandLine {
	cli := &commandLine{
		conf:     conf,
		svcs:     svcs,
		validate: validate,
		out:      out,
		token:    conf.Backend.AccessToken,
	}
	if svcs.DB != nil {
		cli.db = svcs.DB.DB
	}
	return cli
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL                                   - log in and print the backend access token")
	fmt.Fprintln(cli.out, "  excuses [-period P] [-date D] [-search S] [-league L] [-csv]")
	fmt.Fprintln(cli.out, "                                                       - list referee excuses with the period counts")
	fmt.Fprintln(cli.out, "  notify [-period P] [-date D] [-search S] [-league L] [-to ADDRS]")
	fmt.Fprintln(cli.out, "                                                       - email the excuses digest")
	fmt.Fprintln(cli.out, "  matches -league L [-status S] [-search S] [-date D] [-page N]")
	fmt.Fprintln(cli.out, "                                                       - list a league's matches")
	fmt.Fprintln(cli.out, "  payments [-referee R] [-league L] [-status S] [-date D]")
	fmt.Fprintln(cli.out, "                                                       - list referee payments with totals")
	fmt.Fprintln(cli.out, "  leagues [-refresh]                                   - list leagues, -refresh drops the cached list first")
	fmt.Fprintln(cli.out, "  fallbacks [-resource R] [-limit N] [-all]            - list backend reads served from demonstration data")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                               - run fetch audit migrations (goose commands)")
}

// requestContext carries the backend access token.
func (cli *commandLine) requestContext() context.Context {
	return core.WithAccessToken(context.Background(), cli.token)
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "The admin's email. The password will be prompted next.")

	excusesCmd := flag.NewFlagSet("excuses", flag.ExitOnError)
	var excuseQuery excuse.Query
	excuseFlags(excusesCmd, &excuseQuery)
	excusesCSV := excusesCmd.Bool("csv", false, "Write the list as CSV.")

	notifyCmd := flag.NewFlagSet("notify", flag.ExitOnError)
	var notifyQuery excuse.Query
	excuseFlags(notifyCmd, &notifyQuery)
	notifyTo := notifyCmd.String("to", strings.Join(cli.conf.Email.NotifyRecipients, ", "), "Comma separated recipients.")

	matchesCmd := flag.NewFlagSet("matches", flag.ExitOnError)
	var matchQuery match.Query
	matchesCmd.StringVar(&matchQuery.League, "league", "", "League slug or name (ligue1, ligue2, c1, c2, jeunes, coupe-tunisie).")
	matchesCmd.StringVar(&matchQuery.Status, "status", "", "Match status: scheduled, in_progress, completed or cancelled.")
	matchesCmd.StringVar(&matchQuery.Search, "search", "", "Team, stadium or referee name.")
	matchesCmd.StringVar(&matchQuery.Date, "date", "", "Reference date (YYYY-MM-DD). Defaults to today.")
	matchesCmd.IntVar(&matchQuery.Page, "page", 1, "Backend page.")

	paymentsCmd := flag.NewFlagSet("payments", flag.ExitOnError)
	var paymentQuery payment.Query
	paymentsCmd.StringVar(&paymentQuery.Referee, "referee", "", "Referee name.")
	paymentsCmd.StringVar(&paymentQuery.League, "league", "", "League name.")
	paymentsCmd.StringVar(&paymentQuery.Status, "status", "", "Payment status: paid or pending.")
	paymentsCmd.StringVar(&paymentQuery.Date, "date", "", "Reference date (YYYY-MM-DD). Defaults to today.")

	leaguesCmd := flag.NewFlagSet("leagues", flag.ExitOnError)
	leaguesRefresh := leaguesCmd.Bool("refresh", false, "Drop the cached league list and read the backend.")

	fallbacksCmd := flag.NewFlagSet("fallbacks", flag.ExitOnError)
	var eventFilter fetch.EventFilter
	fallbacksCmd.StringVar(&eventFilter.Resource, "resource", "", "Resource (excuses, matches, payments, leagues).")
	fallbacksCmd.IntVar(&eventFilter.Limit, "limit", fetch.DefaultEventLimit, "Maximum number of events.")
	fallbacksAll := fallbacksCmd.Bool("all", false, "Include reads answered by the backend.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginEmail, string(pwd))
	case "excuses":
		if err := excusesCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.excuses(excuseQuery, *excusesCSV)
	case "notify":
		if err := notifyCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.notify(notifyQuery, *notifyTo)
	case "matches":
		if err := matchesCmd.Parse(args[2:]); err != nil {
			return err
		}
		if matchQuery.League == "" {
			matchesCmd.Usage()
			return errHelp
		}
		return cli.matches(matchQuery)
	case "payments":
		if err := paymentsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.payments(paymentQuery)
	case "leagues":
		if err := leaguesCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.leagues(*leaguesRefresh)
	case "fallbacks":
		if err := fallbacksCmd.Parse(args[2:]); err != nil {
			return err
		}
		eventFilter.FallbackOnly = !*fallbacksAll
		return cli.fallbacks(eventFilter)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func excuseFlags(cmd *flag.FlagSet, q *excuse.Query) {
	cmd.StringVar(&q.Period, "period", "", "Period: all, past, ongoing or upcoming.")
	cmd.StringVar(&q.Date, "date", "", "Reference date (YYYY-MM-DD). Defaults to today.")
	cmd.StringVar(&q.Search, "search", "", "Referee first or last name.")
	cmd.StringVar(&q.League, "league", "", "League name.")
}
