package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/fetch"
)

// todo: + Masterminds/squirrel

const eventColumns = "id, resource, period, ref_date, used_fallback, error_kind, error, at"

var eventOrdering = []core.DBOrdering{{Field: "at"}, {Field: "id"}}

type fetchEventRepository struct {
	db *sqlx.DB
}

var _ fetch.Repository = (*fetchEventRepository)(nil)

func NewFetchEventRepository(db *sqlx.DB) fetch.Repository {
	return &fetchEventRepository{db: db}
}

func (repo fetchEventRepository) AddEvent(ctx context.Context, evt fetch.Event) (fetch.Event, error) {
	q := `INSERT INTO fetch_event (resource, period, ref_date, used_fallback, error_kind, error, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := repo.db.QueryRowxContext(ctx, q,
		evt.Resource, evt.Period, evt.RefDate, evt.UsedFallback, evt.ErrorKind, evt.Error, evt.At,
	).Scan(&evt.ID)
	if err != nil {
		return fetch.Event{}, errors.Wrap(err, "inserting fetch event")
	}
	return evt, nil
}

func (repo fetchEventRepository) QueryEvents(ctx context.Context, filter fetch.EventFilter) ([]fetch.Event, error) {
	q, args := eventQuery(filter)
	events := make([]fetch.Event, 0)
	if err := repo.db.SelectContext(ctx, &events, q, args...); err != nil {
		if errors.Is(err, sql.ErrConnDone) {
			return nil, core.NewShutdownError("fetch event store: " + err.Error())
		}
		return nil, errors.Wrap(err, "selecting fetch events")
	}
	return events, nil
}

// eventQuery builds the SELECT for filter. filter must be cleaned.
func eventQuery(filter fetch.EventFilter) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Resource != "" {
		args = append(args, filter.Resource)
		where = append(where, "(resource = $"+strconv.Itoa(len(args))+" OR resource LIKE $"+strconv.Itoa(len(args)+1)+")")
		args = append(args, filter.Resource+"/%")
	}
	if filter.FallbackOnly {
		where = append(where, "used_fallback")
	}

	q := new(strings.Builder)
	q.WriteString("SELECT " + eventColumns + " FROM fetch_event")
	if len(where) > 0 {
		q.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	order := make([]string, 0, len(eventOrdering))
	for _, ord := range eventOrdering {
		order = append(order, ord.String())
	}
	q.WriteString(" ORDER BY " + strings.Join(order, ", "))

	args = append(args, filter.Limit)
	q.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	return q.String(), args
}
