package restapi

import (
	"context"
	"net/url"

	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/excuse"
	"github.com/arbitres/console/core/period"
)

// excuse routes and payload keys per bucket.
var excuseRoutes = map[period.Bucket]struct {
	path string
	key  string
}{
	period.All:      {"/matches/excuses/", "excuses"},
	period.Past:     {"/matches/excuses/passees/", "excuses_passees"},
	period.Ongoing:  {"/matches/excuses/en-cours/", "excuses_en_cours"},
	period.Upcoming: {"/matches/excuses/a-venir/", "excuses_a_venir"},
}

// excuse field candidates, in priority order.
var (
	excuseLastNameKeys   = []string{"nom_arbitre"}
	excuseFirstNameKeys  = []string{"prenom_arbitre"}
	excuseFullNameKeys   = []string{"nom_complet", "full_name", "arbitre.full_name"}
	excuseStartKeys      = []string{"date_debut", "start_date", "period_start"}
	excuseEndKeys        = []string{"date_fin", "end_date", "period_end"}
	excuseReasonKeys     = []string{"cause", "reason", "motif"}
	excuseAttachmentKeys = []string{"piece_jointe", "attachment", "justificatif"}
	excuseStatusKeys     = []string{"statut", "status", "etat"}
	excuseCreatedKeys    = []string{"created_at", "date_creation", "date_soumission"}
	excuseLeagueKeys     = []string{"ligue", "league", "type_match.nom"}
)

type excuseRepository struct {
	client *Client
}

var _ excuse.Repository = (*excuseRepository)(nil)

func NewExcuseRepository(client *Client) excuse.Repository {
	return &excuseRepository{client: client}
}

func (repo *excuseRepository) QueryExcuses(ctx context.Context, bucket period.Bucket, ref core.Date) ([]excuse.Excuse, error) {
	route, ok := excuseRoutes[bucket]
	if !ok {
		return nil, errors.Errorf("unknown bucket %q", bucket)
	}
	resource := excuse.Resource + "/" + string(bucket)

	q := make(url.Values)
	q.Set("date", ref.String())
	payload, err := repo.client.get(ctx, resource, route.path, q)
	if err != nil {
		return nil, err
	}

	list, err := extractList(payload, route.key, "results")
	if err != nil {
		return nil, core.NewFetchError(core.FetchPayload, resource, err)
	}
	excuses := make([]excuse.Excuse, 0, len(list))
	for i, item := range list {
		e, err := repo.normalize(item, i)
		if err != nil {
			return nil, core.NewFetchError(core.FetchPayload, resource, errors.Wrapf(err, "record %d", i))
		}
		excuses = append(excuses, e)
	}
	return excuses, nil
}

// normalize maps one backend object, applying defaults for missing fields.
func (repo *excuseRepository) normalize(item interface{}, index int) (excuse.Excuse, error) {
	r, ok := asRecord(item)
	if !ok {
		return excuse.Excuse{}, errors.Wrapf(errShape, "record is %T", item)
	}

	e := excuse.Excuse{
		ID:         r.intOr(index+1, "id", "pk"),
		Reason:     r.strOr(excuse.DefaultReason, excuseReasonKeys...),
		Status:     excuse.ParseStatus(r.strOr(string(excuse.DefaultStatus), excuseStatusKeys...)),
		League:     r.strOr(excuse.DefaultLeague, excuseLeagueKeys...),
		Attachment: repo.client.MediaURL(r.strOr("", excuseAttachmentKeys...)),
	}
	e.FirstName, e.LastName = excuseName(r)

	var err error
	if e.StartDate, err = r.dateOr(excuse.DefaultDate, excuseStartKeys...); err != nil {
		return excuse.Excuse{}, errors.Wrap(err, "start date")
	}
	if e.EndDate, err = r.dateOr(excuse.DefaultDate, excuseEndKeys...); err != nil {
		return excuse.Excuse{}, errors.Wrap(err, "end date")
	}
	if e.CreatedAt, err = r.dateOr(core.Today(), excuseCreatedKeys...); err != nil {
		return excuse.Excuse{}, errors.Wrap(err, "creation date")
	}
	return e, nil
}

// excuseName prefers the separate name fields, then splits a full name.
func excuseName(r record) (first, last string) {
	last, hasLast := r.str(excuseLastNameKeys...)
	first, hasFirst := r.str(excuseFirstNameKeys...)
	if !(hasLast && hasFirst) {
		if full, ok := r.str(excuseFullNameKeys...); ok {
			first, last = splitFullName(full)
		}
	}
	if first == "" {
		first = excuse.DefaultName
	}
	if last == "" {
		last = excuse.DefaultName
	}
	return first, last
}
