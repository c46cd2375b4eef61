package restapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/match"
)

// match field candidates, in priority order.
var (
	matchHomeKeys       = []string{"home_team", "equipe1", "equipe_domicile"}
	matchAwayKeys       = []string{"away_team", "equipe2", "equipe_exterieur"}
	matchDateKeys       = []string{"match_date", "date", "date_match"}
	matchTimeKeys       = []string{"match_time", "heure", "time"}
	matchStadiumKeys    = []string{"stadium", "stade", "lieu"}
	matchPrincipalKeys  = []string{"referee.full_name", "arbitre_principal", "referee"}
	matchAssistant1Keys = []string{"assistant1.full_name", "assistant_1.full_name", "arbitre_assistant1"}
	matchAssistant2Keys = []string{"assistant2.full_name", "assistant_2.full_name", "arbitre_assistant2"}
	matchFourthKeys     = []string{"fourth_official.full_name", "quatrieme_arbitre"}
	matchStatusKeys     = []string{"status", "statut"}
	matchHomeScoreKeys  = []string{"home_score", "score_domicile"}
	matchAwayScoreKeys  = []string{"away_score", "score_exterieur"}
)

type matchRepository struct {
	client *Client
}

var _ match.Repository = (*matchRepository)(nil)

func NewMatchRepository(client *Client) match.Repository {
	return &matchRepository{client: client}
}

func (repo *matchRepository) QueryMatches(ctx context.Context, c match.Competition, page int) (match.Page, error) {
	resource := match.Resource + "/" + c.Slug

	q := make(url.Values)
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	payload, err := repo.client.get(ctx, resource, "/matches/"+c.Slug+"/", q)
	if err != nil {
		return match.Page{}, err
	}

	list, err := extractList(payload, "matches", "results")
	if err != nil {
		return match.Page{}, core.NewFetchError(core.FetchPayload, resource, err)
	}
	matches := make([]match.Match, 0, len(list))
	for i, item := range list {
		m, err := normalizeMatch(item, i, c.Label)
		if err != nil {
			return match.Page{}, core.NewFetchError(core.FetchPayload, resource, errors.Wrapf(err, "record %d", i))
		}
		matches = append(matches, m)
	}

	stats := match.Statistics{TotalMatches: len(matches), Page: 1, PageSize: len(matches), TotalPages: 1}
	if obj, ok := asRecord(payload); ok {
		if s, ok := obj.lookup("statistics"); ok {
			if sr, ok := asRecord(s); ok {
				stats = match.Statistics{
					TotalMatches: sr.intOr(len(matches), "total_matches"),
					Page:         sr.intOr(1, "page"),
					PageSize:     sr.intOr(len(matches), "page_size"),
					TotalPages:   sr.intOr(1, "total_pages"),
					HasNext:      sr.boolean("has_next"),
					HasPrevious:  sr.boolean("has_previous"),
				}
			}
		}
	}
	return match.Page{Matches: matches, Statistics: stats}, nil
}

func normalizeMatch(item interface{}, index int, league string) (match.Match, error) {
	r, ok := asRecord(item)
	if !ok {
		return match.Match{}, errors.Wrapf(errShape, "record is %T", item)
	}
	date, ok, err := r.date(matchDateKeys...)
	if err != nil {
		return match.Match{}, errors.Wrap(err, "match date")
	}
	if !ok {
		return match.Match{}, errors.New("match date missing")
	}

	m := match.Match{
		ID:       r.intOr(index+1, "id", "pk"),
		League:   r.strOr(league, "league", "ligue"),
		HomeTeam: r.strOr("", matchHomeKeys...),
		AwayTeam: r.strOr("", matchAwayKeys...),
		Date:     date,
		Time:     r.strOr("", matchTimeKeys...),
		Stadium:  r.strOr("", matchStadiumKeys...),
		Referees: match.Referees{
			Principal:  r.strOr(match.DefaultReferee, matchPrincipalKeys...),
			Assistant1: r.strOr(match.DefaultReferee, matchAssistant1Keys...),
			Assistant2: r.strOr(match.DefaultReferee, matchAssistant2Keys...),
			Fourth:     r.strOr(match.DefaultReferee, matchFourthKeys...),
		},
		Status: match.ParseStatus(r.strOr("", matchStatusKeys...)),
	}
	if len(m.Time) > 5 { // "HH:MM:SS"
		m.Time = m.Time[:5]
	}
	home, hasHome := r.number(matchHomeScoreKeys...)
	away, hasAway := r.number(matchAwayScoreKeys...)
	if hasHome && hasAway {
		m.Score = &match.Score{Home: int(home), Away: int(away)}
	}
	return m, nil
}
