package restapi

import (
	"context"

	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/league"
)

type leagueRepository struct {
	client *Client
}

var _ league.Repository = (*leagueRepository)(nil)

func NewLeagueRepository(client *Client) league.Repository {
	return &leagueRepository{client: client}
}

func (repo *leagueRepository) QueryLeagues(ctx context.Context) ([]league.League, error) {
	payload, err := repo.client.get(ctx, league.Resource, "/accounts/ligues/", nil)
	if err != nil {
		return nil, err
	}
	list, err := extractList(payload, "ligues", "results")
	if err != nil {
		return nil, core.NewFetchError(core.FetchPayload, league.Resource, err)
	}

	leagues := make([]league.League, 0, len(list))
	for i, item := range list {
		r, ok := asRecord(item)
		if !ok {
			return nil, core.NewFetchError(core.FetchPayload, league.Resource, errors.Wrapf(errShape, "record %d is %T", i, item))
		}
		name, ok := r.str("nom", "name")
		if !ok {
			return nil, core.NewFetchError(core.FetchPayload, league.Resource, errors.Errorf("record %d: name missing", i))
		}
		leagues = append(leagues, league.League{ID: r.intOr(i+1, "id", "pk"), Name: name})
	}
	return leagues, nil
}
