package cachesvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/league"
)

const leaguesKey = "arbitres:leagues:all"

// LeagueCache keeps the league list in redis for conf.Redis.LeagueTTL.
type LeagueCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ league.Cache = (*LeagueCache)(nil)

// NewLeagueCache connects to conf.Redis.URL. It returns nil without error when no URL is configured.
func NewLeagueCache(conf *core.Config) (*LeagueCache, error) {
	if conf.Redis.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(conf.Redis.URL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing redis url")
	}
	return &LeagueCache{client: redis.NewClient(opts), ttl: conf.Redis.LeagueTTL}, nil
}

// Ping checks the connection.
func (c *LeagueCache) Ping(ctx context.Context) error {
	return errors.Wrap(c.client.Ping(ctx).Err(), "pinging redis")
}

func (c *LeagueCache) GetLeagues(ctx context.Context) ([]league.League, bool, error) {
	data, err := c.client.Get(ctx, leaguesKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "getting leagues")
	}
	leagues, err := decodeLeagues(data)
	if err != nil {
		return nil, false, err
	}
	return leagues, true, nil
}

func (c *LeagueCache) SetLeagues(ctx context.Context, leagues []league.League) error {
	data, err := json.Marshal(leagues)
	if err != nil {
		return errors.Wrap(err, "marshaling leagues")
	}
	return errors.Wrap(c.client.Set(ctx, leaguesKey, data, c.ttl).Err(), "setting leagues")
}

// Invalidate drops the cached list.
func (c *LeagueCache) Invalidate(ctx context.Context) error {
	return errors.Wrap(c.client.Del(ctx, leaguesKey).Err(), "deleting leagues")
}

func (c *LeagueCache) Close() error {
	return c.client.Close()
}

func decodeLeagues(data []byte) ([]league.League, error) {
	leagues := make([]league.League, 0)
	if err := json.Unmarshal(data, &leagues); err != nil {
		return nil, errors.Wrap(err, "unmarshaling leagues")
	}
	return leagues, nil
}
