package shared

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/account"
	"github.com/arbitres/console/core/excuse"
	"github.com/arbitres/console/core/fetch"
	"github.com/arbitres/console/core/league"
	"github.com/arbitres/console/core/match"
	"github.com/arbitres/console/core/payment"
	cachesvc "github.com/arbitres/console/services/cache"
	"github.com/arbitres/console/storage/database"
	inmemdb "github.com/arbitres/console/storage/database/inmem"
	sqlxrepos "github.com/arbitres/console/storage/database/sqlx"
	"github.com/arbitres/console/storage/restapi"
)

// Services holds every domain service, wired to the REST backend and the fetch audit store.
type Services struct {
	DB       *sqlx.DB // nil unless the database is enabled
	Client   *restapi.Client
	Recorder *fetch.Recorder

	Account *account.Service
	Excuse  *excuse.Service
	Match   *match.Service
	Payment *payment.Service
	League  *league.Service

	cache *cachesvc.LeagueCache
}

// NewServices wires the services from conf. The fetch audit goes to Postgres when
// conf.Database.Enabled, else to memory. Leagues are cached in redis when conf.Redis.URL is set
// and reachable.
func NewServices(conf *core.Config, logger core.Logger, mailSvc core.EmailService) (*Services, error) {
	svcs := &Services{Client: restapi.NewClient(restapi.ConfigFrom(conf))}

	var events fetch.Repository
	if conf.Database.Enabled {
		db, err := setUpDB(conf)
		if err != nil {
			return nil, errors.Wrap(err, "setting up database")
		}
		svcs.DB = db
		events = sqlxrepos.NewFetchEventRepository(db)
	} else {
		events = inmemdb.NewFetchEventRepository(inmemdb.Open(inmemdb.DefaultCapacity))
	}
	svcs.Recorder = fetch.NewRecorder(events, logger)

	var cache league.Cache
	lc, err := cachesvc.NewLeagueCache(conf)
	if err != nil {
		logger.Warn(fmt.Sprintf("league cache disabled: %v", err), err)
	} else if lc != nil {
		if err = lc.Ping(context.Background()); err != nil {
			logger.Warn(fmt.Sprintf("league cache disabled: %v", err), err)
			_ = lc.Close()
		} else {
			svcs.cache = lc
			cache = lc
		}
	}

	svcs.Account = account.NewService(restapi.NewAccountRepository(svcs.Client), logger)
	svcs.Excuse = excuse.NewService(restapi.NewExcuseRepository(svcs.Client), svcs.Recorder, mailSvc, logger, conf)
	svcs.Match = match.NewService(restapi.NewMatchRepository(svcs.Client), svcs.Recorder, logger)
	svcs.Payment = payment.NewService(restapi.NewPaymentRepository(svcs.Client), svcs.Recorder, logger)
	svcs.League = league.NewService(restapi.NewLeagueRepository(svcs.Client), cache, svcs.Recorder, logger)
	return svcs, nil
}

// Close releases the database and cache connections.
func (svcs *Services) Close() error {
	var err error
	if svcs.cache != nil {
		err = svcs.cache.Close()
	}
	if svcs.DB != nil {
		if dbErr := svcs.DB.Close(); dbErr != nil {
			err = dbErr
		}
	}
	return err
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
