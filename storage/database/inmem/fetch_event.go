package inmemdb

import (
	"context"
	"strings"

	"github.com/arbitres/console/core/fetch"
)

type fetchEventRepository struct {
	db *eventTable
}

func NewFetchEventRepository(db *DB) fetch.Repository {
	return &fetchEventRepository{db: db.events}
}

func (repo *fetchEventRepository) AddEvent(_ context.Context, evt fetch.Event) (fetch.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pk++
	evt.ID = repo.db.pk
	repo.db.table = append(repo.db.table, evt)
	if over := len(repo.db.table) - repo.db.max; over > 0 {
		repo.db.table = append(repo.db.table[:0:0], repo.db.table[over:]...)
	}
	return evt, nil
}

// QueryEvents returns matching events, newest first.
func (repo *fetchEventRepository) QueryEvents(_ context.Context, filter fetch.EventFilter) ([]fetch.Event, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	events := make([]fetch.Event, 0)
	for i := len(repo.db.table) - 1; i >= 0 && len(events) < filter.Limit; i-- {
		evt := repo.db.table[i]
		if filter.Resource != "" && evt.Resource != filter.Resource && !strings.HasPrefix(evt.Resource, filter.Resource+"/") {
			continue
		}
		if filter.FallbackOnly && !evt.UsedFallback {
			continue
		}
		events = append(events, evt)
	}
	return events, nil
}
