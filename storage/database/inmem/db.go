package inmemdb

import (
	"sync"

	"github.com/arbitres/console/core/fetch"
)

type (
	DB struct {
		events *eventTable
	}

	eventTable struct {
		mutex sync.RWMutex
		pk    int
		table []fetch.Event
		max   int
	}
)

// DefaultCapacity bounds the events kept in memory.
const DefaultCapacity = 1000

// Open returns an empty in-memory database keeping at most capacity events (DefaultCapacity if <= 0).
func Open(capacity int) *DB {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &DB{events: &eventTable{max: capacity}}
}
