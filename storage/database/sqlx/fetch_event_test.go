package sqlxrepos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arbitres/console/core/fetch"
)

func TestEventQuery(t *testing.T) {
	const base = "SELECT " + eventColumns + " FROM fetch_event"

	tests := []struct {
		name     string
		filter   fetch.EventFilter
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "no filter",
			filter:   fetch.EventFilter{Limit: 50},
			wantSQL:  base + " ORDER BY at DESC, id DESC LIMIT $1",
			wantArgs: []interface{}{50},
		},
		{
			name:     "resource",
			filter:   fetch.EventFilter{Resource: "matches", Limit: 10},
			wantSQL:  base + " WHERE (resource = $1 OR resource LIKE $2) ORDER BY at DESC, id DESC LIMIT $3",
			wantArgs: []interface{}{"matches", "matches/%", 10},
		},
		{
			name:     "fallback only",
			filter:   fetch.EventFilter{Resource: "excuses", FallbackOnly: true, Limit: 5},
			wantSQL:  base + " WHERE (resource = $1 OR resource LIKE $2) AND used_fallback ORDER BY at DESC, id DESC LIMIT $3",
			wantArgs: []interface{}{"excuses", "excuses/%", 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := eventQuery(tt.filter)
			assert.Equal(t, tt.wantSQL, q)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
