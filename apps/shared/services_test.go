package shared

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/excuse"
	"github.com/arbitres/console/core/fetch"
	"github.com/arbitres/console/tests"
)

func TestNewServices(t *testing.T) {
	conf := &core.Config{
		AppName: "Arbitres",
		Backend: core.BackendConfig{OverrideBaseURL: testutil.Unreachable(t), Timeout: time.Second},
		Redis:   core.RedisConfig{URL: "http://not-redis"},
	}
	logger := new(testutil.Logger)

	svcs, err := NewServices(conf, logger, nil)
	require.NoError(t, err)
	defer func() { _ = svcs.Close() }()

	assert.Nil(t, svcs.DB)
	assert.Equal(t, 1, logger.Count("WARN: league cache disabled"))

	view, err := svcs.Excuse.View(context.Background(), excuse.Query{Date: "2024-01-22"})
	require.NoError(t, err)
	assert.True(t, view.UsedFallback)
	assert.Len(t, view.Excuses, len(excuse.Demo()))

	leagues := svcs.League.List(context.Background())
	assert.True(t, leagues.UsedFallback)

	events, err := svcs.Recorder.Query(context.Background(), fetch.EventFilter{FallbackOnly: true})
	require.NoError(t, err)
	assert.Len(t, events, 6) // one selected bucket, four counts, leagues
}

func TestNewValidator(t *testing.T) {
	validate, _ := NewValidator()
	assert.Error(t, excuse.Query{Date: "2024/01/22"}.Validate(validate))
	assert.NoError(t, excuse.Query{Date: "2024-01-22"}.Validate(validate))
}
