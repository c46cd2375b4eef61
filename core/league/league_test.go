package league

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arbitres/console/tests"
)

type fakeRepo struct {
	leagues []League
	err     error
	calls   int
}

func (r *fakeRepo) QueryLeagues(context.Context) ([]League, error) {
	r.calls++
	return r.leagues, r.err
}

type memCache struct {
	leagues []League
	sets    int
	drops   int
}

func (c *memCache) GetLeagues(context.Context) ([]League, bool, error) {
	return c.leagues, c.leagues != nil, nil
}

func (c *memCache) SetLeagues(_ context.Context, leagues []League) error {
	c.leagues = leagues
	c.sets++
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.leagues = nil
	c.drops++
	return nil
}

func TestService_List(t *testing.T) {
	t.Run("good answer is cached", func(t *testing.T) {
		repo := &fakeRepo{leagues: []League{{ID: 1, Name: "Ligue 1"}}}
		cache := new(memCache)
		svc := NewService(repo, cache, nil, new(testutil.Logger))

		first := svc.List(context.Background())
		second := svc.List(context.Background())

		assert.False(t, first.UsedFallback)
		assert.Equal(t, first.Records, second.Records)
		assert.Equal(t, 1, repo.calls)
		assert.Equal(t, 1, cache.sets)
	})

	t.Run("fallback is not cached", func(t *testing.T) {
		repo := &fakeRepo{err: errors.New("down")}
		cache := new(memCache)
		svc := NewService(repo, cache, nil, new(testutil.Logger))

		res := svc.List(context.Background())
		assert.True(t, res.UsedFallback)
		assert.Equal(t, Demo(), res.Records)
		assert.Equal(t, 0, cache.sets)
	})

	t.Run("no cache", func(t *testing.T) {
		svc := NewService(&fakeRepo{leagues: []League{}}, nil, nil, new(testutil.Logger))
		res := svc.List(context.Background())
		assert.False(t, res.UsedFallback)
		assert.Empty(t, res.Records)
	})
}

func TestService_Refresh(t *testing.T) {
	repo := &fakeRepo{leagues: []League{{ID: 1, Name: "Ligue 1"}}}
	cache := &memCache{leagues: []League{{ID: 9, Name: "Stale"}}}
	svc := NewService(repo, cache, nil, new(testutil.Logger))

	assert.Equal(t, "Stale", svc.List(context.Background()).Records[0].Name)
	assert.Equal(t, 0, repo.calls)

	res := svc.Refresh(context.Background())
	assert.False(t, res.UsedFallback)
	assert.Equal(t, []League{{ID: 1, Name: "Ligue 1"}}, res.Records)
	assert.Equal(t, 1, cache.drops)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, repo.leagues, cache.leagues)

	t.Run("no cache", func(t *testing.T) {
		svc := NewService(&fakeRepo{leagues: []League{}}, nil, nil, new(testutil.Logger))
		assert.False(t, svc.Refresh(context.Background()).UsedFallback)
	})
}

func TestSuggest(t *testing.T) {
	names := Names(Demo())

	tests := []struct {
		in   string
		want string
	}{
		{in: "ligue1", want: "Ligue 1"},
		{in: "Coupe Tunisie", want: "Coupe de Tunisie"},
		{in: "jeune", want: "Jeunes"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Suggest(tt.in, names)
			if assert.NotEmpty(t, got) {
				assert.Equal(t, tt.want, got[0])
			}
		})
	}
	assert.Empty(t, Suggest("basketball", names))
}
