package restapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/excuse"
	"github.com/arbitres/console/core/period"
	"github.com/arbitres/console/tests"
)

var ref = core.NewDate(2024, time.February, 16)

func newTestClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, Timeout: 2 * time.Second})
}

func TestExcuseRepository_payloadShapes(t *testing.T) {
	item := map[string]interface{}{
		"id": 9, "nom_arbitre": "Khelil", "prenom_arbitre": "Fatma",
		"date_debut": "2024-02-10", "date_fin": "2024-02-20",
	}

	tests := []struct {
		name    string
		bucket  period.Bucket
		path    string
		body    interface{}
		wantLen int
		wantErr core.FetchErrorKind
	}{
		{name: "all: excuses key", bucket: period.All, path: "/matches/excuses/", body: map[string]interface{}{"excuses": []interface{}{item}}, wantLen: 1},
		{name: "all: results key", bucket: period.All, path: "/matches/excuses/", body: map[string]interface{}{"results": []interface{}{item, item}}, wantLen: 2},
		{name: "all: bare array", bucket: period.All, path: "/matches/excuses/", body: []interface{}{item}, wantLen: 1},
		{name: "past key", bucket: period.Past, path: "/matches/excuses/passees/", body: map[string]interface{}{"excuses_passees": []interface{}{item}}, wantLen: 1},
		{name: "ongoing key", bucket: period.Ongoing, path: "/matches/excuses/en-cours/", body: map[string]interface{}{"excuses_en_cours": []interface{}{}}, wantLen: 0},
		{name: "upcoming key", bucket: period.Upcoming, path: "/matches/excuses/a-venir/", body: map[string]interface{}{"excuses_a_venir": []interface{}{item}}, wantLen: 1},
		{name: "wrong bucket key", bucket: period.Past, path: "/matches/excuses/passees/", body: map[string]interface{}{"excuses_a_venir": []interface{}{item}}, wantErr: core.FetchPayload},
		{name: "scalar payload", bucket: period.All, path: "/matches/excuses/", body: `"nope"`, wantErr: core.FetchPayload},
		{name: "invalid json", bucket: period.All, path: "/matches/excuses/", body: `{"excuses": [`, wantErr: core.FetchPayload},
		{name: "record is not an object", bucket: period.All, path: "/matches/excuses/", body: []interface{}{42}, wantErr: core.FetchPayload},
		{name: "unparseable date", bucket: period.All, path: "/matches/excuses/", body: []interface{}{map[string]interface{}{"date_debut": "15/01/2024"}}, wantErr: core.FetchPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutil.NewBackend(t, map[string]testutil.Route{tt.path: {Body: tt.body}})
			repo := NewExcuseRepository(newTestClient(backend.URL))

			got, err := repo.QueryExcuses(context.Background(), tt.bucket, ref)
			if tt.wantErr != "" {
				fErr, ok := core.AsFetchError(err)
				require.True(t, ok, "want *core.FetchError, got %v", err)
				assert.Equal(t, tt.wantErr, fErr.Kind)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, "date=2024-02-16", backend.LastQuery(tt.path))
		})
	}
}

func TestExcuseRepository_fieldDefaults(t *testing.T) {
	backend := testutil.NewBackend(t, map[string]testutil.Route{
		"/api/matches/excuses/": {Body: map[string]interface{}{"excuses": []interface{}{
			map[string]interface{}{},
			map[string]interface{}{
				"id": 3, "full_name": "Salah Ben Youssef",
				"start_date": "2024-02-15T08:00:00Z", "period_end": "2024-02-20",
				"motif": "Urgence familiale", "justificatif": "/media/justif.pdf",
				"etat": "accepte", "date_soumission": "2024-01-24",
				"type_match": map[string]interface{}{"nom": "C2"},
			},
			map[string]interface{}{
				"nom_arbitre": "Trabelsi", "prenom_arbitre": "Mohamed", "nom_complet": "Ignored Name",
				"cause": "Problème de transport", "statut": "refuse", "ligue": "C1",
				"piece_jointe": "https://cdn.example.com/a.pdf",
			},
			map[string]interface{}{"nom_complet": "Nadia"},
		}}},
	})
	repo := NewExcuseRepository(newTestClient(backend.URL + "/api"))

	got, err := repo.QueryExcuses(context.Background(), period.All, ref)
	require.NoError(t, err)
	require.Len(t, got, 4)

	empty := got[0]
	assert.Equal(t, 1, empty.ID)
	assert.Equal(t, excuse.DefaultName, empty.FirstName)
	assert.Equal(t, excuse.DefaultName, empty.LastName)
	assert.Equal(t, excuse.DefaultDate, empty.StartDate)
	assert.Equal(t, excuse.DefaultDate, empty.EndDate)
	assert.Equal(t, excuse.DefaultReason, empty.Reason)
	assert.Equal(t, excuse.DefaultLeague, empty.League)
	assert.Equal(t, excuse.Pending, empty.Status)
	assert.Empty(t, empty.Attachment)
	assert.False(t, empty.CreatedAt.IsZero())

	alt := got[1]
	assert.Equal(t, 3, alt.ID)
	assert.Equal(t, "Salah", alt.FirstName)
	assert.Equal(t, "Ben Youssef", alt.LastName)
	assert.Equal(t, core.NewDate(2024, time.February, 15), alt.StartDate)
	assert.Equal(t, core.NewDate(2024, time.February, 20), alt.EndDate)
	assert.Equal(t, "Urgence familiale", alt.Reason)
	assert.Equal(t, backend.URL+"/media/justif.pdf", alt.Attachment)
	assert.Equal(t, excuse.Accepted, alt.Status)
	assert.Equal(t, core.NewDate(2024, time.January, 24), alt.CreatedAt)
	assert.Equal(t, "C2", alt.League)

	primary := got[2]
	assert.Equal(t, "Mohamed", primary.FirstName)
	assert.Equal(t, "Trabelsi", primary.LastName)
	assert.Equal(t, excuse.Rejected, primary.Status)
	assert.Equal(t, "C1", primary.League)
	assert.Equal(t, "https://cdn.example.com/a.pdf", primary.Attachment)

	single := got[3]
	assert.Equal(t, "Nadia", single.FirstName)
	assert.Equal(t, excuse.DefaultName, single.LastName)
}

func TestExcuseRepository_failures(t *testing.T) {
	t.Run("status error keeps detail", func(t *testing.T) {
		backend := testutil.NewBackend(t, map[string]testutil.Route{
			"/matches/excuses/": {Status: http.StatusInternalServerError, Body: map[string]string{"detail": "boom"}},
		})
		repo := NewExcuseRepository(newTestClient(backend.URL))

		_, err := repo.QueryExcuses(context.Background(), period.All, ref)
		fErr, ok := core.AsFetchError(err)
		require.True(t, ok)
		assert.Equal(t, core.FetchStatus, fErr.Kind)
		assert.Equal(t, http.StatusInternalServerError, fErr.Status)

		apiErr, ok := AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "boom", apiErr.Detail)
	})

	t.Run("transport error", func(t *testing.T) {
		repo := NewExcuseRepository(newTestClient(testutil.Unreachable(t)))

		_, err := repo.QueryExcuses(context.Background(), period.Upcoming, ref)
		fErr, ok := core.AsFetchError(err)
		require.True(t, ok)
		assert.Equal(t, core.FetchTransport, fErr.Kind)
	})

	t.Run("bearer token forwarded", func(t *testing.T) {
		backend := testutil.NewBackend(t, map[string]testutil.Route{"/matches/excuses/": {Body: []interface{}{}}})
		repo := NewExcuseRepository(newTestClient(backend.URL))

		ctx := core.WithAccessToken(context.Background(), "tok")
		_, err := repo.QueryExcuses(ctx, period.All, ref)
		require.NoError(t, err)
		assert.Equal(t, []string{"Bearer tok"}, backend.AuthHeaders())
	})
}

func TestClient_MediaURL(t *testing.T) {
	c := newTestClient("https://federation-backend.onrender.com/api/")

	tests := []struct {
		in, want string
	}{
		{in: "", want: ""},
		{in: "/media/a.pdf", want: "https://federation-backend.onrender.com/media/a.pdf"},
		{in: "media/a.pdf", want: "https://federation-backend.onrender.com/media/a.pdf"},
		{in: "http://other/a.pdf", want: "http://other/a.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, c.MediaURL(tt.in))
		})
	}
}
