package echoapi

import (
	"encoding/csv"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/excuse"
	"github.com/arbitres/console/core/fetch"
	"github.com/arbitres/console/core/period"
	"github.com/arbitres/console/tests"
)

func excusesPath(endpoint string, params map[string]string) string {
	v := make(url.Values)
	for k, val := range params {
		v.Set(k, val)
	}
	return "/v1/excuses" + endpoint + "?" + v.Encode()
}

func excuseIDs(view excuse.View) []int {
	ids := make([]int, 0, len(view.Excuses))
	for _, e := range view.Excuses {
		ids = append(ids, e.ID)
	}
	return ids
}

func Test_excuseApi_view(t *testing.T) {
	item := func(id int, start, end string) map[string]interface{} {
		return map[string]interface{}{
			"id": id, "nom_arbitre": "Selmi", "prenom_arbitre": "Sadok",
			"date_debut": start, "date_fin": end, "ligue": "Ligue 2",
		}
	}
	app := setup(t, map[string]testutil.Route{
		"/matches/excuses/":          {Body: map[string]interface{}{"excuses": []interface{}{item(10, "2024-01-01", "2024-01-02"), item(11, "2024-01-21", "2024-01-23")}}},
		"/matches/excuses/passees/":  {Body: map[string]interface{}{"excuses_passees": []interface{}{item(10, "2024-01-01", "2024-01-02")}}},
		"/matches/excuses/en-cours/": {Status: http.StatusInternalServerError, Body: map[string]string{"detail": "boom"}},
		"/matches/excuses/a-venir/":  {Body: map[string]interface{}{"excuses_a_venir": []interface{}{}}},
	})
	token := getToken(t, app.conf, staff, "acc")

	t.Run("remote bucket", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, excusesPath("", map[string]string{"period": "passees", "date": "2024-01-22"}), token)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var view excuse.View
		unmarshall(t, rec, &view)
		assert.Equal(t, period.Past, view.Period)
		assert.Equal(t, "2024-01-22", view.Date.String())
		assert.Equal(t, []int{10}, excuseIDs(view))
		assert.False(t, view.UsedFallback)
		assert.Equal(t, period.Counts{period.All: 2, period.Past: 1, period.Ongoing: 2, period.Upcoming: 0}, view.Counts)
		assert.True(t, view.FallbackCounts[period.Ongoing])
		assert.Equal(t, "date=2024-01-22", app.backend.LastQuery("/matches/excuses/passees/"))
		assert.Contains(t, app.backend.AuthHeaders(), "Bearer acc")
	})

	t.Run("failing bucket falls back to demonstration data", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, excusesPath("", map[string]string{"period": "en-cours", "date": "2024-01-22"}), token)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var view excuse.View
		unmarshall(t, rec, &view)
		assert.True(t, view.UsedFallback)
		assert.Equal(t, []int{2, 3}, excuseIDs(view))
	})

	t.Run("filters", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, excusesPath("", map[string]string{"search": "SADOK", "league": "Ligue 2", "date": "2024-01-22"}), token)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var view excuse.View
		unmarshall(t, rec, &view)
		assert.Equal(t, []int{10, 11}, excuseIDs(view))
	})
}

func Test_excuseApi_view_errors(t *testing.T) {
	app := setup(t, nil)
	token := getToken(t, app.conf, staff, "acc")

	tests := []httpTest{
		{
			name:     "missing token",
			path:     excusesPath("", nil),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "unknown period",
			path:     excusesPath("", map[string]string{"period": "tomorrow"}),
			token:    token,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"period": "must be one of: all past ongoing upcoming"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("invalid date", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, excusesPath("", map[string]string{"date": "22/01/2024"}), token)
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var fldErrs map[string]string
		unmarshall(t, rec, &fldErrs)
		assert.Contains(t, fldErrs, "date")
	})
	assert.Equal(t, 0, app.backend.Hits("/matches/excuses/"), "no backend read on invalid queries")
}

func Test_excuseApi_counts(t *testing.T) {
	app := setup(t, map[string]testutil.Route{
		"/matches/excuses/": {Body: []interface{}{map[string]interface{}{"date_debut": "2024-01-01", "date_fin": "2024-01-01"}}},
	})

	req, rec := newAuthRequest(http.MethodGet, excusesPath("/counts", map[string]string{"date": "2024-01-22"}), getToken(t, app.conf, staff, "acc"))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CountsResponse
	unmarshall(t, rec, &resp)
	assert.Equal(t, period.Counts{period.All: 1, period.Past: 1, period.Ongoing: 2, period.Upcoming: 4}, resp.Counts)
	assert.Equal(t, map[period.Bucket]bool{period.All: false, period.Past: true, period.Ongoing: true, period.Upcoming: true}, resp.FallbackCounts)
}

func Test_excuseApi_export(t *testing.T) {
	app := setup(t, nil)

	req, rec := newAuthRequest(http.MethodGet, excusesPath("/export", map[string]string{"period": "upcoming", "date": "2024-01-22"}), getToken(t, app.conf, staff, "acc"))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="excuses_upcoming_2024-01-22.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "true", rec.Header().Get(headerUsedFallback))

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 5) // header + 4 upcoming demonstration excuses
}

func Test_excuseApi_notify(t *testing.T) {
	app := setup(t, nil)
	token := getToken(t, app.conf, staff, "acc")

	req, rec := newAuthRequest(http.MethodPost, "/v1/excuses/notify", token, []byte(`{"period": "upcoming", "date": "2024-01-22", "search": "ben"}`))
	app.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusAccepted,
		wantData: marchallObj(t, NotifyResponse{Recipients: 1, Excuses: 3, UsedFallback: true}),
	}, rec)
	require.Len(t, app.mailSvc.Sent, 1)
	assert.Contains(t, app.mailSvc.Sent[0], "Subject: [Arbitres] Excuses des arbitres")
	assert.Contains(t, app.mailSvc.Sent[0], `"Direction" <direction@ftf.tn>`)
	assert.Equal(t, 1, app.logger.Count("WARN: invalid digest recipient"))

}

func Test_excuseApi_notify_noRecipients(t *testing.T) {
	app := setup(t, nil, func(conf *core.Config) { conf.Email.NotifyRecipients = nil })

	req, rec := newAuthRequest(http.MethodPost, "/v1/excuses/notify", getToken(t, app.conf, staff, "acc"), []byte(`{}`))
	app.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, httpErr{Error: excuse.ErrNoRecipients.Error()}),
	}, rec)
	assert.Empty(t, app.mailSvc.Sent)
	assert.Equal(t, 0, app.backend.Hits("/matches/excuses/"))
}

func Test_fetchEvents(t *testing.T) {
	app := setup(t, nil)
	token := getToken(t, app.conf, staff, "acc")

	req, rec := newAuthRequest(http.MethodGet, excusesPath("", map[string]string{"date": "2024-01-22"}), token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newAuthRequest(http.MethodGet, "/v1/fetch-events?resource=excuses&fallback_only=true&limit=3", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var events []fetch.Event
	unmarshall(t, rec, &events)
	require.Len(t, events, 3)
	for _, evt := range events {
		assert.Equal(t, "excuses", evt.Resource)
		assert.True(t, evt.UsedFallback)
		assert.Equal(t, "status", evt.ErrorKind)
		assert.Equal(t, "2024-01-22", evt.RefDate)
	}
}
