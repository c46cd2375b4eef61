package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/account"
	"github.com/arbitres/console/core/excuse"
	"github.com/arbitres/console/core/fetch"
	"github.com/arbitres/console/core/league"
	"github.com/arbitres/console/core/match"
	"github.com/arbitres/console/core/payment"
	emailsvc "github.com/arbitres/console/services/email"
	inmemdb "github.com/arbitres/console/storage/database/inmem"
	"github.com/arbitres/console/storage/restapi"
	"github.com/arbitres/console/tests"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}

	staff = account.Admin{ID: 1, Email: "admin@ftf.tn", FullName: "Admin FTF", IsStaff: true}
)

type testApp struct {
	*Server
	conf    *core.Config
	backend *testutil.Backend
	mailSvc *emailsvc.ConsoleServiceMock
	logger  *testutil.Logger
}

func newTestConfig() *core.Config {
	return &core.Config{
		AppName:   "Arbitres",
		SecretKey: "secret",
		TestMode:  true,
		Server: core.ServerConfig{
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
		Email: core.EmailConfig{
			DefaultFromEmail: "noreply@localhost",
			NotifyRecipients: []string{"Direction <direction@ftf.tn>", "not an address"},
		},
	}
}

// setup starts a server in front of a fake backend serving routes. Unknown backend paths answer 404.
func setup(t *testing.T, routes map[string]testutil.Route, configure ...func(*core.Config)) testApp {
	conf := newTestConfig()
	for _, fn := range configure {
		fn(conf)
	}
	logger := new(testutil.Logger)
	backend := testutil.NewBackend(t, routes)

	client := restapi.NewClient(restapi.Config{BaseURL: backend.URL, Timeout: 2 * time.Second})
	recorder := fetch.NewRecorder(inmemdb.NewFetchEventRepository(inmemdb.Open(0)), logger)
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)

	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)

	srv := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		AccountSvc: account.NewService(restapi.NewAccountRepository(client), logger),
		ExcuseSvc:  excuse.NewService(restapi.NewExcuseRepository(client), recorder, mailSvc, logger, conf),
		MatchSvc:   match.NewService(restapi.NewMatchRepository(client), recorder, logger),
		PaymentSvc: payment.NewService(restapi.NewPaymentRepository(client), recorder, logger),
		LeagueSvc:  league.NewService(restapi.NewLeagueRepository(client), nil, recorder, logger),
		Recorder:   recorder,
		Validate:   validate,
		Translator: translator,
	})
	return testApp{Server: srv, conf: conf, backend: backend, mailSvc: mailSvc, logger: logger}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, adm account.Admin, access string, origIat ...int64) string {
	token, err := GenerateToken(GetAdminClaims(adm, access, conf, origIat...), conf)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func unmarshall(t *testing.T, rec *httptest.ResponseRecorder, obj interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), obj); err != nil {
		t.Fatalf("unmarshall(): %v; body %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if _, ok := j1.([]interface{}); !ok {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
