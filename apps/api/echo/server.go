package echoapi

import (
	"context"
	"net/http"
	"net/mail"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/account"
	"github.com/arbitres/console/core/excuse"
	"github.com/arbitres/console/core/fetch"
	"github.com/arbitres/console/core/league"
	"github.com/arbitres/console/core/match"
	"github.com/arbitres/console/core/payment"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		AccountSvc *account.Service
		ExcuseSvc  *excuse.Service
		MatchSvc   *match.Service
		PaymentSvc *payment.Service
		LeagueSvc  *league.Service
		Recorder   *fetch.Recorder
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server struct {
		conf     *core.Config
		logger   core.Logger
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		conf:     deps.Conf,
		logger:   deps.Logger,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup(deps)
	return s
}

func (s *Server) setup(deps ServerDeps) {
	s.app.HideBanner = true
	s.app.Debug = s.conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !s.conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.conf.Debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.conf.Server.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.logger, deps.Translator, s.signalShutdown)

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(s.conf))
	admin := adminMiddleware()

	registerAuthAPI(v1, jwt, admin, deps.AccountSvc, deps.Validate, s.conf)
	registerExcuseAPI(v1.Group("/excuses", jwt, admin), deps.ExcuseSvc, deps.Validate, recipients(s.conf, s.logger))
	registerMatchAPI(v1.Group("/matches", jwt, admin), deps.MatchSvc, deps.Validate)
	registerPaymentAPI(v1.Group("/payments", jwt, admin), deps.PaymentSvc, deps.Validate)
	registerLeagueAPI(v1.Group("/leagues", jwt, admin), deps.LeagueSvc)
	registerFetchEventAPI(v1.Group("/fetch-events", jwt, admin), deps.Recorder)
}

// recipients parses the configured digest recipients, skipping invalid ones.
func recipients(conf *core.Config, logger core.Logger) []mail.Address {
	addrs := make([]mail.Address, 0, len(conf.Email.NotifyRecipients))
	for _, r := range conf.Email.NotifyRecipients {
		addr, err := mail.ParseAddress(r)
		if err != nil {
			logger.Warn("invalid digest recipient: "+r, err)
			continue
		}
		addrs = append(addrs, *addr)
	}
	return addrs
}

func (s *Server) Start() {
	if err := s.app.Start(s.conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

// Shutdown gracefully shuts down the server without interrupting any active connections.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// Close immediately stops the server.
func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.conf.AppName+" API!")
}
