package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
	"github.com/arbitres/console/core/account"
)

var (
	errUnauthorized       = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errBadCredentials     = echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
	errRefreshExpired     = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errNotAdmin           = echo.NewHTTPError(http.StatusForbidden, "access reserved to administrators")
	errBackendSession     = echo.NewHTTPError(http.StatusUnauthorized, "backend session expired")
	errBackendUnavailable = echo.NewHTTPError(http.StatusBadGateway, "backend unavailable")
)

// consoleErrorHandler turns handler errors into JSON responses for the console.
// A core shutdown error stops the server through signalShutdown.
type consoleErrorHandler struct {
	logger         core.Logger
	translator     ut.Translator
	signalShutdown func()
}

func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	h := &consoleErrorHandler{logger: logger, translator: translator, signalShutdown: signalShutdown}
	return h.handle
}

func (h *consoleErrorHandler) handle(err error, ctx echo.Context) {
	code, body := h.respond(err, ctx)
	if ctx.Echo().Debug {
		body = err.Error()
	}
	if m, ok := body.(string); ok {
		body = echo.Map{"error": m}
	}

	if ctx.Response().Committed {
		return
	}
	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(code)
	} else {
		err = ctx.JSON(code, body)
	}
	if err != nil {
		ctx.Echo().Logger.Error(err)
	}
}

// respond picks the status and body for err.
func (h *consoleErrorHandler) respond(err error, ctx echo.Context) (int, interface{}) {
	if herr := adminGateError(errors.Cause(err)); herr != nil {
		return herr.Code, herr.Message
	}

	switch cause := errors.Cause(err).(type) {
	case *echo.HTTPError:
		return unwrapHTTPError(cause)
	case validator.ValidationErrors:
		fields := make(map[string]string, len(cause))
		for _, fe := range cause {
			fields[fe.Field()] = fe.Translate(h.translator)
		}
		return http.StatusBadRequest, fields
	case *core.ValidationError:
		return http.StatusBadRequest, validationBody(cause)
	case *core.FetchError:
		h.logger.Warn("backend error: "+cause.Error(), err, contextAdmin(ctx))
		herr := backendError(cause)
		return herr.Code, herr.Message
	}

	msg := http.StatusText(http.StatusInternalServerError)
	h.logger.Error(msg, errors.Wrap(err, msg), contextAdmin(ctx))
	if core.IsShutdown(err) {
		h.signalShutdown()
	}
	return http.StatusInternalServerError, msg
}

// adminGateError maps login and admin check failures, or returns nil.
func adminGateError(cause error) *echo.HTTPError {
	switch cause {
	case account.ErrInvalidCredentials:
		return errBadCredentials
	case account.ErrNotAdmin:
		return errNotAdmin
	}
	return nil
}

// backendError reports a rejected backend token as an expired session.
// Anything else the backend does wrong is a bad gateway.
func backendError(fe *core.FetchError) *echo.HTTPError {
	if fe.Kind == core.FetchStatus && (fe.Status == http.StatusUnauthorized || fe.Status == http.StatusForbidden) {
		return errBackendSession
	}
	return errBackendUnavailable
}

func unwrapHTTPError(herr *echo.HTTPError) (int, interface{}) {
	// the jwt middleware answers 400 when the console token is missing
	if herr == middleware.ErrJWTMissing {
		return http.StatusUnauthorized, herr.Message
	}
	if inner, ok := herr.Internal.(*echo.HTTPError); ok {
		herr = inner
	}
	return herr.Code, herr.Message
}

// validationBody lists field messages, or the bare message for query-level errors.
func validationBody(verr *core.ValidationError) interface{} {
	if verr.Fields == nil {
		return verr.Error()
	}
	fields := make(map[string]string, len(verr.Fields))
	for _, fe := range verr.Fields {
		fields[fe.Field] = fe.Error
	}
	return fields
}
