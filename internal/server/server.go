package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/nfrund/authflow/internal/authapi"
	"github.com/nfrund/authflow/internal/config"
	"github.com/nfrund/authflow/internal/handlers"
	appmiddleware "github.com/nfrund/authflow/internal/middleware"
	"github.com/nfrund/authflow/internal/rendering"
	authsession "github.com/nfrund/authflow/internal/session"
	"github.com/nfrund/authflow/web"
)

// MaxBodySize bounds every request body. The forms are a handful of short
// text fields.
const MaxBodySize = "64K"

// Dependencies are the services the HTTP server is built from.
type Dependencies struct {
	Config   config.Provider
	API      authapi.Service
	Stores   authsession.Factory
	Renderer rendering.Renderer
	// SubmitRate limits POST /login and POST /register per client IP.
	// Zero uses middleware.DefaultSubmitRate.
	SubmitRate rate.Limit
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	stores           authsession.Factory
	submitRate       rate.Limit
	homeHandler      *handlers.HomeHandler
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
}

// New creates a new Server instance with its middleware chain installed.
// Call RegisterRoutes before starting it.
func New(deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	if r, ok := deps.Renderer.(echo.Renderer); ok {
		e.Renderer = r
	}
	setupErrorHandling(e)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: newRequestID,
	}))
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(MaxBodySize))

	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(authsession.CookieMaxAge)
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	submitRate := deps.SubmitRate
	if submitRate == 0 {
		submitRate = appmiddleware.DefaultSubmitRate
	}

	return &Server{
		E:                e,
		Cfg:              deps.Config,
		stores:           deps.Stores,
		submitRate:       submitRate,
		homeHandler:      handlers.NewHomeHandler(deps.Stores, deps.Renderer),
		authHandler:      handlers.NewAuthHandler(deps.API, deps.Stores, deps.Renderer),
		dashboardHandler: handlers.NewDashboardHandler(deps.Renderer),
	}
}

func newRequestID() string { return uuid.NewString() }

// setupErrorHandling logs unhandled errors with a stack trace before handing
// them to echo's default handler. HTTP errors are expected and logged quietly.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		logger := appmiddleware.FromContext(c.Request().Context())
		var he *echo.HTTPError
		if errors.As(err, &he) {
			logger.Debug("HTTP error", "status", he.Code, "error", err)
		} else {
			logger.Error("Internal Server Error (Unhandled)",
				slog.Any("error", err),
				slog.String("stack_trace", string(debug.Stack())),
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
