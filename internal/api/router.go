package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/notesapp/notes-manager/docs"
	"github.com/notesapp/notes-manager/internal/api/handler"
	"github.com/notesapp/notes-manager/internal/api/middleware"
	"github.com/notesapp/notes-manager/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs. Services are built by the
// caller so tests can swap in fakes.
type Dependencies struct {
	AuthService ports.AuthService
	NoteService ports.NoteService
	// HealthChecks are pinged by /api/health/ready, keyed by dependency name.
	HealthChecks map[string]handler.Check
	Logger       zerolog.Logger

	// CORSOrigins defaults to "*" when empty.
	CORSOrigins []string
	// StaticDir, when set, serves a single-page app for every non-API path.
	StaticDir string

	// MetricsRegisterer and MetricsGatherer enable /metrics. Leave nil to
	// disable metrics.
	MetricsRegisterer prometheus.Registerer
	MetricsGatherer   prometheus.Gatherer

	EnableSwagger bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	if deps.MetricsRegisterer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "notes",
			Subsystem:  "http",
			Registerer: deps.MetricsRegisterer,
			// SPA deep links would otherwise mint one series per path.
			DoNotUseRequestPathFor404: true,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		gatherer := deps.MetricsGatherer
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: gatherer,
		}))
	}

	if deps.StaticDir != "" {
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Root:  deps.StaticDir,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				p := c.Request().URL.Path
				return strings.HasPrefix(p, "/api") || p == "/metrics" || strings.HasPrefix(p, "/swagger")
			},
		}))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	noteHandler := handler.NewNoteHandler(deps.NoteService)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	requireAuth := middleware.Auth(deps.AuthService)

	api := e.Group("/api")

	// --- Health probes (no auth required) ---
	api.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	api.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- User routes ---
	users := api.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/me", authHandler.Me, requireAuth)

	// --- Note routes (all protected) ---
	notes := api.Group("/notes", requireAuth)
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.GET("/:id", noteHandler.Get)
	notes.PUT("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)

	if deps.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}
