package bootstrap

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/api"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/apiversion"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/config"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/database"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/domain"
	infragin "github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/gin"
	infralogger "github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/logger"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/metrics"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/router"
)

// OpenAPIPath serves the generated API description.
const OpenAPIPath = "/openapi.json"

// Info is the application metadata shown in the API description.
type Info struct {
	Title       string
	Description string
	Version     string
	Debug       bool
}

// Application is a fully wired, not yet listening, HTTP application.
type Application struct {
	Info     Info
	Registry *apiversion.Registry
	Manifest router.Manifest
	Server   *infragin.Server
	Metrics  *metrics.Metrics
	Sessions database.SessionProvider

	openAPI OpenAPIDocument
}

type options struct {
	now      api.Clock
	sessions database.SessionProvider
}

// Option customizes NewApplication.
type Option func(*options)

// WithClock sets the clock used by the health endpoint.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSessionProvider sets the per-request database session provider.
func WithSessionProvider(p database.SessionProvider) Option {
	return func(o *options) { o.sessions = p }
}

// NewApplication builds the HTTP application from cfg: the version registry,
// the v1 table (plus v2 when enabled), system routes and the gin server.
func NewApplication(cfg *config.Config, log infralogger.Logger, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		log = infralogger.NewNop()
	}

	o := options{now: time.Now, sessions: database.NopProvider{}}
	for _, opt := range opts {
		opt(&o)
	}

	registry, regErr := apiversion.New(cfg.API.V1Prefix, cfg.API.V2Prefix)
	if regErr != nil {
		return nil, fmt.Errorf("version registry: %w", regErr)
	}

	mounts, mountErr := buildMounts(registry, api.NewHandlers(cfg.App.Version, o.now), cfg.API.V2Enabled)
	if mountErr != nil {
		return nil, mountErr
	}

	app := &Application{
		Info: Info{
			Title:       cfg.App.Name,
			Description: cfg.App.Description + "\n\n" + registry.Note(),
			Version:     cfg.App.Version,
			Debug:       cfg.App.Debug,
		},
		Registry: registry,
		Sessions: o.sessions,
	}

	middleware := []gin.HandlerFunc{database.Middleware(o.sessions, log)}
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.New()
		middleware = append([]gin.HandlerFunc{app.Metrics.Middleware()}, middleware...)
	}

	system, sysErr := app.systemRoutes(cfg)
	if sysErr != nil {
		return nil, sysErr
	}

	srvCfg := cfg.HTTPServer()
	server, buildErr := infragin.NewServerBuilder(domain.ServiceName, srvCfg.Port).
		WithLogger(log).
		WithHost(srvCfg.Host).
		WithDebug(srvCfg.Debug).
		WithVersion(srvCfg.ServiceVersion).
		WithCORSOrigins(srvCfg.CORS.AllowedOrigins).
		WithTimeouts(srvCfg.ReadTimeout, srvCfg.WriteTimeout, srvCfg.IdleTimeout, srvCfg.ShutdownTimeout).
		WithMiddleware(middleware...).
		WithRoutes(func(engine *gin.Engine) error {
			manifest, composeErr := router.Compose(engine, mounts, system)
			if composeErr != nil {
				return composeErr
			}
			app.Manifest = manifest
			return nil
		}).
		Build()
	if buildErr != nil {
		return nil, fmt.Errorf("http server: %w", buildErr)
	}

	app.Server = server
	app.openAPI = BuildOpenAPI(app.Info, app.Manifest)

	return app, nil
}

// Handler returns the root HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.Server.Router()
}

// OpenAPI returns the generated API description.
func (a *Application) OpenAPI() OpenAPIDocument {
	return a.openAPI
}

func buildMounts(registry *apiversion.Registry, handlers *api.Handlers, v2Enabled bool) ([]router.Mount, error) {
	v1, v1Err := api.V1Routes(handlers)
	if v1Err != nil {
		return nil, fmt.Errorf("v1 routes: %w", v1Err)
	}

	mounts := []router.Mount{{Descriptor: registry.Current(), Table: v1}}
	if !v2Enabled {
		return mounts, nil
	}

	v2, v2Err := api.V2Routes(v1)
	if v2Err != nil {
		return nil, fmt.Errorf("v2 routes: %w", v2Err)
	}
	return append(mounts, router.Mount{Descriptor: registry.Next(), Table: v2}), nil
}

func (a *Application) systemRoutes(cfg *config.Config) (*router.Table, error) {
	system := router.NewTable("system")

	if a.Metrics != nil {
		if err := system.GET(cfg.Metrics.Path, "metrics", a.Metrics.GinHandler(), "system"); err != nil {
			return nil, fmt.Errorf("metrics route: %w", err)
		}
	}

	openAPI := func(c *gin.Context) { c.JSON(http.StatusOK, a.openAPI) }
	if err := system.GET(OpenAPIPath, "openapi", openAPI, "system"); err != nil {
		return nil, fmt.Errorf("openapi route: %w", err)
	}

	return system, nil
}
