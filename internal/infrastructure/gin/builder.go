package gin

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/logger"
)

// ErrNoRoutes is returned by Build when no route setup function was provided.
var ErrNoRoutes = errors.New("no routes configured")

// ServerBuilder provides a fluent API for building HTTP servers.
type ServerBuilder struct {
	config      *Config
	logger      logger.Logger
	middleware  []gin.HandlerFunc
	setupRoutes func(*gin.Engine) error
}

// NewServerBuilder creates a new server builder.
func NewServerBuilder(serviceName string, port int) *ServerBuilder {
	return &ServerBuilder{
		config: &Config{
			Port:        port,
			ServiceName: serviceName,
			CORS:        CORSConfig{Enabled: true},
		},
	}
}

// WithLogger sets the logger.
func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.logger = log
	return b
}

// WithHost sets the bind interface.
func (b *ServerBuilder) WithHost(host string) *ServerBuilder {
	b.config.Host = host
	return b
}

// WithDebug enables or disables debug mode.
func (b *ServerBuilder) WithDebug(debug bool) *ServerBuilder {
	b.config.Debug = debug
	return b
}

// WithVersion sets the service version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.config.ServiceVersion = version
	return b
}

// WithCORSOrigins sets allowed CORS origins.
func (b *ServerBuilder) WithCORSOrigins(origins []string) *ServerBuilder {
	b.config.CORS.AllowedOrigins = origins
	return b
}

// WithTimeouts sets read, write, idle and shutdown timeouts. Zero keeps the default.
func (b *ServerBuilder) WithTimeouts(read, write, idle, shutdown time.Duration) *ServerBuilder {
	b.config.ReadTimeout = read
	b.config.WriteTimeout = write
	b.config.IdleTimeout = idle
	b.config.ShutdownTimeout = shutdown
	return b
}

// WithMiddleware appends middleware after the standard chain.
func (b *ServerBuilder) WithMiddleware(mw ...gin.HandlerFunc) *ServerBuilder {
	b.middleware = append(b.middleware, mw...)
	return b
}

// WithRoutes sets the route setup function. An error from it fails Build.
func (b *ServerBuilder) WithRoutes(setupRoutes func(*gin.Engine) error) *ServerBuilder {
	b.setupRoutes = setupRoutes
	return b
}

// Build creates the engine, registers routes and wraps it in a Server.
func (b *ServerBuilder) Build() (*Server, error) {
	if b.setupRoutes == nil {
		return nil, ErrNoRoutes
	}
	if b.logger == nil {
		b.logger = logger.NewNop()
	}

	b.config.SetDefaults()
	engine := NewEngine(b.config, b.logger, b.middleware...)

	if err := b.setupRoutes(engine); err != nil {
		return nil, fmt.Errorf("setup routes: %w", err)
	}

	return NewServer(b.config, b.logger, engine), nil
}
