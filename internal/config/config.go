// Package config defines the application settings and their single-load provider.
package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/apiversion"
	infraconfig "github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/config"
	infragin "github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/gin"
)

// DefaultPath is the config file consulted when CONFIG_PATH is unset.
const DefaultPath = "config.yml"

// Default application values.
const (
	defaultAppName        = "CaloriAI Food Scanner API"
	defaultAppDescription = "Backend API for CaloriAI mobile application."
	defaultAppVersion     = "0.1.0"
	defaultEnvironment    = "local"
	defaultV1Prefix       = "/api/v1"
	defaultV2Prefix       = "/api/v2"
	defaultAIDailyLimit   = 20
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
	defaultMetricsPath    = "/metrics"
	defaultPprofPort      = 6060
	defaultPyroscopeURL   = "http://pyroscope:4040"
)

// Environments accepted for App.Environment.
var environments = []string{"local", "development", "staging", "production"}

// Config holds the application settings. It is loaded once per process and
// treated as read-only afterwards.
type Config struct {
	App          AppConfig          `yaml:"app"`
	API          APIConfig          `yaml:"api"`
	Integrations IntegrationsConfig `yaml:"integrations"`
	Limits       LimitsConfig       `yaml:"limits"`
	Server       ServerConfig       `yaml:"server"`
	Logging      LoggingConfig      `yaml:"logging"`
	Metrics      MetricsConfig      `yaml:"metrics"`
	Profiling    ProfilingConfig    `yaml:"profiling"`
}

// AppConfig holds the application identity.
type AppConfig struct {
	Name        string `env:"APP_NAME"    yaml:"name"`
	Description string `env:"DESCRIPTION" yaml:"description"`
	Version     string `env:"VERSION"     yaml:"version"`
	Debug       bool   `env:"DEBUG"       yaml:"debug"`
	Environment string `env:"ENVIRONMENT" yaml:"environment"`
}

// APIConfig holds the versioned URL prefixes.
type APIConfig struct {
	V1Prefix  string `env:"API_V1_PREFIX"  yaml:"v1_prefix"`
	V2Prefix  string `env:"API_V2_PREFIX"  yaml:"v2_prefix"`
	V2Enabled bool   `env:"API_V2_ENABLED" yaml:"v2_enabled"`
}

// IntegrationsConfig holds credentials for external services. Nothing reads
// them yet; an empty value means the integration is not configured.
type IntegrationsConfig struct {
	OpenAIAPIKey                 string `env:"OPENAI_API_KEY"                 yaml:"openai_api_key"`
	FirebaseProjectID            string `env:"FIREBASE_PROJECT_ID"            yaml:"firebase_project_id"`
	GoogleApplicationCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS" yaml:"google_application_credentials"`
	SentryDSN                    string `env:"SENTRY_DSN"                     yaml:"sentry_dsn"`
}

// LimitsConfig holds per-user quotas.
type LimitsConfig struct {
	AIDailyLimitFree int `env:"AI_DAILY_LIMIT_FREE" yaml:"ai_daily_limit_free"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `env:"HOST"         yaml:"host"`
	Port            int           `env:"PORT"         yaml:"port"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" yaml:"enabled"`
	Path    string `env:"METRICS_PATH"    yaml:"path"`
}

// ProfilingConfig holds pprof and Pyroscope settings.
type ProfilingConfig struct {
	PprofEnabled     bool   `env:"ENABLE_PROFILING"            yaml:"pprof_enabled"`
	PprofPort        int    `env:"PPROF_PORT"                  yaml:"pprof_port"`
	PyroscopeEnabled bool   `env:"ENABLE_CONTINUOUS_PROFILING" yaml:"pyroscope_enabled"`
	PyroscopeURL     string `env:"PYROSCOPE_SERVER_URL"        yaml:"pyroscope_url"`
}

// Load loads configuration from a YAML file, applies defaults, then env overrides.
func Load(path string) (*Config, error) {
	cfg, loadErr := infraconfig.LoadWithDefaults(path, setDefaults)
	if loadErr != nil {
		return nil, fmt.Errorf("load config: %w", loadErr)
	}

	if validateErr := infraconfig.Validate(cfg); validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	errs := []error{
		infraconfig.ValidateRequired("app.name", c.App.Name),
		validateVersion(c.App.Version),
		infraconfig.ValidateOneOf("app.environment", c.App.Environment, environments...),
		infraconfig.ValidateURLPath("api.v1_prefix", c.API.V1Prefix),
		infraconfig.ValidateURLPath("api.v2_prefix", c.API.V2Prefix),
		infraconfig.ValidateMin("limits.ai_daily_limit_free", c.Limits.AIDailyLimitFree, 1),
		infraconfig.ValidatePort("server.port", c.Server.Port),
		infraconfig.ValidateLogLevel(c.Logging.Level),
		infraconfig.ValidateLogFormat(c.Logging.Format),
		infraconfig.ValidateURLPath("metrics.path", c.Metrics.Path),
	}

	if c.API.V1Prefix != "" && c.API.V2Prefix != "" && apiversion.Overlaps(c.API.V1Prefix, c.API.V2Prefix) {
		errs = append(errs, &infraconfig.ValidationError{
			Field:   "api.v2_prefix",
			Message: fmt.Sprintf("must not overlap api.v1_prefix %q", c.API.V1Prefix),
		})
	}

	if c.Profiling.PprofEnabled {
		errs = append(errs, infraconfig.ValidatePort("profiling.pprof_port", c.Profiling.PprofPort))
	}
	if c.Profiling.PyroscopeEnabled {
		errs = append(errs, infraconfig.ValidateRequired("profiling.pyroscope_url", c.Profiling.PyroscopeURL))
	}

	return errors.Join(errs...)
}

// validateVersion requires a semantic version, reporting an empty value only once.
func validateVersion(v string) error {
	if err := infraconfig.ValidateRequired("app.version", v); err != nil {
		return err
	}
	return infraconfig.ValidateSemver("app.version", v)
}

// HTTPServer maps the settings onto the shared gin server configuration.
func (c *Config) HTTPServer() *infragin.Config {
	cfg := &infragin.Config{
		Host:            c.Server.Host,
		Port:            c.Server.Port,
		Debug:           c.App.Debug,
		ReadTimeout:     c.Server.ReadTimeout,
		WriteTimeout:    c.Server.WriteTimeout,
		IdleTimeout:     c.Server.IdleTimeout,
		ShutdownTimeout: c.Server.ShutdownTimeout,
		CORS: infragin.CORSConfig{
			Enabled:        true,
			AllowedOrigins: append([]string(nil), c.Server.CORSOrigins...),
		},
		ServiceName:    c.App.Name,
		ServiceVersion: c.App.Version,
	}
	cfg.SetDefaults()
	return cfg
}

// Provider loads the settings on first use and hands out the same instance on
// every later call.
type Provider struct {
	path string
	once sync.Once
	cfg  *Config
	err  error
}

// NewProvider creates a provider reading the config file at path.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Get returns the settings, loading them on the first call. Subsequent calls
// return the identical pointer, or the identical error.
func (p *Provider) Get() (*Config, error) {
	p.once.Do(func() {
		p.cfg, p.err = Load(p.path)
	})
	return p.cfg, p.err
}

func setDefaults(cfg *Config) {
	setAppDefaults(&cfg.App)
	setAPIDefaults(&cfg.API)
	setServerDefaults(&cfg.Server)

	if cfg.Limits.AIDailyLimitFree == 0 {
		cfg.Limits.AIDailyLimitFree = defaultAIDailyLimit
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}

	cfg.Metrics.Enabled = true
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}

	if cfg.Profiling.PprofPort == 0 {
		cfg.Profiling.PprofPort = defaultPprofPort
	}
	if cfg.Profiling.PyroscopeURL == "" {
		cfg.Profiling.PyroscopeURL = defaultPyroscopeURL
	}
}

func setAppDefaults(a *AppConfig) {
	if a.Name == "" {
		a.Name = defaultAppName
	}
	if a.Description == "" {
		a.Description = defaultAppDescription
	}
	if a.Version == "" {
		a.Version = defaultAppVersion
	}
	if a.Environment == "" {
		a.Environment = defaultEnvironment
	}
}

func setAPIDefaults(a *APIConfig) {
	if a.V1Prefix == "" {
		a.V1Prefix = defaultV1Prefix
	}
	if a.V2Prefix == "" {
		a.V2Prefix = defaultV2Prefix
	}
}

func setServerDefaults(s *ServerConfig) {
	if s.Port == 0 {
		s.Port = infragin.DefaultPort
	}
	if len(s.CORSOrigins) == 0 {
		s.CORSOrigins = []string{"*"}
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = infragin.DefaultReadTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = infragin.DefaultWriteTimeout
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = infragin.DefaultIdleTimeout
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = infragin.DefaultShutdownTimeout
	}
}
