package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/config"
	infraconfig "github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/config"
)

var settingsEnv = []string{
	"APP_NAME", "DESCRIPTION", "VERSION", "DEBUG", "ENVIRONMENT",
	"API_V1_PREFIX", "API_V2_PREFIX", "API_V2_ENABLED",
	"OPENAI_API_KEY", "FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS", "SENTRY_DSN",
	"AI_DAILY_LIMIT_FREE", "HOST", "PORT", "CORS_ORIGINS",
	"LOG_LEVEL", "LOG_FORMAT", "METRICS_ENABLED", "METRICS_PATH",
	"ENABLE_PROFILING", "PPROF_PORT", "ENABLE_CONTINUOUS_PROFILING", "PYROSCOPE_SERVER_URL",
	"ENV_FILE",
}

// isolate runs the test in an empty directory with every settings variable blanked.
// Empty variables are treated as unset by the loader.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	for _, name := range settingsEnv {
		t.Setenv(name, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("missing.yml")
	require.NoError(t, err)

	assert.Equal(t, "CaloriAI Food Scanner API", cfg.App.Name)
	assert.Equal(t, "Backend API for CaloriAI mobile application.", cfg.App.Description)
	assert.Equal(t, "0.1.0", cfg.App.Version)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, "/api/v1", cfg.API.V1Prefix)
	assert.Equal(t, "/api/v2", cfg.API.V2Prefix)
	assert.False(t, cfg.API.V2Enabled)
	assert.Empty(t, cfg.Integrations.OpenAIAPIKey)
	assert.Empty(t, cfg.Integrations.FirebaseProjectID)
	assert.Empty(t, cfg.Integrations.GoogleApplicationCredentials)
	assert.Empty(t, cfg.Integrations.SentryDSN)
	assert.Equal(t, 20, cfg.Limits.AIDailyLimitFree)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Profiling.PprofEnabled)
	assert.Equal(t, 6060, cfg.Profiling.PprofPort)
	assert.Equal(t, "http://pyroscope:4040", cfg.Profiling.PyroscopeURL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)

	t.Setenv("VERSION", "1.2.3-rc.1+build.7")
	t.Setenv("DEBUG", "true")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("API_V2_ENABLED", "yes")
	t.Setenv("AI_DAILY_LIMIT_FREE", "5")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CORS_ORIGINS", "https://app.caloriai.com, https://admin.caloriai.com")
	t.Setenv("SOME_UNRELATED_KEY", "ignored")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "1.2.3-rc.1+build.7", cfg.App.Version)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.True(t, cfg.API.V2Enabled)
	assert.Equal(t, 5, cfg.Limits.AIDailyLimitFree)
	assert.Equal(t, "sk-test", cfg.Integrations.OpenAIAPIKey)
	assert.Equal(t, []string{"https://app.caloriai.com", "https://admin.caloriai.com"}, cfg.Server.CORSOrigins)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: CaloriAI Staging
  environment: staging
server:
  port: 9000
  shutdown_timeout: 5s
unknown_section:
  key: value
`), 0o600))

	t.Setenv("PORT", "9100")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "CaloriAI Staging", cfg.App.Name)
	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_InvalidDailyLimit(t *testing.T) {
	for _, value := range []string{"0", "-1", "abc"} {
		t.Run(value, func(t *testing.T) {
			isolate(t)
			t.Setenv("AI_DAILY_LIMIT_FREE", value)

			_, err := config.Load("")
			require.Error(t, err)

			var verr *infraconfig.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, []string{"AI_DAILY_LIMIT_FREE", "limits.ai_daily_limit_free"}, verr.Field)
		})
	}
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	tests := map[string]string{
		"DEBUG":          "maybe",
		"VERSION":        "1.0",
		"ENVIRONMENT":    "prod",
		"API_V1_PREFIX":  "api/v1",
		"API_V2_PREFIX":  "/api/v1",
		"PORT":           "70000",
		"LOG_LEVEL":      "verbose",
		"METRICS_PATH":   "/metrics/",
		"API_V2_ENABLED": "2",
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			t.Setenv(name, value)

			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	isolate(t)
	t.Setenv("VERSION", "latest")
	t.Setenv("ENVIRONMENT", "qa")

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app.version")
	assert.Contains(t, err.Error(), "app.environment")
}

func TestProvider_GetReturnsSameInstance(t *testing.T) {
	isolate(t)

	p := config.NewProvider("")
	first, err := p.Get()
	require.NoError(t, err)

	t.Setenv("VERSION", "9.9.9")
	second, err := p.Get()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "0.1.0", second.App.Version)

	other, err := config.NewProvider("").Get()
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, "9.9.9", other.App.Version)
}

func TestProvider_GetMemoizesError(t *testing.T) {
	isolate(t)
	t.Setenv("AI_DAILY_LIMIT_FREE", "abc")

	p := config.NewProvider("")
	_, first := p.Get()
	require.Error(t, first)

	t.Setenv("AI_DAILY_LIMIT_FREE", "10")
	_, second := p.Get()
	assert.Equal(t, first, second)
}

func TestConfig_HTTPServer(t *testing.T) {
	isolate(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("CORS_ORIGINS", "https://app.caloriai.com")

	cfg, err := config.Load("")
	require.NoError(t, err)

	srv := cfg.HTTPServer()
	assert.Equal(t, "127.0.0.1", srv.Host)
	assert.Equal(t, 8000, srv.Port)
	assert.True(t, srv.CORS.Enabled)
	assert.Equal(t, []string{"https://app.caloriai.com"}, srv.CORS.AllowedOrigins)
	assert.Equal(t, "0.1.0", srv.ServiceVersion)
	assert.Equal(t, 60*time.Second, srv.WriteTimeout)
}

func TestValidate_EmptyVersionReportedOnce(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.App.Version = ""

	err = cfg.Validate()
	require.Error(t, err)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	assert.Len(t, joined.Unwrap(), 1)
	assert.EqualError(t, err, "app.version: is required")
}
