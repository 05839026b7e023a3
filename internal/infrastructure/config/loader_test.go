package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraconfig "github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/config"
)

type sample struct {
	Name    string        `env:"SAMPLE_NAME"    yaml:"name"`
	Limit   int           `env:"SAMPLE_LIMIT"   yaml:"limit"`
	Debug   bool          `env:"SAMPLE_DEBUG"   yaml:"debug"`
	Timeout time.Duration `env:"SAMPLE_TIMEOUT" yaml:"timeout"`
	Origins []string      `env:"SAMPLE_ORIGINS" yaml:"origins"`
	Nested  struct {
		Port int `env:"SAMPLE_PORT" yaml:"port"`
	} `yaml:"nested"`
}

func sampleDefaults(s *sample) {
	s.Name = "default"
	s.Limit = 20
	s.Nested.Port = 8000
}

// isolate runs the test from an empty directory so stray .env files are not picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ENV_FILE", "")
	return dir
}

func TestLoadWithDefaults_MissingFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := infraconfig.LoadWithDefaults("does-not-exist.yml", sampleDefaults)
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, 20, cfg.Limit)
	assert.Equal(t, 8000, cfg.Nested.Port)
}

func TestLoadWithDefaults_FileThenEnv(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yml")
	contents := "name: from-file\nlimit: 5\nunknown_key: ignored\nnested:\n  port: 9000\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	t.Setenv("SAMPLE_LIMIT", "7")
	t.Setenv("SAMPLE_DEBUG", "yes")
	t.Setenv("SAMPLE_TIMEOUT", "3s")
	t.Setenv("SAMPLE_ORIGINS", "https://a.example, https://b.example")

	cfg, err := infraconfig.LoadWithDefaults(path, sampleDefaults)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Name)
	assert.Equal(t, 7, cfg.Limit)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
	assert.Equal(t, 9000, cfg.Nested.Port)
}

func TestLoadWithDefaults_DotEnvDoesNotOverrideProcessEnv(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SAMPLE_NAME=from-dotenv\nSAMPLE_PORT=9100\n"), 0o600))
	t.Setenv("SAMPLE_NAME", "from-process")
	// Registers cleanup for a variable that only the .env file sets.
	t.Setenv("SAMPLE_PORT", "")
	require.NoError(t, os.Unsetenv("SAMPLE_PORT"))

	cfg, err := infraconfig.LoadWithDefaults("", sampleDefaults)
	require.NoError(t, err)

	assert.Equal(t, "from-process", cfg.Name)
	assert.Equal(t, 9100, cfg.Nested.Port)
}

func TestLoadWithDefaults_ReportsEveryMalformedVariable(t *testing.T) {
	isolate(t)

	t.Setenv("SAMPLE_LIMIT", "abc")
	t.Setenv("SAMPLE_DEBUG", "maybe")

	_, err := infraconfig.LoadWithDefaults("", sampleDefaults)
	require.Error(t, err)

	var vErr *infraconfig.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, err.Error(), "SAMPLE_LIMIT")
	assert.Contains(t, err.Error(), "SAMPLE_DEBUG")
}

func TestLoadWithDefaults_InvalidYAML(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("limit: [not-an-int"), 0o600))

	_, err := infraconfig.LoadWithDefaults(path, sampleDefaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{in: "true", want: true},
		{in: "ON", want: true},
		{in: "1", want: true},
		{in: "no", want: false},
		{in: " False ", want: false},
		{in: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		got, err := infraconfig.ParseBool(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "config.yml", infraconfig.GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/caloriai/config.yml")
	assert.Equal(t, "/etc/caloriai/config.yml", infraconfig.GetConfigPath("config.yml"))
}
