package bootstrap

import (
	"fmt"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/config"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/domain"
	infralogger "github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/logger"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/profiling"
)

// CreateLogger creates a structured logger for the service.
func CreateLogger(cfg *config.Config) (infralogger.Logger, error) {
	log, logErr := infralogger.New(infralogger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.App.Debug,
	})
	if logErr != nil {
		return nil, fmt.Errorf("create logger: %w", logErr)
	}

	return log.With(
		infralogger.String("service", domain.ServiceName),
		infralogger.String("environment", cfg.App.Environment),
	), nil
}

// ProfilingConfig maps the settings onto the profiler configuration.
func ProfilingConfig(cfg *config.Config) profiling.Config {
	return profiling.Config{
		PprofEnabled:     cfg.Profiling.PprofEnabled,
		PprofPort:        cfg.Profiling.PprofPort,
		PyroscopeEnabled: cfg.Profiling.PyroscopeEnabled,
		PyroscopeURL:     cfg.Profiling.PyroscopeURL,
		ApplicationName:  domain.ServiceName,
		Environment:      cfg.App.Environment,
		Version:          cfg.App.Version,
	}
}
