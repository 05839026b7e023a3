// Package bootstrap handles application initialization and lifecycle management
// for the CaloriAI backend.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/config"
	infralogger "github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/logger"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/profiling"
)

// Start loads the settings from configPath, builds the application and serves it
// until SIGINT, SIGTERM or ctx cancellation.
func Start(ctx context.Context, configPath string) error {
	cfg, configErr := config.NewProvider(configPath).Get()
	if configErr != nil {
		return fmt.Errorf("config: %w", configErr)
	}

	log, logErr := CreateLogger(cfg)
	if logErr != nil {
		return fmt.Errorf("logger: %w", logErr)
	}
	defer func() { _ = log.Sync() }()

	profiler, profErr := profiling.Start(ProfilingConfig(cfg), log)
	if profErr != nil {
		log.Warn("Profiling disabled", infralogger.Error(profErr))
	}
	defer func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			log.Error("Failed to stop profiler", infralogger.Error(stopErr))
		}
	}()

	app, appErr := NewApplication(cfg, log)
	if appErr != nil {
		return fmt.Errorf("application: %w", appErr)
	}

	log.Info("Starting CaloriAI backend",
		infralogger.String("name", app.Info.Title),
		infralogger.String("version", app.Info.Version),
		infralogger.String("api", app.Registry.Current().Prefix),
		infralogger.Bool("v2_enabled", cfg.API.V2Enabled),
		infralogger.Int("routes", len(app.Manifest)),
		infralogger.Duration("shutdown_timeout", app.Server.Config().ShutdownTimeout),
	)

	if runErr := app.Server.RunWithGracefulShutdown(ctx); runErr != nil {
		log.Error("Server error", infralogger.Error(runErr))
		return fmt.Errorf("server: %w", runErr)
	}

	log.Info("CaloriAI backend stopped")
	return nil
}
