// Package cli holds the initialization steps shared by command-line
// entry points: env file, logger, config, repository.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"expensebook/internal/backend"
	"expensebook/internal/config"
	"expensebook/internal/log"
)

// LoadEnvFile loads a .env file for local development. Missing files are
// fine; the environment simply stays as it is.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the root logger from the configured level string,
// falling back to info on a bad value.
func SetupLogger(level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return log.New("expensebook", lvl)
}

// LoadAndValidateConfig loads configuration or exits the process when it
// does not validate.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenRepository builds the configured repository or exits on failure.
// The returned cleanup may be nil.
func OpenRepository(logger *log.Logger, cfg *config.Config) (backend.Repository, backend.CleanupFunc) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("invalid backend configuration", "error", err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreateRepository(backendCfg)
	if err != nil {
		logger.Error("failed to initialize repository", "error", err, "backend", backendCfg.Type)
		os.Exit(1)
	}
	return result.Repository, result.Cleanup
}
