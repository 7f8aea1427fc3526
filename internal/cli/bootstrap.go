package cli

import (
	"fmt"

	"github.com/craftedcodex/senthrix/internal/config"
	"github.com/craftedcodex/senthrix/internal/logger"
	"github.com/craftedcodex/senthrix/pkg/persist"
)

// loadConfig loads the configuration honoring the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// setupLogger initializes the global logger from config.
func setupLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		Pretty:  cfg.Logging.Pretty,
	})
}

// openGateway opens the configured persistence backend.
func openGateway(cfg *config.Config) (persist.Gateway, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return persist.NewSQLiteGateway(cfg.StoragePath())
	case config.BackendFile:
		return persist.NewFileGateway(cfg.StoragePath())
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}
