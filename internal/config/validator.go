package config

import "fmt"

// Validate checks a configuration for inconsistent values
func Validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}

	if cfg.Limits.MaxInputLength <= 0 {
		return fmt.Errorf("max_input_length must be positive, got %d", cfg.Limits.MaxInputLength)
	}
	if cfg.Limits.MaxMessagesPerChat <= 0 {
		return fmt.Errorf("max_messages_per_chat must be positive, got %d", cfg.Limits.MaxMessagesPerChat)
	}

	if cfg.Responder.MinDelayMs < 0 {
		return fmt.Errorf("min_delay_ms cannot be negative, got %d", cfg.Responder.MinDelayMs)
	}
	if cfg.Responder.MaxDelayMs < cfg.Responder.MinDelayMs {
		return fmt.Errorf("max_delay_ms (%d) cannot be below min_delay_ms (%d)",
			cfg.Responder.MaxDelayMs, cfg.Responder.MinDelayMs)
	}

	if cfg.Retention.Enabled {
		if cfg.Retention.Schedule == "" {
			return fmt.Errorf("retention schedule cannot be empty when retention is enabled")
		}
		if cfg.Retention.MaxAgeDays <= 0 {
			return fmt.Errorf("retention max_age_days must be positive, got %d", cfg.Retention.MaxAgeDays)
		}
	}

	return nil
}
