package config

import (
	"encoding/json"
	"path/filepath"
)

// Backend names for session persistence.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config represents the main Senthrix configuration
type Config struct {
	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`

	// Storage configuration
	Storage StorageConfig `json:"storage" mapstructure:"storage"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Input and history limits
	Limits LimitsConfig `json:"limits" mapstructure:"limits"`

	// Simulated responder timing
	Responder ResponderConfig `json:"responder" mapstructure:"responder"`

	// Chat retention
	Retention RetentionConfig `json:"retention" mapstructure:"retention"`
}

// StorageConfig selects and locates the persistence backend
type StorageConfig struct {
	Backend string `json:"backend" mapstructure:"backend"` // file, sqlite
	Path    string `json:"path" mapstructure:"path"`       // snapshot file or database path
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// LimitsConfig carries the input constraints surfaced to the UI
type LimitsConfig struct {
	MaxInputLength     int `json:"max_input_length" mapstructure:"max_input_length"`
	MaxMessagesPerChat int `json:"max_messages_per_chat" mapstructure:"max_messages_per_chat"`
}

// ResponderConfig bounds the simulated reply delay
type ResponderConfig struct {
	MinDelayMs int `json:"min_delay_ms" mapstructure:"min_delay_ms"`
	MaxDelayMs int `json:"max_delay_ms" mapstructure:"max_delay_ms"`
}

// RetentionConfig controls scheduled pruning of old chats
type RetentionConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	Schedule   string `json:"schedule" mapstructure:"schedule"`
	MaxAgeDays int    `json:"max_age_days" mapstructure:"max_age_days"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			Pretty:  true,
		},
		Limits: LimitsConfig{
			MaxInputLength:     1000,
			MaxMessagesPerChat: 50,
		},
		Responder: ResponderConfig{
			MinDelayMs: 1000,
			MaxDelayMs: 2500,
		},
		Retention: RetentionConfig{
			Enabled:    false,
			Schedule:   "@daily",
			MaxAgeDays: 30,
		},
	}
}

// StoragePath returns the configured storage path, defaulting to a
// backend-appropriate file under the data directory.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if c.Storage.Backend == BackendSQLite {
		return filepath.Join(c.DataDir, "senthrix.db")
	}
	return filepath.Join(c.DataDir, "state.json")
}

// String returns the config as indented JSON
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
