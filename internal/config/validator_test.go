package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		shouldErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"sqlite backend", func(c *Config) { c.Storage.Backend = BackendSQLite }, false},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, true},
		{"zero input limit", func(c *Config) { c.Limits.MaxInputLength = 0 }, true},
		{"negative message cap", func(c *Config) { c.Limits.MaxMessagesPerChat = -1 }, true},
		{"negative min delay", func(c *Config) { c.Responder.MinDelayMs = -1 }, true},
		{"max below min delay", func(c *Config) { c.Responder.MaxDelayMs = 500 }, true},
		{"equal delays", func(c *Config) { c.Responder.MinDelayMs = 100; c.Responder.MaxDelayMs = 100 }, false},
		{"retention enabled defaults", func(c *Config) { c.Retention.Enabled = true }, false},
		{"retention empty schedule", func(c *Config) { c.Retention.Enabled = true; c.Retention.Schedule = "" }, true},
		{"retention zero age", func(c *Config) { c.Retention.Enabled = true; c.Retention.MaxAgeDays = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
