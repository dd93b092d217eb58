package config

import (
	"errors"
	"fmt"
)

// Validate checks the settings every command needs. Model settings are only
// used by commands that load classifiers but are cheap to check up front.
func (c *Config) Validate() error {
	if c.DatabaseDSN() == "" {
		return errors.New("database.dsn (DATABASE_URL) or database.name, database.user, database.host and database.port are required")
	}
	if c.Database.MaxConns <= 0 {
		return errors.New("database.max_conns must be a positive integer")
	}

	if c.Inference.EmotionModel == "" {
		return errors.New("inference.emotion_model is required")
	}
	if c.Inference.GibberishModel == "" {
		return errors.New("inference.gibberish_model is required")
	}
	if c.Inference.HubURL == "" || c.Inference.URL == "" {
		return errors.New("inference.hub_url and inference.url are required")
	}
	if c.Inference.MaxLength <= 0 {
		return fmt.Errorf("inference.max_length must be positive, got %d", c.Inference.MaxLength)
	}
	if c.Inference.MaxRetries < 0 {
		return fmt.Errorf("inference.max_retries must not be negative, got %d", c.Inference.MaxRetries)
	}
	if c.Inference.Timeout < 0 {
		return errors.New("inference.timeout must not be negative")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.gin_mode must be debug, release or test, got %q", c.Server.GinMode)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return errors.New("cors.allowed_origins must list at least one origin")
	}

	return nil
}
