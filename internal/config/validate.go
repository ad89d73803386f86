package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is structurally usable. Credentials are
// checked separately by ValidateCredentials so offline subcommands (metrics,
// fingerprint against a stub, cache inspection) work without API keys.
func (c *Config) Validate() error {
	if err := c.validatePacing(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// ValidateCredentials ensures everything a full pipeline run needs is set.
func (c *Config) ValidateCredentials() error {
	if c.Apify.Token == "" {
		return configRequired("apify.token", "APIFY_TOKEN")
	}
	if c.LLM.APIKey == "" {
		return configRequired("llm.api_key", "OPENROUTER_API_KEY")
	}
	if c.Embedding.BaseURL == "" {
		return errors.New("embedding.base_url must be set")
	}
	return nil
}

func (c *Config) validatePacing() error {
	if c.Pacing.MinSeconds < 0 {
		return errors.New("pacing.min_seconds must not be negative")
	}
	if c.Pacing.MaxSeconds < c.Pacing.MinSeconds {
		return errors.New("pacing.max_seconds must be at least pacing.min_seconds")
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	for name, value := range map[string]int{
		"apify.timeout_seconds":     c.Apify.TimeoutSeconds,
		"llm.timeout_seconds":       c.LLM.TimeoutSeconds,
		"embedding.timeout_seconds": c.Embedding.TimeoutSeconds,
	} {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func configRequired(key, env string) error {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/lyricagent/config.toml"
	}
	return fmt.Errorf("%s is required. Set %s env var or edit %s (create with 'lyricagent config init')", key, env, defaultPath)
}
