package testsupport

import (
	"path/filepath"
	"testing"

	"lyricagent/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test
// and placeholder credentials, then applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Cache.Path = filepath.Join(base, "cache", "lyrics.db")
	cfg.Apify.Token = "test-token"
	cfg.LLM.APIKey = "test-key"
	cfg.Embedding.BaseURL = "http://127.0.0.1:0/v1/embeddings"
	cfg.Pacing.MinSeconds = 0
	cfg.Pacing.MaxSeconds = 0

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithApifyToken sets the Apify token on the test config.
func WithApifyToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Apify.Token = token
	}
}

// WithCacheDisabled turns the lyrics cache off.
func WithCacheDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Cache.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CacheDir)
}
