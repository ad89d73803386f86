package config

const (
	defaultCacheDir  = "~/.cache/lyricagent"
	defaultLogDir    = "~/.local/share/lyricagent/logs"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultApifyBaseURL        = "https://api.apify.com/v2"
	defaultApifyVideoActor     = "streamers/youtube-scraper"
	defaultApifyScraperActor   = "apify/web-scraper"
	defaultApifyProxyGroup     = "RESIDENTIAL"
	defaultApifyTimeoutSeconds = 180

	defaultLLMBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel          = "tngtech/tng-r1t-chimera:free"
	defaultLLMTitle          = "Lyricagent Tracklist"
	defaultLLMTimeoutSeconds = 60

	defaultEmbeddingBaseURL        = "http://127.0.0.1:11434/v1/embeddings"
	defaultEmbeddingTimeoutSeconds = 60

	// defaultEmbeddingModel is part of the fingerprint contract. Do not bump
	// it casually: every stored fingerprint changes with it.
	defaultEmbeddingModel = "nomic-embed-text-v1.5"

	// Pacing defaults follow the unhurried access pattern the lyrics source
	// expects: a few seconds of random delay between consecutive lookups.
	defaultPacingMinSeconds = 3.0
	defaultPacingMaxSeconds = 6.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		Apify: Apify{
			BaseURL:        defaultApifyBaseURL,
			VideoActor:     defaultApifyVideoActor,
			ScraperActor:   defaultApifyScraperActor,
			ProxyGroup:     defaultApifyProxyGroup,
			TimeoutSeconds: defaultApifyTimeoutSeconds,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Embedding: Embedding{
			BaseURL:        defaultEmbeddingBaseURL,
			Model:          defaultEmbeddingModel,
			TimeoutSeconds: defaultEmbeddingTimeoutSeconds,
		},
		Pacing: Pacing{
			MinSeconds: defaultPacingMinSeconds,
			MaxSeconds: defaultPacingMaxSeconds,
		},
		Cache: Cache{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
