package lyricscache

import (
	"context"
	"log/slog"

	"lyricagent/internal/logging"
	"lyricagent/internal/lyrics"
)

// CachingSource wraps a lyrics source with the cache: hits (including cached
// absences) never reach the inner source, misses are fetched and recorded.
type CachingSource struct {
	inner  lyrics.Source
	cache  *Cache
	logger *slog.Logger
}

var _ lyrics.Source = (*CachingSource)(nil)

// NewCachingSource wraps inner with cache.
func NewCachingSource(inner lyrics.Source, cache *Cache, logger *slog.Logger) *CachingSource {
	return &CachingSource{
		inner:  inner,
		cache:  cache,
		logger: logging.NewComponentLogger(logger, "lyricscache"),
	}
}

// Fetch consults the cache before the inner source. Cache faults are logged
// and treated as misses so a broken cache never blocks a run.
func (s *CachingSource) Fetch(ctx context.Context, track, artist string) (string, bool) {
	log := logging.WithContext(ctx, s.logger)

	entry, hit, err := s.cache.Get(ctx, artist, track)
	if err != nil {
		log.Warn("cache lookup failed", logging.Error(err))
	} else if hit {
		log.Debug("cache hit",
			logging.String("track", track),
			logging.Bool("found", entry.Found))
		return entry.Lyrics, entry.Found
	}

	body, found := s.inner.Fetch(ctx, track, artist)
	if err := s.cache.Put(ctx, Entry{
		Artist: artist,
		Track:  track,
		Found:  found,
		Lyrics: body,
	}); err != nil {
		log.Warn("cache store failed", logging.Error(err))
	}
	return body, found
}
