// Package identity resolves an artist display name from a video reference.
package identity

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"lyricagent/internal/logging"
	"lyricagent/internal/services"
	"lyricagent/internal/services/apify"
)

// Resolver turns a video URL into the channel's display name by running a
// YouTube metadata scrape.
type Resolver struct {
	runner apify.Runner
	actor  string
	logger *slog.Logger
}

// NewResolver constructs a Resolver around the supplied actor runner.
func NewResolver(runner apify.Runner, actor string, logger *slog.Logger) *Resolver {
	return &Resolver{
		runner: runner,
		actor:  actor,
		logger: logging.NewComponentLogger(logger, "identity"),
	}
}

type videoItem struct {
	ChannelName string `json:"channelName"`
	Author      string `json:"author"`
}

// Resolve returns the artist name behind the referenced video. A video that
// cannot be found, or one without a usable channel name, is a not-found
// failure: the pipeline has nothing to continue with.
func (r *Resolver) Resolve(ctx context.Context, videoURL string) (string, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return "", services.Wrap(services.ErrValidation, "identity", "resolve", "video url required", nil)
	}

	log := logging.WithContext(ctx, r.logger)
	log.Info("resolving artist from video", logging.String("url", videoURL))

	input := map[string]any{
		"startUrls":  []map[string]string{{"url": videoURL}},
		"maxResults": 1,
	}
	items, err := r.runner.RunActor(ctx, r.actor, input)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "identity", "resolve", "video scrape failed", err)
	}
	if len(items) == 0 {
		return "", services.Wrap(services.ErrNotFound, "identity", "resolve", "no results for video", nil)
	}

	var item videoItem
	if err := json.Unmarshal(items[0], &item); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "identity", "resolve", "decode video metadata", err)
	}

	artist := strings.TrimSpace(item.ChannelName)
	if artist == "" {
		artist = strings.TrimSpace(item.Author)
	}
	if artist == "" {
		return "", services.Wrap(services.ErrNotFound, "identity", "resolve", "video metadata has no channel name", nil)
	}

	log.Info("artist resolved", logging.String("artist", artist))
	return artist, nil
}
