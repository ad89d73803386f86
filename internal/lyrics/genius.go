// Package lyrics retrieves raw lyrics text for a track from its public song
// page.
//
// Absence is a normal result, not a fault: a missing page, a blocked scrape,
// and a transport failure all come back as not-found so the pipeline can
// degrade that track to zero metrics instead of aborting.
package lyrics

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"lyricagent/internal/logging"
	"lyricagent/internal/services/apify"
)

// minLyricsChars guards against block pages and cookie walls: anything this
// short is not a real lyrics body.
const minLyricsChars = 50

// pageFunction runs inside the scraping actor's browser context and extracts
// the lyrics containers from the song page.
const pageFunction = `async function pageFunction(context) {
    const $ = context.jQuery;
    await new Promise(resolve => setTimeout(resolve, 2000));

    let lyrics = '';
    const lyricsContainers = $('[data-lyrics-container="true"]');

    if (lyricsContainers.length > 0) {
        lyricsContainers.each(function() {
            lyrics += $(this).text() + '\n\n';
        });
    }

    return {
        url: context.request.url,
        lyrics: lyrics.trim()
    };
}`

// Source fetches lyrics text. The boolean reports whether usable lyrics were
// found; implementations never fail, they only decline.
type Source interface {
	Fetch(ctx context.Context, track, artist string) (string, bool)
}

// GeniusSource scrapes lyrics pages through a web-scraper actor, one page per
// call with no concurrency, matching the pacing expectations of the site.
type GeniusSource struct {
	runner     apify.Runner
	actor      string
	proxyGroup string
	logger     *slog.Logger
}

var _ Source = (*GeniusSource)(nil)

// NewGeniusSource constructs a GeniusSource.
func NewGeniusSource(runner apify.Runner, actor, proxyGroup string, logger *slog.Logger) *GeniusSource {
	return &GeniusSource{
		runner:     runner,
		actor:      actor,
		proxyGroup: proxyGroup,
		logger:     logging.NewComponentLogger(logger, "lyrics"),
	}
}

type scrapeItem struct {
	URL    string `json:"url"`
	Lyrics string `json:"lyrics"`
}

// Fetch scrapes the song page for the track. Every failure path logs and
// returns absence.
func (g *GeniusSource) Fetch(ctx context.Context, track, artist string) (string, bool) {
	pageURL := songURL(artist, track)
	log := logging.WithContext(ctx, g.logger).With(logging.String("url", pageURL))
	log.Debug("scraping lyrics page")

	input := map[string]any{
		"startUrls":           []map[string]string{{"url": pageURL}},
		"maxRequestsPerCrawl": 1,
		"maxConcurrency":      1,
		"pageFunction":        pageFunction,
		"maxRequestRetries":   2,
		"navigationTimeoutSecs": 60,
		"pageLoadTimeoutSecs":   60,
	}
	if g.proxyGroup != "" {
		input["proxyConfiguration"] = map[string]any{
			"useApifyProxy":    true,
			"apifyProxyGroups": []string{g.proxyGroup},
		}
	}

	items, err := g.runner.RunActor(ctx, g.actor, input)
	if err != nil {
		log.Warn("lyrics scrape failed", logging.Error(err))
		return "", false
	}
	if len(items) == 0 {
		log.Info("no lyrics found")
		return "", false
	}

	var item scrapeItem
	if err := json.Unmarshal(items[0], &item); err != nil {
		log.Warn("decode scrape result failed", logging.Error(err))
		return "", false
	}

	lyrics := item.Lyrics
	if len([]rune(strings.TrimSpace(lyrics))) < minLyricsChars {
		log.Info("lyrics too short, treating as blocked or missing",
			logging.Int("chars", len([]rune(lyrics))))
		return "", false
	}

	log.Info("lyrics fetched", logging.Int("chars", len([]rune(lyrics))))
	return lyrics, true
}
