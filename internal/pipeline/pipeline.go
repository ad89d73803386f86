package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"lyricagent/internal/logging"
	"lyricagent/internal/metrics"
	"lyricagent/internal/services"
	"lyricagent/internal/tracklist"
)

// IdentityResolver resolves the performing artist from a video URL.
type IdentityResolver interface {
	Resolve(ctx context.Context, videoURL string) (string, error)
}

// TracklistSource infers the debut album listing for an artist.
type TracklistSource interface {
	Infer(ctx context.Context, artist string) (tracklist.Listing, error)
}

// LyricsSource fetches lyrics text for a track. The boolean reports whether
// usable lyrics were found; absence is a normal result, not an error.
type LyricsSource interface {
	Fetch(ctx context.Context, track, artist string) (string, bool)
}

// Fingerprinter derives the album fingerprint from ordered token counts.
type Fingerprinter interface {
	Fingerprint(ctx context.Context, tokenCounts []int) (string, error)
}

// Pipeline runs the full flow: resolve the artist behind a video URL, infer
// the debut album tracklist, fetch lyrics per track, compute per-track
// metrics, and derive the album fingerprint.
//
// Identity, tracklist, and fingerprint failures abort the run. A missing
// lyrics body does not: the track stays in the report with zero metrics.
type Pipeline struct {
	identity    IdentityResolver
	tracklist   TracklistSource
	lyrics      LyricsSource
	calculator  *metrics.Calculator
	fingerprint Fingerprinter
	pacer       *Pacer
	logger      *slog.Logger
}

// New assembles a Pipeline from its collaborators. A nil pacer disables
// pacing.
func New(
	identity IdentityResolver,
	tracks TracklistSource,
	source LyricsSource,
	calculator *metrics.Calculator,
	fp Fingerprinter,
	pacer *Pacer,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		identity:    identity,
		tracklist:   tracks,
		lyrics:      source,
		calculator:  calculator,
		fingerprint: fp,
		pacer:       pacer,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run executes the pipeline for one video URL and returns the run report.
func (p *Pipeline) Run(ctx context.Context, videoURL string) (*Report, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return nil, services.Wrap(services.ErrValidation, "pipeline", "run", "video URL is required", nil)
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	log := logging.WithContext(ctx, p.logger)
	log.Info("run started", logging.String("video_url", videoURL))
	started := time.Now()

	artist, err := p.resolveArtist(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	listing, err := p.inferTracklist(ctx, artist)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     runID,
		Artist:    artist,
		AlbumName: listing.AlbumName,
		Tracks:    make([]TrackReport, 0, len(listing.Tracks)),
	}

	for _, track := range listing.Tracks {
		if err := ctx.Err(); err != nil {
			return nil, services.Wrap(services.ErrTransient, "pipeline", "lyrics", "run cancelled", err)
		}
		report.Tracks = append(report.Tracks, p.measureTrack(ctx, artist, track))
	}
	report.aggregate()

	digest, err := p.fingerprint.Fingerprint(services.WithStage(ctx, "fingerprint"), report.TokenCounts())
	if err != nil {
		return nil, err
	}
	report.Fingerprint = digest

	log.Info("run finished",
		logging.Int("total_tokens", report.TotalTokens),
		logging.String("fingerprint", digest),
		logging.Duration("elapsed", time.Since(started)))
	return report, nil
}

func (p *Pipeline) resolveArtist(ctx context.Context, videoURL string) (string, error) {
	ctx = services.WithStage(ctx, "identity")
	artist, err := p.identity.Resolve(ctx, videoURL)
	if err != nil {
		return "", err
	}
	return artist, nil
}

func (p *Pipeline) inferTracklist(ctx context.Context, artist string) (tracklist.Listing, error) {
	ctx = services.WithStage(ctx, "tracklist")
	p.pacer.Wait(ctx)
	return p.tracklist.Infer(ctx, artist)
}

// measureTrack fetches lyrics for one track and computes its metrics. Absence
// degrades to zero stats; the track is never dropped.
func (p *Pipeline) measureTrack(ctx context.Context, artist, track string) TrackReport {
	ctx = services.WithStage(services.WithTrack(ctx, track), "lyrics")
	log := logging.WithContext(ctx, p.logger)

	p.pacer.Wait(ctx)
	body, found := p.lyrics.Fetch(ctx, track, artist)
	if !found {
		log.Warn("lyrics unavailable, recording zero metrics")
		body = ""
	}

	stats := p.calculator.Compute(body)
	log.Debug("track measured",
		logging.Int("chars", stats.Chars),
		logging.Int("words", stats.Words),
		logging.Int("tokens", stats.Tokens),
		logging.Float64("tokens_per_word", stats.TokensPerWord))

	return TrackReport{
		Name:          track,
		LyricsFound:   found,
		Chars:         stats.Chars,
		Words:         stats.Words,
		Tokens:        stats.Tokens,
		TokensPerWord: stats.TokensPerWord,
		Hash:          stats.Hash,
	}
}
