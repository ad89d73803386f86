package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"lyricagent/internal/config"
	"lyricagent/internal/fingerprint"
	"lyricagent/internal/identity"
	"lyricagent/internal/logging"
	"lyricagent/internal/lyrics"
	"lyricagent/internal/lyricscache"
	"lyricagent/internal/metrics"
	"lyricagent/internal/pipeline"
	"lyricagent/internal/services/apify"
	"lyricagent/internal/services/embedding"
	"lyricagent/internal/services/llm"
	"lyricagent/internal/tracklist"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var outputFormat string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "run <video-url>",
		Short: "Resolve the artist behind a video and fingerprint their debut album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateCredentials(); err != nil {
				return err
			}
			if err := validateOutputFormat(outputFormat); err != nil {
				return err
			}

			logger := ctx.logger()

			lock := flock.New(filepath.Join(cfg.Paths.LogDir, "lyricagent.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another lyricagent run is already in progress")
			}
			defer func() { _ = lock.Unlock() }()

			p, cleanup, err := buildPipeline(cfg, logger, noCache)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := p.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderReport(cmd, report, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, or hash")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the lyrics cache for this run")
	return cmd
}

func validateOutputFormat(format string) error {
	switch format {
	case "table", "json", "hash":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected table, json, or hash)", format)
	}
}

// buildPipeline assembles the full pipeline from configuration. The returned
// cleanup closes any resources the pipeline holds open.
func buildPipeline(cfg *config.Config, logger *slog.Logger, noCache bool) (*pipeline.Pipeline, func(), error) {
	cleanup := func() {}

	apifyClient, err := apify.New(cfg.Apify.Token, cfg.Apify.BaseURL,
		apify.WithTimeout(time.Duration(cfg.Apify.TimeoutSeconds)*time.Second))
	if err != nil {
		return nil, cleanup, fmt.Errorf("build apify client: %w", err)
	}

	llmClient := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})

	embedClient, err := embedding.New(cfg.Embedding.BaseURL, cfg.Embedding.APIKey, cfg.Embedding.Model,
		embedding.WithTimeout(time.Duration(cfg.Embedding.TimeoutSeconds)*time.Second))
	if err != nil {
		return nil, cleanup, fmt.Errorf("build embedding client: %w", err)
	}

	tokenizer, err := metrics.NewBPETokenizer()
	if err != nil {
		return nil, cleanup, fmt.Errorf("load tokenizer: %w", err)
	}

	var source lyrics.Source = lyrics.NewGeniusSource(apifyClient, cfg.Apify.ScraperActor, cfg.Apify.ProxyGroup, logger)
	if cfg.Cache.Enabled && !noCache {
		cache, cacheErr := lyricscache.Open(cfg.Cache.Path)
		if cacheErr != nil {
			logger.Warn("lyrics cache unavailable, continuing without it", logging.Error(cacheErr))
		} else {
			cleanup = func() { _ = cache.Close() }
			source = lyricscache.NewCachingSource(source, cache, logger)
		}
	}

	p := pipeline.New(
		identity.NewResolver(apifyClient, cfg.Apify.VideoActor, logger),
		tracklist.NewInferrer(llmClient, logger),
		source,
		metrics.NewCalculator(tokenizer),
		fingerprint.NewGenerator(embedClient),
		pipeline.NewPacer(cfg.Pacing.MinSeconds, cfg.Pacing.MaxSeconds),
		logger,
	)
	return p, cleanup, nil
}

func renderReport(cmd *cobra.Command, report *pipeline.Report, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return writeJSON(cmd, report)
	case "hash":
		fmt.Fprintln(out, report.Fingerprint)
		return nil
	}

	rows := make([][]string, 0, len(report.Tracks))
	for _, track := range report.Tracks {
		rows = append(rows, []string{
			track.Name,
			yesNo(track.LyricsFound),
			strconv.Itoa(track.Chars),
			strconv.Itoa(track.Words),
			strconv.Itoa(track.Tokens),
			strconv.FormatFloat(track.TokensPerWord, 'f', 2, 64),
			track.Hash,
		})
	}
	fmt.Fprintf(out, "Artist: %s\n", report.Artist)
	fmt.Fprintf(out, "Album:  %s\n", report.AlbumName)
	fmt.Fprintln(out, renderTable(
		[]string{"Track", "Lyrics", "Chars", "Words", "Tokens", "Tok/Word", "Hash"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))
	fmt.Fprintf(out, "Total tokens: %d\n", report.TotalTokens)
	fmt.Fprintf(out, "Average tokens per track: %s\n", strconv.FormatFloat(report.AverageTokensPerTrack, 'f', 2, 64))
	fmt.Fprintf(out, "Fingerprint: %s\n", report.Fingerprint)
	return nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
