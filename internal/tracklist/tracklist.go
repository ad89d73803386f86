// Package tracklist infers an artist's debut album listing from a language
// model.
package tracklist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lyricagent/internal/logging"
	"lyricagent/internal/services"
	"lyricagent/internal/services/llm"
)

// Listing is a debut album name with its tracks in canonical album order.
// Order is semantically significant and preserved end to end.
type Listing struct {
	AlbumName string
	Tracks    []string
}

// ChatClient is the completion surface consumed by the inferrer.
type ChatClient interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Inferrer asks a chat model for an artist's debut album track listing.
type Inferrer struct {
	client ChatClient
	logger *slog.Logger
}

// NewInferrer constructs an Inferrer around the supplied chat client.
func NewInferrer(client ChatClient, logger *slog.Logger) *Inferrer {
	return &Inferrer{
		client: client,
		logger: logging.NewComponentLogger(logger, "tracklist"),
	}
}

type listingPayload struct {
	AlbumName string   `json:"album_name"`
	Songs     []string `json:"songs"`
}

// Infer returns the debut album listing for the artist. A malformed or empty
// response is a validation failure: the deterministic core has nothing to
// operate on without a track list, so the whole run aborts.
func (i *Inferrer) Infer(ctx context.Context, artist string) (Listing, error) {
	artist = strings.TrimSpace(artist)
	if artist == "" {
		return Listing{}, services.Wrap(services.ErrValidation, "tracklist", "infer", "artist required", nil)
	}

	log := logging.WithContext(ctx, i.logger)
	log.Info("inferring debut album", logging.String("artist", artist))

	userPrompt := fmt.Sprintf("Artist: %s", artist)
	content, err := i.client.CompleteJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		return Listing{}, services.Wrap(services.ErrExternalTool, "tracklist", "infer", "completion failed", err)
	}

	var payload listingPayload
	if err := llm.DecodeJSON(content, &payload); err != nil {
		return Listing{}, services.Wrap(services.ErrValidation, "tracklist", "infer", "parse listing payload", err)
	}

	listing := Listing{AlbumName: strings.TrimSpace(payload.AlbumName)}
	for _, song := range payload.Songs {
		if trimmed := strings.TrimSpace(song); trimmed != "" {
			listing.Tracks = append(listing.Tracks, trimmed)
		}
	}
	if listing.AlbumName == "" {
		return Listing{}, services.Wrap(services.ErrValidation, "tracklist", "infer", "listing has no album name", nil)
	}
	if len(listing.Tracks) == 0 {
		return Listing{}, services.Wrap(services.ErrValidation, "tracklist", "infer", "listing has no tracks", nil)
	}

	log.Info("debut album inferred",
		logging.String("album", listing.AlbumName),
		logging.Int("tracks", len(listing.Tracks)))
	return listing, nil
}
