package pipeline

import (
	"lyricagent/internal/metrics"
)

// TrackReport is the per-track slice of the run report. A track whose lyrics
// could not be fetched keeps its name with zeroed metrics and the digest of
// the empty text.
type TrackReport struct {
	Name          string  `json:"name"`
	LyricsFound   bool    `json:"lyrics_found"`
	Chars         int     `json:"char_count"`
	Words         int     `json:"word_count"`
	Tokens        int     `json:"token_count"`
	TokensPerWord float64 `json:"tokens_per_word"`
	Hash          string  `json:"lyrics_hash"`
}

// Report is the full result of a pipeline run.
type Report struct {
	RunID                 string        `json:"run_id"`
	Artist                string        `json:"artist"`
	AlbumName             string        `json:"album_name"`
	Tracks                []TrackReport `json:"tracks"`
	TotalTokens           int           `json:"total_tokens"`
	AverageTokensPerTrack float64       `json:"average_tokens_per_track"`
	Fingerprint           string        `json:"fingerprint"`
}

// TokenCounts returns the per-track token counts in album order. This is the
// sequence the fingerprint is derived from.
func (r *Report) TokenCounts() []int {
	counts := make([]int, len(r.Tracks))
	for i, track := range r.Tracks {
		counts[i] = track.Tokens
	}
	return counts
}

// aggregate fills TotalTokens and AverageTokensPerTrack from the track list.
// Tracks without lyrics contribute zero and still count toward the average.
func (r *Report) aggregate() {
	total := 0
	for _, track := range r.Tracks {
		total += track.Tokens
	}
	r.TotalTokens = total
	if len(r.Tracks) == 0 {
		r.AverageTokensPerTrack = 0
		return
	}
	r.AverageTokensPerTrack = metrics.Round2(float64(total) / float64(len(r.Tracks)))
}
