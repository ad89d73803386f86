// Package pipeline orchestrates a full analysis run: artist identity from a
// video URL, debut album tracklist inference, per-track lyrics retrieval and
// metrics, and the aggregate album fingerprint.
package pipeline
