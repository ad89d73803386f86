// Package logging assembles the structured slog loggers used across the
// agent.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with run IDs, stages, and track names without threading attributes by
// hand. Prefer these constructors over hand-rolled slog setup so every
// component emits data with the same shape.
package logging
