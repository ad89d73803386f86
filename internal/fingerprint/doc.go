// Package fingerprint turns an album's ordered per-track token-count sequence
// into a single reproducible digest.
//
// The counts are joined, embedded by a pinned model, formatted with fixed
// precision, and hashed. Routing through the embedding expands the short
// count string into a high-dimensional, well-distributed hash input so that
// count strings differing by one character do not collide trivially.
package fingerprint
