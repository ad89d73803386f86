// Package llm provides an OpenRouter-compatible chat client used for
// tracklist inference.
//
// The client sends system/user prompts with a JSON response format and
// returns the raw payload; DecodeJSON tolerates the usual model formatting
// quirks (code fences, surrounding prose). Transport-level retries cover HTTP
// 408/429/5xx and network timeouts with exponential backoff; context
// cancellation aborts immediately. These retries are transport plumbing, not
// pipeline policy: a completion that decodes to garbage is a fatal
// validation error upstream.
package llm
