// Package services centralizes error classification and context annotation
// shared by the collaborator clients and the pipeline.
//
// Stage code wraps failures with the sentinel errors defined here so the CLI
// can distinguish configuration problems from upstream outages without string
// matching. Context helpers carry the run identifier and stage/track labels
// that logging attaches to every line.
package services
