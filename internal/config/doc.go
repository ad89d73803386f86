// Package config loads, normalizes, and validates the TOML configuration for
// the agent.
//
// Load resolves the config path (explicit flag, then the user config dir,
// then a project-local lyricagent.toml), applies defaults, expands ~ in path
// fields, and pulls credentials from the environment when the file omits
// them. Structural validation happens at load time; credential checks are
// deferred to ValidateCredentials so offline subcommands work without keys.
package config
