// Package config loads and validates the addaudio TOML configuration.
//
// Configuration is resolved from an explicit --config flag, then
// ~/.config/addaudio/config.toml, then ./addaudio.toml, falling back to
// built-in defaults when no file exists. All path values support ~
// expansion and are normalized to absolute paths.
package config
