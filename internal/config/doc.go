// Package config loads the epubkit TOML configuration.
//
// Configuration is optional. Load looks at an explicit path first, then
// ~/.config/epubkit/config.toml, then ./epubkit.toml, and falls back to
// Default when none exists. Values are normalised and validated before use.
package config
