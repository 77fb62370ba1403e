// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tickler/tickler.toml or OS-specific config directory)
// 3. Project config file (tickler.toml or .tickler.toml in the working directory)
// 4. Environment variables (TICKLER_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.tickler/tickler.toml (preferred)
// - Windows: %APPDATA%\tickler\tickler.toml
// - macOS: ~/Library/Application Support/tickler/tickler.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tickler/tickler.toml or ~/.config/tickler/tickler.toml
//
// Project-level config locations (overrides user config):
// - ./tickler.toml (preferred)
// - ./.tickler.toml
package config
