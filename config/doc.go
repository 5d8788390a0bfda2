// Package config loads rope and history settings from TOML files and
// optionally watches them for changes.
package config
