// Package config loads the shared TOML configuration for the edassist
// client binaries, with ${VAR} environment expansion and validation.
package config
