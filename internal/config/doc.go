// Package config loads application settings from defaults, an optional
// config.yaml and LEXIS_-prefixed environment variables, then validates them.
package config
