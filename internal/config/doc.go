// Package config loads archlens configuration with spf13/viper.
//
// Precedence (highest to lowest):
//  1. CLI flags, passed to [Load] as overrides
//  2. Environment variables (ARCHLENS_MODEL, ARCHLENS_LIMITS_MAX_FILES, ...)
//  3. Config file ($XDG_CONFIG_HOME/archlens/config.yaml, else ./archlens.yaml)
//  4. Built-in defaults
//
// The API credential is not part of [Config]. [LoadCredential] reads
// CLAUDE_API_KEY from the environment or a .env file and validates its shape.
package config
