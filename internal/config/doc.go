// Package config loads and validates application configuration from the
// environment and optional YAML files.
package config
