// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Deploy-time secrets (database DSN, realtime feed API key) may be supplied
// through the environment or a .env file and override the yaml values.
package config
