// Package config provides configuration management for the importer.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults declared as struct tags on the partial
// configs.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into
// subsections owned by their packages:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL/SQLite connection details
//   - Storage: bucket endpoint, credentials and public URL settings
//   - Log: logging level and format
//
// Validate and its ValidateStorage/ValidateDatabase variants report missing
// required values as ErrIncomplete before a run touches the bucket or the
// database.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
