// Package config provides centralized configuration management for the
// bikeshare explorer. It loads settings from several sources, validates them,
// and owns the immutable city -> data file mapping handed to the loader.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Command line flags (applied by cmd/bikeshare, highest priority)
//	2. Environment variables
//	3. YAML configuration file
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern BIKESHARE_* for namespacing:
//
//	BIKESHARE_DATA_DIR=/srv/bikeshare
//	BIKESHARE_DATA_CITIES=chicago:chicago_2017.csv
//	BIKESHARE_LOGGING_LEVEL=debug
//	BIKESHARE_LOGGING_OUTPUT=file
//	BIKESHARE_EXPORT_DIR=reports
//	BIKESHARE_EXPORT_FORMAT=xlsx
//	BIKESHARE_TRACING_OUTPUT=file
//	BIKESHARE_TRACING_FILE_PATH=logs/trace.json
//
// # Cities
//
// The supported cities are fixed (chicago, new_york_city, washington).
// Configuration may only change where their files live:
//
//	paths, err := config.GetPaths(cfg, "")
//	cities, err := config.NewCities(paths.DataDir, cfg.Data.Cities)
//	path, ok := cities.Lookup(config.Chicago)
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load(*configFile)
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
