// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is loaded once on first use (a
// missing file is not an error) and github.com/caarlos0/env parses the
// environment into struct fields tagged with `env` and `envDefault`.
// Each configuration type is parsed once and cached, so later calls for
// the same type return the first result.
//
//	type ScannerConfig struct {
//		TryHarder bool `env:"QR_SCAN_TRY_HARDER" envDefault:"true"`
//	}
//
//	var cfg ScannerConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// MustLoad panics instead of returning an error and is meant for process
// startup.
package config
