package qrtool

import (
	"github.com/dmitrymomot/qrkit/pkg/console"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
)

// Config holds the tool settings read from the environment.
type Config struct {
	AppName   string `env:"APP_NAME" envDefault:"qrtool"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	DefaultFilename string `env:"QR_DEFAULT_FILENAME" envDefault:"qr_code.png"`
	ErrorCorrection string `env:"QR_ERROR_CORRECTION" envDefault:"M"`
	ModuleSize      int    `env:"QR_MODULE_SIZE" envDefault:"10"`
	Border          int    `env:"QR_BORDER" envDefault:"4"`
	TerminalPreview bool   `env:"QR_TERMINAL_PREVIEW" envDefault:"false"`

	ScanTryHarder bool `env:"QR_SCAN_TRY_HARDER" envDefault:"true"`
}

// DefaultConfig returns the settings used when no environment is set.
func DefaultConfig() Config {
	return Config{
		AppName:         "qrtool",
		LogLevel:        "warn",
		LogFormat:       "text",
		DefaultFilename: qrcode.DefaultFilename,
		ErrorCorrection: "M",
		ModuleSize:      qrcode.DefaultModuleSize,
		Border:          qrcode.DefaultBorder,
		ScanTryHarder:   true,
	}
}

// Defaults converts the generation settings for the console. Invalid
// sizes fall back to the package defaults rather than failing later on
// every generation.
func (c Config) Defaults() console.Defaults {
	d := console.Defaults{
		Filename:   qrcode.NormalizeFilename(c.DefaultFilename),
		Level:      qrcode.ParseLevel(c.ErrorCorrection),
		ModuleSize: c.ModuleSize,
		Border:     c.Border,
		Preview:    c.TerminalPreview,
	}
	if d.ModuleSize <= 0 {
		d.ModuleSize = qrcode.DefaultModuleSize
	}
	if d.Border < 0 {
		d.Border = qrcode.DefaultBorder
	}
	return d
}
