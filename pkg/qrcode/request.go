package qrcode

import "errors"

const (
	DefaultFilename   = "qr_code.png"
	DefaultModuleSize = 10
	DefaultBorder     = 4
)

// EncodeRequest describes a single QR code to write.
type EncodeRequest struct {
	Payload    string
	OutputPath string
	Level      Level
	ModuleSize int // pixels per module
	Border     int // quiet zone, in modules
}

// NewEncodeRequest returns a request for payload with default settings.
func NewEncodeRequest(payload string) EncodeRequest {
	return EncodeRequest{
		Payload:    payload,
		OutputPath: DefaultFilename,
		Level:      DefaultLevel,
		ModuleSize: DefaultModuleSize,
		Border:     DefaultBorder,
	}
}

// Validate checks the request fields. Level is not checked: unknown
// levels are normalized to DefaultLevel.
func (r EncodeRequest) Validate() error {
	var errs []error
	if r.Payload == "" {
		errs = append(errs, ErrEmptyPayload)
	}
	if r.ModuleSize <= 0 {
		errs = append(errs, ErrInvalidModuleSize)
	}
	if r.Border < 0 {
		errs = append(errs, ErrInvalidBorder)
	}
	return errors.Join(errs...)
}

// EncodeResult describes a written QR code.
type EncodeResult struct {
	OutputPath  string
	Version     int // 1..40, chosen to fit payload and level
	ModuleCount int // symbol side in modules, border excluded
	Level       Level
}
