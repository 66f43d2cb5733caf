package qrcode

import "errors"

var (
	// ErrEncodeFailed marks every generation failure.
	// Specific causes below are joined with it.
	ErrEncodeFailed = errors.New("failed to generate qr code")

	ErrEmptyPayload      = errors.New("payload cannot be empty")
	ErrInvalidModuleSize = errors.New("module size must be positive")
	ErrInvalidBorder     = errors.New("border width cannot be negative")
	ErrImageTooLarge     = errors.New("rendered image exceeds maximum dimension")
)
