package qrscan

import "errors"

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrUnreadableFile  = errors.New("file is not readable")
	ErrUnreadableImage = errors.New("could not read image")
	ErrNoSymbolFound   = errors.New("no qr code found in the image")
	ErrDecodeFailed    = errors.New("failed to decode qr code")
)
