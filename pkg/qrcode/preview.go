package qrcode

import (
	"errors"
	"io"

	"github.com/mdp/qrterminal/v3"
)

// Preview prints payload as a half-block QR code for terminals.
// qrterminal has no Q level; Q previews at H.
func Preview(w io.Writer, payload string, level Level) error {
	if payload == "" {
		return ErrEmptyPayload
	}
	if w == nil {
		return errors.New("qrcode: nil preview writer")
	}

	lvl := qrterminal.M
	switch level.Normalize() {
	case LevelL:
		lvl = qrterminal.L
	case LevelQ, LevelH:
		lvl = qrterminal.H
	}

	qrterminal.GenerateHalfBlock(payload, lvl, w)
	return nil
}
