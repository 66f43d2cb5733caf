package qrcode

import (
	"strings"

	goqr "github.com/skip2/go-qrcode"
)

// Level is a QR error-correction level.
type Level int

const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

// DefaultLevel is used for unknown level tokens.
const DefaultLevel = LevelM

type levelInfo struct {
	name     string
	percent  string
	recovery goqr.RecoveryLevel
}

var levels = map[Level]levelInfo{
	LevelL: {name: "L", percent: "7%", recovery: goqr.Low},
	LevelM: {name: "M", percent: "15%", recovery: goqr.Medium},
	LevelQ: {name: "Q", percent: "25%", recovery: goqr.High},
	LevelH: {name: "H", percent: "30%", recovery: goqr.Highest},
}

// ParseLevel maps "L", "M", "Q" or "H" (any case, surrounding spaces
// ignored) to a Level. Anything else yields DefaultLevel.
func ParseLevel(token string) Level {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "L":
		return LevelL
	case "M":
		return LevelM
	case "Q":
		return LevelQ
	case "H":
		return LevelH
	default:
		return DefaultLevel
	}
}

// Normalize returns l if it is a known level, DefaultLevel otherwise.
func (l Level) Normalize() Level {
	if _, ok := levels[l]; ok {
		return l
	}
	return DefaultLevel
}

func (l Level) String() string {
	return levels[l.Normalize()].name
}

// Percent is the approximate share of codewords the level can restore.
func (l Level) Percent() string {
	return levels[l.Normalize()].percent
}

func (l Level) recovery() goqr.RecoveryLevel {
	return levels[l.Normalize()].recovery
}
