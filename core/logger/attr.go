package logger

import (
	"log/slog"
	"time"
)

// Helpers below return the empty Attr for nil or empty input, which slog
// drops, so callers never need a nil check before logging.

// Error logs err under "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Panic records a recovered panic value.
func Panic(v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.Any("panic", v)
}

func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

func OperationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String(operationIDKey, id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Command names the dispatched command, e.g. "GenerateQR".
func Command(name string) slog.Attr {
	return slog.String("command", name)
}

// Outcome is "success" or "failure".
func Outcome(ok bool) slog.Attr {
	if ok {
		return slog.String("outcome", "success")
	}
	return slog.String("outcome", "failure")
}

func FilePath(path string) slog.Attr {
	if path == "" {
		return slog.Attr{}
	}
	return slog.String("path", path)
}

// Symbol describes a generated QR symbol.
func Symbol(version, modules int, level string) slog.Attr {
	return slog.Group("symbol",
		slog.Int("version", version),
		slog.Int("modules", modules),
		slog.String("level", level),
	)
}

// Symbols counts decoded symbols.
func Symbols(n int) slog.Attr {
	return slog.Int("symbols", n)
}

// Input records a raw line the user typed.
func Input(line string) slog.Attr {
	return slog.String("input", line)
}
