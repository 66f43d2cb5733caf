// Package logger builds structured loggers on top of log/slog.
//
// New returns a *slog.Logger configured through functional options:
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithJSONFormatter(),
//		logger.WithOutput(os.Stderr),
//		logger.WithAttr(slog.String("app", "qrtool")),
//	)
//
// Context extractors add attributes taken from the context passed to the
// *Context logging methods. The operation id set by WithOperationID is
// extracted by default:
//
//	ctx = logger.WithOperationID(ctx, id)
//	log.InfoContext(ctx, "qr code generated", logger.FilePath(path))
//	// ... operation_id=<id> path=<path>
//
// The attribute helpers return an empty slog.Attr for nil or empty input,
// which slog drops, so callers never need nil checks:
//
//	log.Error("scan failed", logger.Error(err), logger.Component("scanner"))
package logger
