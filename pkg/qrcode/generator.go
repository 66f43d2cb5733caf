package qrcode

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goqr "github.com/skip2/go-qrcode"

	"github.com/dmitrymomot/qrkit/core/logger"
)

// Generator writes QR code images. It holds no per-call state and is safe
// for concurrent use.
type Generator struct {
	logger *slog.Logger
	encode func(payload string, level goqr.RecoveryLevel) (*goqr.QRCode, error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger: slog.Default(),
		encode: goqr.New,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate encodes req.Payload and writes the PNG to req.OutputPath.
// On any failure it returns a nil result and an error wrapping
// ErrEncodeFailed; the cause is logged.
func (g *Generator) Generate(ctx context.Context, req EncodeRequest) (res *EncodeResult, err error) {
	start := time.Now()
	req.Level = req.Level.Normalize()
	req.OutputPath = NormalizeFilename(req.OutputPath)

	defer func() {
		r := recover()
		if r != nil {
			res = nil
			err = fmt.Errorf("%w: encoder panicked: %v", ErrEncodeFailed, r)
		}
		if err != nil {
			g.logger.ErrorContext(ctx, "qr code generation failed",
				logger.Component("generator"),
				logger.FilePath(req.OutputPath),
				logger.Error(err),
				logger.Panic(r),
			)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}

	symbol, err := g.encode(req.Payload, req.Level.recovery())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	symbol.DisableBorder = true
	modules := symbol.Bitmap()

	img, err := render(modules, req.ModuleSize, req.Border)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}

	if err := writePNGFile(req.OutputPath, img); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}

	res = &EncodeResult{
		OutputPath:  req.OutputPath,
		Version:     symbol.VersionNumber,
		ModuleCount: len(modules),
		Level:       req.Level,
	}

	g.logger.InfoContext(ctx, "qr code generated",
		logger.Component("generator"),
		logger.FilePath(res.OutputPath),
		logger.Symbol(res.Version, res.ModuleCount, res.Level.String()),
		logger.Elapsed(start),
	)

	return res, nil
}
