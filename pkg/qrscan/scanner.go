package qrscan

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"

	"github.com/makiuchi-d/gozxing"
	multiqr "github.com/makiuchi-d/gozxing/multi/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/dmitrymomot/qrkit/core/logger"
)

type hints = map[gozxing.DecodeHintType]interface{}

type multiReader interface {
	DecodeMultiple(img *gozxing.BinaryBitmap, h hints) ([]*gozxing.Result, error)
}

// Scanner decodes QR codes from image files. It is safe for concurrent use.
type Scanner struct {
	logger    *slog.Logger
	tryHarder bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTryHarder toggles the decoder's slower, more thorough search.
// Enabled by default.
func WithTryHarder(enabled bool) Option {
	return func(s *Scanner) {
		s.tryHarder = enabled
	}
}

// NewScanner creates a Scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		logger:    slog.Default(),
		tryHarder: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckFile reports whether path names a readable regular file.
// It returns nil, ErrFileNotFound or ErrUnreadableFile.
func CheckFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrUnreadableFile, path)
	}
	return nil
}

// Scan loads the image at path and decodes every QR code in it.
// On failure it returns no records and a classified error.
func (s *Scanner) Scan(ctx context.Context, path string) ([]ScanRecord, error) {
	img, err := loadImage(path)
	if err != nil {
		s.logger.WarnContext(ctx, "image not scannable",
			logger.Component("scanner"),
			logger.FilePath(path),
			logger.Error(err),
		)
		return nil, err
	}

	records, err := s.ScanImage(ctx, img)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "qr codes decoded",
		logger.Component("scanner"),
		logger.FilePath(path),
		logger.Symbols(len(records)),
	)
	return records, nil
}

// ScanImage decodes every QR code in img.
func (s *Scanner) ScanImage(ctx context.Context, img image.Image) (records []ScanRecord, err error) {
	defer func() {
		r := recover()
		if r != nil {
			records = nil
			err = fmt.Errorf("%w: decoder panicked: %v", ErrDecodeFailed, r)
		}
		if err != nil && !errors.Is(err, ErrNoSymbolFound) {
			s.logger.ErrorContext(ctx, "qr decode failed",
				logger.Component("scanner"),
				logger.Error(err),
				logger.Panic(r),
			)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	if img == nil {
		return nil, ErrUnreadableImage
	}

	results, err := s.detect(img)
	if err != nil {
		return nil, err
	}

	records = make([]ScanRecord, 0, len(results))
	for _, res := range results {
		rec, repaired := newRecord(res, img.Bounds())
		if repaired {
			s.logger.WarnContext(ctx, "decoded payload is not valid utf-8, invalid bytes replaced",
				logger.Component("scanner"),
			)
		}
		records = append(records, rec)
	}
	return records, nil
}

// detect runs the multi-symbol reader and falls back to the single-symbol
// reader, which copes better with some lone symbols.
func (s *Scanner) detect(img image.Image) ([]*gozxing.Result, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	h := hints{}
	if s.tryHarder {
		h[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	var multi multiReader = multiqr.NewQRCodeMultiReader()
	results, err := multi.DecodeMultiple(bmp, h)
	if err == nil && len(results) > 0 {
		return results, nil
	}
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	res, err := qrcode.NewQRCodeReader().Decode(bmp, h)
	switch {
	case err == nil:
		return []*gozxing.Result{res}, nil
	case isNotFound(err):
		return nil, ErrNoSymbolFound
	default:
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
}

func isNotFound(err error) bool {
	var nf gozxing.NotFoundException
	return errors.As(err, &nf)
}

// loadImage performs the file checks and decodes the raster.
func loadImage(path string) (image.Image, error) {
	if err := CheckFile(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableImage, path, err)
	}
	return img, nil
}
