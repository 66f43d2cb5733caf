// Package qrtool wires configuration, logging, the generator, the scanner
// and the console menu into a runnable application.
package qrtool

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/qrkit/core/config"
	"github.com/dmitrymomot/qrkit/core/logger"
	"github.com/dmitrymomot/qrkit/pkg/console"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrscan"
)

type App struct {
	config    Config
	logger    *slog.Logger
	in        io.Reader
	out       io.Writer
	generator console.Generator
	scanner   console.Scanner
}

type AppOption func(*App) error

// NewApp loads Config from the environment and applies opts.
func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return NewAppWithConfig(cfg, opts...)
}

// NewAppWithConfig builds an App from an explicit configuration.
func NewAppWithConfig(cfg Config, opts ...AppOption) (*App, error) {
	app := &App{
		config: cfg,
		in:     os.Stdin,
		out:    os.Stdout,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = newLogger(cfg, os.Stderr)
	}
	if app.generator == nil {
		app.generator = qrcode.NewGenerator(qrcode.WithLogger(app.logger))
	}
	if app.scanner == nil {
		app.scanner = qrscan.NewScanner(
			qrscan.WithLogger(app.logger),
			qrscan.WithTryHarder(cfg.ScanTryHarder),
		)
	}

	return app, nil
}

// Run starts the interactive menu and blocks until it exits.
func (a *App) Run(ctx context.Context) error {
	ctrl, err := console.New(a.in, a.out, a.generator, a.scanner,
		console.WithLogger(a.logger),
		console.WithDefaults(a.config.Defaults()),
	)
	if err != nil {
		return err
	}

	a.logger.DebugContext(ctx, "console started", logger.Component("app"))
	return ctrl.Run(ctx)
}

func WithLogger(l *slog.Logger) AppOption {
	return func(app *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = l
		return nil
	}
}

func WithIO(in io.Reader, out io.Writer) AppOption {
	return func(app *App) error {
		if in == nil || out == nil {
			return errors.New("input and output cannot be nil")
		}
		app.in = in
		app.out = out
		return nil
	}
}

func WithGenerator(g console.Generator) AppOption {
	return func(app *App) error {
		if g == nil {
			return errors.New("generator cannot be nil")
		}
		app.generator = g
		return nil
	}
}

func WithScanner(s console.Scanner) AppOption {
	return func(app *App) error {
		if s == nil {
			return errors.New("scanner cannot be nil")
		}
		app.scanner = s
		return nil
	}
}

func newLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutput(w),
		logger.WithAttr(slog.String("app", cfg.AppName)),
	}
	if strings.EqualFold(cfg.LogFormat, "json") {
		opts = append(opts, logger.WithJSONFormatter())
	}
	return logger.New(opts...)
}
