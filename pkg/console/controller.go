package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/dmitrymomot/qrkit/core/command"
	"github.com/dmitrymomot/qrkit/core/logger"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrscan"
)

// Generator writes a QR code image.
type Generator interface {
	Generate(ctx context.Context, req qrcode.EncodeRequest) (*qrcode.EncodeResult, error)
}

// Scanner decodes QR codes from an image file.
type Scanner interface {
	Scan(ctx context.Context, path string) ([]qrscan.ScanRecord, error)
}

// Defaults are the generation parameters the menu does not prompt for.
type Defaults struct {
	Filename   string
	Level      qrcode.Level
	ModuleSize int
	Border     int
	Preview    bool // print a terminal rendering after generating
}

// DefaultDefaults mirrors qrcode.NewEncodeRequest.
func DefaultDefaults() Defaults {
	return Defaults{
		Filename:   qrcode.DefaultFilename,
		Level:      qrcode.DefaultLevel,
		ModuleSize: qrcode.DefaultModuleSize,
		Border:     qrcode.DefaultBorder,
	}
}

// GenerateQR asks the generator to write one QR code.
type GenerateQR struct {
	Request qrcode.EncodeRequest
}

// ScanQR asks the scanner to decode an image file.
type ScanQR struct {
	Path string
}

// Controller runs the interactive menu. It is not safe for concurrent use.
type Controller struct {
	in         *bufio.Reader
	lines      chan inputLine
	readOnce   sync.Once
	out        io.Writer
	generator  Generator
	scanner    Scanner
	dispatcher *command.Dispatcher
	logger     *slog.Logger
	defaults   Defaults
	getwd      func() (string, error)
	state      State
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDefaults overrides the generation defaults.
func WithDefaults(d Defaults) Option {
	return func(c *Controller) {
		c.defaults = d
	}
}

// WithWorkingDir overrides how the working directory is resolved for
// messages and absolute paths.
func WithWorkingDir(getwd func() (string, error)) Option {
	return func(c *Controller) {
		if getwd != nil {
			c.getwd = getwd
		}
	}
}

// New creates a Controller reading from in and writing to out.
func New(in io.Reader, out io.Writer, gen Generator, scan Scanner, opts ...Option) (*Controller, error) {
	if in == nil || out == nil {
		return nil, errors.New("console: input and output are required")
	}
	if gen == nil || scan == nil {
		return nil, errors.New("console: generator and scanner are required")
	}

	c := &Controller{
		in:        bufio.NewReader(in),
		lines:     make(chan inputLine, 1),
		out:       out,
		generator: gen,
		scanner:   scan,
		logger:    slog.Default(),
		defaults:  DefaultDefaults(),
		getwd:     os.Getwd,
		state:     MenuWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.defaults.Filename = qrcode.NormalizeFilename(c.defaults.Filename)

	c.dispatcher = command.NewDispatcher(
		command.WithLogger(c.logger),
		command.WithMiddleware(command.Logging(c.logger)),
	)
	if err := c.dispatcher.Register(
		command.NewHandlerFunc(c.handleGenerate),
		command.NewHandlerFunc(c.handleScan),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// State returns the current loop state.
func (c *Controller) State() State {
	return c.state
}

// Run blocks until the operator exits, input ends or ctx is cancelled,
// including while it waits at a prompt. Operation failures are reported on
// the output and never end the loop; only a read error other than io.EOF
// is returned.
func (c *Controller) Run(ctx context.Context) error {
	c.printHeader()

	for {
		if ctx.Err() != nil {
			c.exit()
			return nil
		}

		c.state = MenuWait
		c.printMenu()

		choice, err := c.prompt(ctx, "\nEnter your choice: ")
		if err == nil {
			switch choice {
			case "1":
				err = c.generateFlow(ctx)
			case "2":
				err = c.scanFlow(ctx)
			case "3":
				c.exit()
				return nil
			default:
				c.logger.DebugContext(ctx, "invalid menu choice", logger.Input(choice))
				c.println("\n Invalid choice! Please enter 1, 2, or 3.")
			}
		}

		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.exit()
			return nil
		}
		if err != nil {
			c.state = Exited
			return fmt.Errorf("console: read input: %w", err)
		}
	}
}

type inputLine struct {
	text string
	err  error
}

// readLines feeds c.lines until the input fails or ends. It may stay
// blocked on a read after Run returns; the input is owned by the caller.
func (c *Controller) readLines() {
	defer close(c.lines)
	for {
		text, err := c.in.ReadString('\n')
		c.lines <- inputLine{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// prompt writes label and returns the next input line without
// surrounding whitespace. A final line without a newline is still
// returned; io.EOF is returned only when nothing was read. A cancelled
// ctx unblocks the wait and returns ctx.Err().
func (c *Controller) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)
	c.readOnce.Do(func() { go c.readLines() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil && !(errors.Is(l.err, io.EOF) && l.text != "") {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// dispatch runs cmd. Expected failures are reported by the handlers
// themselves; anything else gets a generic message.
func (c *Controller) dispatch(ctx context.Context, cmd any) {
	err := c.dispatcher.Dispatch(ctx, cmd)
	if errors.Is(err, command.ErrHandlerPanicked) || errors.Is(err, command.ErrNoHandler) {
		c.logger.ErrorContext(ctx, "command aborted", logger.Error(err))
		c.printf("\n Unexpected error: %v\n", err)
	}
}

func (c *Controller) exit() {
	c.state = Exited
	c.println("\n" + rule)
	c.println("Thank you for using QR Code Tool!")
	c.println(rule + "\n")
}
