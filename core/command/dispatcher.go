package command

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/qrkit/core/logger"
)

// Middleware wraps a handler with cross-cutting behavior.
type Middleware func(Handler) Handler

// Dispatcher routes commands to registered handlers synchronously.
type Dispatcher struct {
	mu         sync.RWMutex
	handlers   map[string]Handler
	middleware []Middleware
	logger     *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithMiddleware appends middleware applied to every handler at registration.
func WithMiddleware(mw ...Middleware) DispatcherOption {
	return func(d *Dispatcher) {
		d.middleware = append(d.middleware, mw...)
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds handlers. Each command name may be registered once.
func (d *Dispatcher) Register(handlers ...Handler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, h := range handlers {
		name := h.Name()
		if _, exists := d.handlers[name]; exists {
			return fmt.Errorf("%w: %s", ErrHandlerAlreadyRegistered, name)
		}
		d.handlers[name] = chainMiddleware(h, d.middleware)
	}
	return nil
}

// Dispatch runs the handler for cmd in the caller's goroutine.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd any) error {
	name := Name(cmd)

	d.mu.RLock()
	h, ok := d.handlers[name]
	d.mu.RUnlock()

	if !ok {
		d.logger.WarnContext(ctx, "command has no handler", logger.Command(name))
		return fmt.Errorf("%w: %s", ErrNoHandler, name)
	}

	return safeHandle(ctx, h, cmd)
}

// chainMiddleware applies middleware so that the first one is outermost.
func chainMiddleware(h Handler, middleware []Middleware) Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

// safeHandle converts a handler panic into an error.
func safeHandle(ctx context.Context, h Handler, payload any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrHandlerPanicked, h.Name(), r)
		}
	}()
	return h.Handle(ctx, payload)
}
