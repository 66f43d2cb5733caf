package command

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Handler processes a single command type.
type Handler interface {
	// Name returns the command name this handler processes.
	Name() string

	// Handle executes the handler with the given command payload.
	Handle(ctx context.Context, payload any) error
}

// HandlerFunc adapts a typed function to Handler.
type HandlerFunc[T any] struct {
	name string
	fn   func(context.Context, T) error
}

// NewHandlerFunc creates a handler whose command name is derived from T.
func NewHandlerFunc[T any](fn func(context.Context, T) error) Handler {
	return &HandlerFunc[T]{
		name: commandName(reflect.TypeFor[T]()),
		fn:   fn,
	}
}

// Name returns the command name this handler processes.
func (h *HandlerFunc[T]) Name() string {
	return h.name
}

// Handle executes the wrapped function if payload is a T.
func (h *HandlerFunc[T]) Handle(ctx context.Context, payload any) error {
	cmd, ok := payload.(T)
	if !ok {
		return fmt.Errorf("%w: expected %s, got %T", ErrInvalidPayload, h.name, payload)
	}
	return h.fn(ctx, cmd)
}

// Name returns the command name for a command value.
func Name(cmd any) string {
	if cmd == nil {
		return "<nil>"
	}
	return commandName(reflect.TypeOf(cmd))
}

var nameCache sync.Map // reflect.Type -> string

// commandName returns the type name, dereferencing pointers.
func commandName(t reflect.Type) string {
	if name, ok := nameCache.Load(t); ok {
		return name.(string)
	}

	original := t
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}

	nameCache.Store(original, name)
	return name
}
