package logger

import (
	"context"
	"log/slog"
)

const operationIDKey = "operation_id"

type operationIDCtxKey struct{}

// ContextExtractor pulls an attribute out of a context.
// It reports false when the context carries nothing relevant.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// WithOperationID returns a copy of ctx carrying the operation id.
func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDCtxKey{}, id)
}

// OperationIDFromContext returns the operation id stored in ctx, if any.
func OperationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operationIDCtxKey{}).(string)
	return id, ok && id != ""
}

func operationIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := OperationIDFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return OperationID(id), true
}

// contextHandler decorates a slog.Handler with attributes taken from the record's context.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		for _, extract := range h.extractors {
			if attr, ok := extract(ctx); ok {
				r.AddAttrs(attr)
			}
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
