package command

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/qrkit/core/logger"
)

type middlewareHandler struct {
	name string
	fn   func(ctx context.Context, payload any) error
}

func (m *middlewareHandler) Name() string { return m.name }

func (m *middlewareHandler) Handle(ctx context.Context, payload any) error {
	return m.fn(ctx, payload)
}

// Logging assigns an operation id to each command and logs its outcome.
// An existing operation id in the context is kept.
func Logging(log *slog.Logger) Middleware {
	if log == nil {
		log = slog.Default()
	}
	return func(next Handler) Handler {
		return &middlewareHandler{
			name: next.Name(),
			fn: func(ctx context.Context, payload any) error {
				if _, ok := logger.OperationIDFromContext(ctx); !ok {
					ctx = logger.WithOperationID(ctx, uuid.NewString())
				}

				start := time.Now()
				log.DebugContext(ctx, "command started", logger.Command(next.Name()))

				err := next.Handle(ctx, payload)
				if err != nil {
					log.ErrorContext(ctx, "command failed",
						logger.Command(next.Name()),
						logger.Outcome(false),
						logger.Elapsed(start),
						logger.Error(err),
					)
					return err
				}

				log.InfoContext(ctx, "command completed",
					logger.Command(next.Name()),
					logger.Outcome(true),
					logger.Elapsed(start),
				)
				return nil
			},
		}
	}
}
