// Package command dispatches typed commands to their handlers.
//
// A command is any struct value; its name is derived from the type name.
// Handlers are registered with a Dispatcher and executed synchronously in
// the caller's goroutine. Handler panics are recovered and returned as
// errors wrapping ErrHandlerPanicked, so a misbehaving collaborator never
// takes the caller down.
//
//	type ScanQR struct{ Path string }
//
//	d := command.NewDispatcher(command.WithMiddleware(command.Logging(log)))
//	_ = d.Register(command.NewHandlerFunc(func(ctx context.Context, c ScanQR) error {
//		return scan(ctx, c.Path)
//	}))
//
//	err := d.Dispatch(ctx, ScanQR{Path: "code.png"})
//
// Middleware wraps every handler; the first middleware passed is the
// outermost. Logging assigns each dispatch an operation id (a UUID) that
// is stored in the context for downstream log lines.
package command
