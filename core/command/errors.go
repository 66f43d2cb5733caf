package command

import "errors"

var (
	// ErrNoHandler is returned when a command has no registered handler.
	ErrNoHandler = errors.New("no handler registered for command")

	// ErrHandlerAlreadyRegistered is returned when registering a second handler for a command.
	ErrHandlerAlreadyRegistered = errors.New("handler already registered for command")

	// ErrHandlerPanicked wraps a panic recovered from a handler.
	ErrHandlerPanicked = errors.New("command handler panicked")

	// ErrInvalidPayload is returned when a handler receives a payload of the wrong type.
	ErrInvalidPayload = errors.New("invalid command payload")
)
