package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/qrkit/app/qrtool"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// A second signal terminates the process even if a decode call hangs.
	context.AfterFunc(ctx, stop)

	app, err := qrtool.NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrtool: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "qrtool: %v\n", err)
		os.Exit(1)
	}
}
