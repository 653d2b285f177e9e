//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// shutdownContext is canceled on SIGINT or SIGTERM so the preview server can
// drain in-flight requests. Call stop() to restore default signal handling.
func shutdownContext(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
