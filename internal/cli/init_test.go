package cli

import (
	"context"
	"syscall"
	"testing"
	"time"

	"verkskra/internal/log"
)

func TestGracefulShutdownRunsCleanupOnSignal(t *testing.T) {
	logger := log.New(log.DefaultConfig())

	cleaned := make(chan struct{})
	ctx, done := GracefulShutdown(logger, time.Second, func(shutdownCtx context.Context) {
		if shutdownCtx.Err() != nil {
			t.Error("cleanup context expired before cleanup ran")
		}
		close(cleaned)
	})

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("send SIGTERM: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown context not cancelled after signal")
	}
	select {
	case <-cleaned:
	default:
		t.Error("cleanup did not run before context cancellation")
	}
	WaitForShutdown(ctx, done)
}
