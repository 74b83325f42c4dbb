package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout creates a context with a test timeout
func ContextWithTimeout(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(func() {
		cancel()
	})
	return ctx, cancel
}

// DefaultTestContext creates a context with a 60-second timeout, enough for
// a full provisioning run against a container
func DefaultTestContext(t *testing.T) context.Context {
	ctx, _ := ContextWithTimeout(t, 60*time.Second)
	return ctx
}
