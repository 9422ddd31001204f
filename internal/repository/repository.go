package repository

import (
	"context"
	"time"
)

// storageTimeout bounds every storage operation. A request whose storage
// call exceeds it fails as a retryable transient error instead of hanging
// the worker.
const storageTimeout = 3 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storageTimeout)
}
