package middleware

import (
	"context"
	"time"
)

// Timeout returns middleware that enforces a per-operation deadline. When d
// is zero the middleware is a pass-through. When the deadline is exceeded
// the context is cancelled and the handler should return
// context.DeadlineExceeded.
func Timeout(d time.Duration) Middleware {
	return func(ctx context.Context, _ *Operation, next Handler) error {
		if d > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d)
			defer cancel()
		}
		return next(ctx)
	}
}
