// Package middleware provides composable middleware for booking operations.
// Middleware wraps operation calls synchronously and can modify execution
// (recover from panics, log, add tracing, etc.).
package middleware

import "context"

// Operation describes the booking operation being executed, for use by
// logging, tracing, and metrics middleware.
type Operation struct {
	// Name is the operation name, e.g. "allocation.create".
	Name string
	// AllocationID is the allocation acted on, when known.
	AllocationID string
	// VehicleID is the vehicle acted on, when known.
	VehicleID string
}

// Handler is the terminal function that executes operation logic.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic.
// It receives the current context, the operation being executed, and the
// next handler to call. Middleware MUST call next to continue the chain
// (unless short-circuiting on error).
type Middleware func(ctx context.Context, op *Operation, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, tracing) executes as:
//
//	logging → recover → tracing → handler
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, op *Operation, next Handler) error {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, op, prev)
			}
		}
		return h(ctx)
	}
}
