package middleware

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns middleware that logs operation start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, op *Operation, next Handler) error {
		logger.Info("operation started",
			slog.String("operation", op.Name),
			slog.String("allocation_id", op.AllocationID),
			slog.String("vehicle_id", op.VehicleID),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("operation failed",
				slog.String("operation", op.Name),
				slog.String("allocation_id", op.AllocationID),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("operation completed",
				slog.String("operation", op.Name),
				slog.String("allocation_id", op.AllocationID),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}
