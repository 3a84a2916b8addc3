package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// AwaitSchema runs once at process start, before the service accepts
// traffic or opens its subscription. It retries the supplied migrate
// step with a fixed delay until the schema is current or the attempt
// bound is exhausted; exhaustion is a fatal startup condition for the
// caller. Startup order across services is not guaranteed in
// orchestrated deployments, so the store may simply not be there yet.
func AwaitSchema(ctx context.Context, logger *slog.Logger, maxAttempts int, interval time.Duration, migrate func() error) error {
	if maxAttempts < 1 {
		return fmt.Errorf("readiness: max attempts must be at least 1, got %d", maxAttempts)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = migrate()
		if lastErr == nil {
			logger.InfoContext(ctx, "schema is current", "attempt", attempt)
			return nil
		}

		logger.WarnContext(ctx, "store not ready",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"error", lastErr,
		)

		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	return fmt.Errorf("schema not ready after %d attempts: %w", maxAttempts, lastErr)
}
