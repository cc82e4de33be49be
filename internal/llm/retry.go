package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAttempts    = 2
	defaultCallTimeout = 60 * time.Second
	retryBackoff       = 2 * time.Second
)

// RetryingCompleter decorates a Completer with a per-call timeout and a
// bounded retry with backoff, so an unresponsive completion service cannot
// hang the pipeline and a transient failure gets one more chance.
type RetryingCompleter struct {
	inner       Completer
	attempts    int
	callTimeout time.Duration
	backoff     time.Duration
	logger      *zap.Logger
}

func NewRetryingCompleter(inner Completer, logger *zap.Logger) *RetryingCompleter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryingCompleter{
		inner:       inner,
		attempts:    defaultAttempts,
		callTimeout: defaultCallTimeout,
		backoff:     retryBackoff,
		logger:      logger,
	}
}

func (r *RetryingCompleter) Complete(ctx context.Context, prompt string, shape Shape) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
		result, err := r.inner.Complete(callCtx, prompt, shape)
		cancel()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			// The run itself was cancelled; retrying would spin on a dead context.
			return "", ctx.Err()
		}
		if attempt < r.attempts {
			r.logger.Warn("completion call failed, retrying",
				zap.Int("attempt", attempt),
				zap.Error(err))
			select {
			case <-time.After(r.backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", lastErr
}
