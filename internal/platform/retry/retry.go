// Package retry implements a bounded exponential-backoff retry loop as an
// explicit (attempt, delay) state machine. Callers classify each failure as
// retryable or fatal; the loop is testable without real I/O by injecting a
// fake sleeper.
package retry

import (
	"context"
	"fmt"
	"time"
)

const delayMultiplier = 2

// Outcome is the result of classifying one attempt's error.
type Outcome int

const (
	// Success means the operation completed; stop retrying.
	Success Outcome = iota

	// RetryableFailure means the attempt failed but another may succeed.
	RetryableFailure

	// FatalFailure means retrying cannot help; stop immediately.
	FatalFailure
)

// Policy configures a retry loop.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialDelay is the wait before the second attempt; each subsequent
	// wait doubles.
	InitialDelay time.Duration
}

// Sleeper waits for the given duration or until the context is done.
// Production code uses Wait; tests inject a recorder.
type Sleeper func(ctx context.Context, d time.Duration) error

// Wait is the default Sleeper.
func Wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("retry wait: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// Classifier maps an attempt error to an Outcome. It is never called with a
// nil error.
type Classifier func(err error) Outcome

// Do runs op until it succeeds, fails fatally, or the attempt budget is
// exhausted. Returns nil on success and the last error otherwise.
func Do(ctx context.Context, p Policy, sleep Sleeper, classify Classifier, op func(ctx context.Context, attempt int) error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}

	if sleep == nil {
		sleep = Wait
	}

	var lastErr error

	delay := p.InitialDelay

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, delay); err != nil {
				return err
			}

			delay *= delayMultiplier
		}

		lastErr = op(ctx, attempt)
		if lastErr == nil {
			return nil
		}

		if classify != nil && classify(lastErr) == FatalFailure {
			return lastErr
		}
	}

	return lastErr
}
