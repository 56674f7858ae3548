// internal/retry/retry.go
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

// Policy defines retry behavior with exponential backoff
type Policy struct {
	MaxAttempts          int           // Total attempts, the first one included
	InitialBackoff       time.Duration // Wait before the second attempt
	MaxBackoff           time.Duration // Upper bound for any single wait
	Multiplier           float64       // Backoff growth per attempt
	RetryableStatusCodes []int         // HTTP statuses worth another attempt
}

// DefaultPolicy makes a single attempt. Raising MaxAttempts opts in to
// reloading a page that answered with a throttling or server error status.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    1,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     10 * time.Second,
		Multiplier:     2.0,
		RetryableStatusCodes: []int{
			http.StatusTooManyRequests,     // 429
			http.StatusInternalServerError, // 500
			http.StatusBadGateway,          // 502
			http.StatusServiceUnavailable,  // 503
			http.StatusGatewayTimeout,      // 504
		},
	}
}

// StatusCoder is implemented by errors that carry an HTTP status code
type StatusCoder interface {
	StatusCode() int
}

// Do calls fn until it succeeds, returns an error that is not retryable, or
// the policy runs out of attempts. Backoff waits end early when ctx is done.
func Do(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.MaxAttempts, 1)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 0 {
				log.Debug().Int("attempts", attempt+1).Msg("Retry succeeded")
			}
			return nil
		}
		lastErr = err

		if !p.retryable(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}

		backoff := p.backoff(attempt)
		log.Debug().
			Int("attempt", attempt+1).
			Int("max_attempts", attempts).
			Dur("backoff", backoff).
			Err(err).
			Msg("Retrying after backoff")

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}

	if attempts == 1 {
		return lastErr
	}
	log.Warn().Int("attempts", attempts).Err(lastErr).Msg("Max retry attempts exceeded")
	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

// backoff returns InitialBackoff * Multiplier^attempt, capped at MaxBackoff
func (p Policy) backoff(attempt int) time.Duration {
	d := float64(p.InitialBackoff) * math.Pow(p.Multiplier, float64(attempt))
	if p.MaxBackoff > 0 && d > float64(p.MaxBackoff) {
		d = float64(p.MaxBackoff)
	}
	return time.Duration(d)
}

// retryable reports whether err carries one of the retryable status codes.
// Timeouts are not retried: each one already used up its full budget.
func (p Policy) retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var sc StatusCoder
	if !errors.As(err, &sc) {
		return false
	}
	return slices.Contains(p.RetryableStatusCodes, sc.StatusCode())
}
