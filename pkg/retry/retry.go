// Package retry re-runs auxiliary operations with exponential backoff.
// Miner RPCs issued on behalf of an HTTP request are never retried; the
// policies here serve the startup readiness probe, the event publisher and
// the history store.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/bardlex/minegate/pkg/errors"
)

// Policy describes how often and how patiently an operation is retried
type Policy struct {
	Attempts int           // total tries, including the first
	Initial  time.Duration // delay after the first failure
	Max      time.Duration // ceiling for any single delay
	Factor   float64       // growth per attempt
	Jitter   float64       // random extra delay as a fraction of the delay, 0 disables

	// AttemptTimeout bounds each try on its own. Zero leaves only the
	// caller's deadline.
	AttemptTimeout time.Duration

	// Retryable decides whether a failure is worth another try. Nil uses
	// errors.IsRetryable.
	Retryable func(err error) bool

	// OnRetry is called before each backoff sleep
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Probe is the policy for waiting on the miner service at startup
func Probe() Policy {
	return Policy{
		Attempts:       5,
		Initial:        250 * time.Millisecond,
		Max:            4 * time.Second,
		Factor:         2,
		Jitter:         0.1,
		AttemptTimeout: time.Second,
	}
}

// Publish is the policy for event publishing
func Publish() Policy {
	return Policy{
		Attempts: 3,
		Initial:  50 * time.Millisecond,
		Max:      time.Second,
		Factor:   1.5,
		Jitter:   0.1,
	}
}

// Storage is the policy for session history writes
func Storage() Policy {
	return Policy{
		Attempts: 3,
		Initial:  100 * time.Millisecond,
		Max:      2 * time.Second,
		Factor:   2,
		Jitter:   0.1,
	}
}

// Do runs fn until it succeeds, fails with a non-retryable error, runs out
// of attempts or ctx ends. Exhausting the attempts keeps the type of the
// last error.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := max(p.Attempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = p.try(ctx, fn)
		if lastErr == nil {
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !p.retryable(lastErr) || attempt == attempts {
			break
		}

		delay := p.Backoff(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	if !p.retryable(lastErr) || attempts == 1 {
		return lastErr
	}

	return errors.Wrap(lastErr, errors.TypeOf(lastErr), "retry", "gave up after repeated failures").
		WithContext("attempts", attempts)
}

func (p Policy) try(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.AttemptTimeout <= 0 {
		return fn(ctx)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, p.AttemptTimeout)
	defer cancel()
	return fn(attemptCtx)
}

func (p Policy) retryable(err error) bool {
	if p.Retryable != nil {
		return p.Retryable(err)
	}
	return errors.IsRetryable(err)
}

// Backoff returns the sleep that follows the given failed attempt, counted from 1
func (p Policy) Backoff(attempt int) time.Duration {
	factor := p.Factor
	if factor < 1 {
		factor = 1
	}

	delay := float64(p.Initial) * math.Pow(factor, float64(attempt-1))
	if p.Max > 0 {
		delay = min(delay, float64(p.Max))
	}
	if p.Jitter > 0 {
		delay += delay * p.Jitter * rand.Float64()
	}

	return time.Duration(delay)
}
