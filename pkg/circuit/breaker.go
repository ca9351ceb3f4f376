// Package circuit provides the circuit breaker that sits in front of
// minegate's remote dependencies: the miner service, the Kafka publisher and
// the session history store.
package circuit

import (
	"context"
	"sync"
	"time"

	"github.com/bardlex/minegate/pkg/errors"
)

// State represents the circuit breaker state
type State int

const (
	// StateClosed lets every call through
	StateClosed State = iota
	// StateOpen rejects calls until OpenTimeout has passed
	StateOpen
	// StateHalfOpen lets probe calls through to test recovery
	StateHalfOpen
)

// String returns string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config holds circuit breaker configuration
type Config struct {
	// Name identifies the guarded dependency in errors and callbacks
	Name string

	MaxFailures     int           // consecutive failures that open the circuit
	SuccessRequired int           // half-open successes that close it again
	OpenTimeout     time.Duration // time spent open before probing
	FailureWindow   time.Duration // failures older than this are forgotten while closed

	// Trips reports whether err counts as a failure. A nil Trips counts
	// every non-nil error. Errors that do not trip are recorded as successes.
	Trips func(err error) bool

	// OnStateChange is called after every transition, outside the lock
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig(name string) *Config {
	return &Config{
		Name:            name,
		MaxFailures:     5,
		SuccessRequired: 3,
		OpenTimeout:     30 * time.Second,
		FailureWindow:   60 * time.Second,
	}
}

// Breaker implements the circuit breaker pattern
type Breaker struct {
	config *Config
	now    func() time.Time

	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	openedAt    time.Time
	windowStart time.Time
}

// New creates a new circuit breaker
func New(config *Config) *Breaker {
	if config == nil {
		config = DefaultConfig("")
	}

	b := &Breaker{
		config: config,
		now:    time.Now,
		state:  StateClosed,
	}
	b.windowStart = b.now()
	return b
}

// Execute runs fn unless the circuit is open. A context that is already
// done fails fast and is not counted.
func (b *Breaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if retryIn, ok := b.allow(); !ok {
		return errors.New(errors.ErrorTypeUnavailable, "circuit_breaker", "circuit breaker is open").
			WithContext("breaker", b.config.Name).
			WithContext("retry_in", retryIn.String())
	}

	err := fn(ctx)
	b.record(err)
	return err
}

// allow reports whether a call may proceed, or how long the circuit stays open
func (b *Breaker) allow() (time.Duration, bool) {
	b.mu.Lock()
	now := b.now()

	var changed bool
	from := b.state

	switch b.state {
	case StateClosed:
		if b.config.FailureWindow > 0 && now.Sub(b.windowStart) > b.config.FailureWindow {
			b.failures = 0
			b.windowStart = now
		}

	case StateOpen:
		remaining := b.config.OpenTimeout - now.Sub(b.openedAt)
		if remaining > 0 {
			b.mu.Unlock()
			return remaining, false
		}
		b.state = StateHalfOpen
		b.successes = 0
		changed = true
	}

	to := b.state
	b.mu.Unlock()

	if changed {
		b.notify(from, to)
	}
	return 0, true
}

func (b *Breaker) trips(err error) bool {
	if err == nil {
		return false
	}
	if b.config.Trips == nil {
		return true
	}
	return b.config.Trips(err)
}

// record updates counters with the outcome of one call
func (b *Breaker) record(err error) {
	failed := b.trips(err)

	b.mu.Lock()
	from := b.state

	if failed {
		b.failures++
		if b.state == StateHalfOpen || (b.state == StateClosed && b.failures >= b.config.MaxFailures) {
			b.state = StateOpen
			b.openedAt = b.now()
			b.successes = 0
		}
	} else {
		switch b.state {
		case StateHalfOpen:
			b.successes++
			if b.successes >= b.config.SuccessRequired {
				b.state = StateClosed
				b.failures = 0
				b.successes = 0
				b.windowStart = b.now()
			}
		case StateClosed:
			b.failures = 0
		}
	}

	to := b.state
	b.mu.Unlock()

	if from != to {
		b.notify(from, to)
	}
}

func (b *Breaker) notify(from, to State) {
	if b.config.OnStateChange != nil {
		b.config.OnStateChange(b.config.Name, from, to)
	}
}

// State returns the current state. An open circuit whose timeout has passed
// still reports open until the next call probes it.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Stats is a snapshot of the breaker counters
type Stats struct {
	Name      string
	State     State
	Failures  int
	Successes int
	OpenedAt  time.Time
}

// Stats returns a snapshot of the breaker counters
func (b *Breaker) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Stats{
		Name:      b.config.Name,
		State:     b.state,
		Failures:  b.failures,
		Successes: b.successes,
		OpenedAt:  b.openedAt,
	}
}
