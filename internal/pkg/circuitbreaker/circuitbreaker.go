// Package circuitbreaker stops calls to a failing dependency for a cool-down
// period so requests do not each wait on its timeouts.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned while the breaker rejects calls
var ErrOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state
type State int

const (
	// StateClosed lets every call through
	StateClosed State = iota
	// StateOpen rejects calls until the cool-down elapses
	StateOpen
	// StateHalfOpen lets a single probe call through
	StateHalfOpen
)

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
	// Name identifies the protected dependency in logs and metrics
	Name string
	// MaxFailures is the number of consecutive failures that opens the circuit
	MaxFailures int
	// Cooldown is how long the circuit stays open before a probe is allowed
	Cooldown time.Duration
	// OnStateChange is called synchronously, with the breaker unlocked, after each transition
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns a default circuit breaker configuration
func DefaultConfig(name string) Config {
	return Config{
		Name:        name,
		MaxFailures: 3,
		Cooldown:    10 * time.Second,
	}
}

// CircuitBreaker guards calls to one dependency
type CircuitBreaker struct {
	config Config
	now    func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// New creates a circuit breaker. Non-positive limits fall back to DefaultConfig.
func New(config Config) *CircuitBreaker {
	def := DefaultConfig(config.Name)
	if config.MaxFailures <= 0 {
		config.MaxFailures = def.MaxFailures
	}
	if config.Cooldown <= 0 {
		config.Cooldown = def.Cooldown
	}

	return &CircuitBreaker{
		config: config,
		now:    time.Now,
	}
}

// Execute runs fn unless the circuit is open. A failing fn counts towards
// opening the circuit; context cancellation by the caller does not.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.acquire(); err != nil {
		return err
	}

	err := fn(ctx)
	failed := err != nil && !errors.Is(err, context.Canceled)
	cb.release(failed)
	return err
}

// acquire decides whether a call may proceed
func (cb *CircuitBreaker) acquire() error {
	cb.mu.Lock()
	var from, to State
	changed := false

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.config.Cooldown {
			cb.mu.Unlock()
			return ErrOpen
		}
		from, to, changed = cb.state, StateHalfOpen, true
		cb.state = StateHalfOpen
		cb.probing = true
	case StateHalfOpen:
		if cb.probing {
			cb.mu.Unlock()
			return ErrOpen
		}
		cb.probing = true
	}
	cb.mu.Unlock()

	if changed {
		cb.notify(from, to)
	}
	return nil
}

// release records the outcome of a call
func (cb *CircuitBreaker) release(failed bool) {
	cb.mu.Lock()
	from := cb.state

	switch {
	case !failed:
		cb.failures = 0
		cb.state = StateClosed
	case cb.state == StateHalfOpen:
		cb.state = StateOpen
		cb.openedAt = cb.now()
	default:
		cb.failures++
		if cb.failures >= cb.config.MaxFailures {
			cb.state = StateOpen
			cb.openedAt = cb.now()
		}
	}
	cb.probing = false
	to := cb.state
	cb.mu.Unlock()

	if from != to {
		cb.notify(from, to)
	}
}

func (cb *CircuitBreaker) notify(from, to State) {
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, from, to)
	}
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Name returns the configured name
func (cb *CircuitBreaker) Name() string {
	return cb.config.Name
}
