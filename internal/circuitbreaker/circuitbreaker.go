// Package circuitbreaker guards the MongoDB stores so that an unreachable
// database fails fast instead of stalling every request on its timeouts.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned without calling the protected function while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is one of closed, open or half-open.
type State int

const (
	// StateClosed passes every call through.
	StateClosed State = iota
	// StateOpen rejects calls until Config.Timeout has passed since the last failure.
	StateOpen
	// StateHalfOpen lets calls through to probe the dependency.
	StateHalfOpen
)

var stateNames = [...]string{StateClosed: "closed", StateOpen: "open", StateHalfOpen: "half-open"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Config holds circuit breaker configuration.
type Config struct {
	// FailureThreshold is the number of consecutive failures that opens a closed breaker.
	FailureThreshold int
	// SuccessThreshold is the number of consecutive half-open successes that closes it again.
	SuccessThreshold int
	// Timeout is how long an open breaker waits before probing.
	Timeout time.Duration
	// Name labels log lines, metrics and readiness output.
	Name string
	// OnStateChange is called after every transition, outside the breaker lock.
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns a default circuit breaker configuration.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

// CircuitBreaker counts consecutive failures of one dependency.
type CircuitBreaker struct {
	cfg Config
	now func() time.Time

	mu          sync.RWMutex
	state       State
	failures    int
	successes   int
	lastFailure time.Time
}

// New creates a closed breaker. Thresholds below one are raised to one.
func New(cfg Config) *CircuitBreaker {
	cfg.FailureThreshold = max(cfg.FailureThreshold, 1)
	cfg.SuccessThreshold = max(cfg.SuccessThreshold, 1)
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// Name returns the configured breaker name.
func (cb *CircuitBreaker) Name() string {
	return cb.cfg.Name
}

// Execute calls fn unless the breaker is open, in which case it returns
// ErrCircuitOpen. A cancelled or expired context is returned as is and never
// counts against the dependency.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cb.admit(); err != nil {
		return err
	}

	err := fn()
	cb.record(err)
	return err
}

// Do runs fn through cb and returns its value.
func Do[T any](ctx context.Context, cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var fnErr error
		result, fnErr = fn()
		return fnErr
	})
	return result, err
}

// admit moves an open breaker to half-open once its timeout has passed.
func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	if cb.state != StateOpen {
		cb.mu.Unlock()
		return nil
	}
	if cb.now().Sub(cb.lastFailure) < cb.cfg.Timeout {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.state, cb.successes = StateHalfOpen, 0
	cb.mu.Unlock()

	cb.notify(StateOpen, StateHalfOpen)
	return nil
}

func (cb *CircuitBreaker) record(err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}

	cb.mu.Lock()
	from := cb.state
	if err == nil {
		cb.failures = 0
		if cb.state == StateHalfOpen {
			cb.successes++
			if cb.successes >= cb.cfg.SuccessThreshold {
				cb.state, cb.successes = StateClosed, 0
			}
		}
	} else {
		cb.failures++
		cb.lastFailure = cb.now()
		// One failed probe is enough to reopen.
		if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			cb.state = StateOpen
			cb.failures = max(cb.failures, cb.cfg.FailureThreshold)
			cb.successes = 0
		}
	}
	to := cb.state
	cb.mu.Unlock()

	cb.notify(from, to)
}

func (cb *CircuitBreaker) notify(from, to State) {
	if from == to {
		return
	}
	event := log.Info()
	if to == StateOpen {
		event = log.Warn()
	}
	event.
		Str("circuit_breaker", cb.cfg.Name).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("circuit breaker state changed")

	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.cfg.Name, from, to)
	}
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a point-in-time snapshot for readiness output.
type Stats struct {
	Name         string    `json:"name"`
	State        string    `json:"state"`
	FailureCount int       `json:"failure_count"`
	SuccessCount int       `json:"success_count"`
	LastFailure  time.Time `json:"last_failure,omitempty"`
	IsHealthy    bool      `json:"is_healthy"`
}

// GetStats returns current circuit breaker statistics.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		Name:         cb.cfg.Name,
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		LastFailure:  cb.lastFailure,
		IsHealthy:    cb.state == StateClosed,
	}
}
