// Package resilience guards calls to remote dependencies with a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"invacc/pkg/logger"
)

// ErrUnavailable is returned while the breaker rejects calls.
var ErrUnavailable = errors.New("service unavailable")

// Defaults for the generation breaker.
const (
	DefaultMaxRequests           uint32  = 1
	DefaultInterval                      = 60 * time.Second
	DefaultTimeout                       = 30 * time.Second
	DefaultFailureThreshold      uint32  = 5
	DefaultFailureRatioThreshold float64 = 0.6
	DefaultMinRequestsToTrip     uint32  = 10
)

// StateReporter receives breaker state changes (0 closed, 1 half-open, 2 open).
type StateReporter interface {
	SetCircuitBreakerState(name string, state int)
}

// CircuitBreakerConfig holds configuration for a circuit breaker.
type CircuitBreakerConfig struct {
	Name                  string
	MaxRequests           uint32        // requests allowed in half-open state
	Interval              time.Duration // cyclic period to clear counts while closed (0 = never)
	Timeout               time.Duration // open -> half-open delay
	FailureThreshold      uint32        // consecutive failures that trip the breaker
	FailureRatioThreshold float64
	MinRequestsToTrip     uint32 // minimum requests before the ratio is evaluated
}

// DefaultCircuitBreakerConfig returns defaults for name.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:                  name,
		MaxRequests:           DefaultMaxRequests,
		Interval:              DefaultInterval,
		Timeout:               DefaultTimeout,
		FailureThreshold:      DefaultFailureThreshold,
		FailureRatioThreshold: DefaultFailureRatioThreshold,
		MinRequestsToTrip:     DefaultMinRequestsToTrip,
	}
}

// CircuitBreaker wraps gobreaker with logging and state reporting.
type CircuitBreaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
	log  *logger.Logger
}

// NewCircuitBreaker creates a circuit breaker. reporter may be nil.
func NewCircuitBreaker(cfg CircuitBreakerConfig, log *logger.Logger, reporter StateReporter) *CircuitBreaker {
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent("circuit_breaker")

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if cfg.FailureThreshold > 0 && counts.ConsecutiveFailures >= cfg.FailureThreshold {
				return true
			}
			if cfg.MinRequestsToTrip > 0 && counts.Requests >= cfg.MinRequestsToTrip {
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return ratio >= cfg.FailureRatioThreshold
			}
			return false
		},
		// A caller giving up is not a failure of the remote side.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnw("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
			if reporter != nil {
				reporter.SetCircuitBreakerState(name, StateValue(to))
			}
		},
	}

	if reporter != nil {
		reporter.SetCircuitBreakerState(cfg.Name, StateValue(gobreaker.StateClosed))
	}

	return &CircuitBreaker{
		cb:   gobreaker.NewCircuitBreaker(settings),
		name: cfg.Name,
		log:  log,
	}
}

// Execute runs fn through the breaker. Rejected calls return an error wrapping ErrUnavailable.
func (c *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	result, err := c.cb.Execute(func() (any, error) {
		return fn(ctx)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		c.log.WithContext(ctx).Warnw("Circuit breaker is open", "name", c.name)
		return nil, fmt.Errorf("%w: circuit breaker open for %s", ErrUnavailable, c.name)
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		c.log.WithContext(ctx).Warnw("Circuit breaker: too many requests", "name", c.name)
		return nil, fmt.Errorf("%w: too many requests for %s", ErrUnavailable, c.name)
	}

	return result, err
}

// State returns the current state.
func (c *CircuitBreaker) State() gobreaker.State {
	return c.cb.State()
}

// Name returns the breaker name.
func (c *CircuitBreaker) Name() string {
	return c.name
}

// Counts returns the current counts.
func (c *CircuitBreaker) Counts() gobreaker.Counts {
	return c.cb.Counts()
}

// StateValue maps a breaker state to the gauge value exported as a metric.
func StateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
