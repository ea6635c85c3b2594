// Package breaker wraps upstream AI service calls in a circuit breaker so a
// failing provider is reported immediately instead of being hammered by
// every card of every generation. It never retries.
package breaker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// Settings configures a Breaker
type Settings struct {
	Name string

	// MaxFailures is the number of consecutive failures that opens the breaker
	MaxFailures uint32

	// OpenTimeout is how long the breaker stays open before letting calls through again
	OpenTimeout time.Duration

	// MaxRequests is the number of calls let through while half-open. A
	// breaker shared by parallel calls needs one per call.
	MaxRequests uint32
}

// DefaultSettings returns the settings used for both AI services
func DefaultSettings(name string) Settings {
	return Settings{
		Name:        name,
		MaxFailures: 5,
		OpenTimeout: 30 * time.Second,
		MaxRequests: 1,
	}
}

// LocalError is implemented by errors that may be returned before a request
// reaches the upstream, e.g. for a missing API key
type LocalError interface {
	BeforeRequest() bool
}

func isLocal(err error) bool {
	var local LocalError
	return errors.As(err, &local) && local.BeforeRequest()
}

// Breaker is a named circuit breaker around upstream calls
type Breaker struct {
	cb     *gobreaker.CircuitBreaker
	logger atomic.Pointer[zerolog.Logger]
}

// New creates a breaker; state changes are logged at warn level
func New(settings Settings, logger zerolog.Logger) *Breaker {
	if settings.MaxFailures == 0 {
		settings.MaxFailures = DefaultSettings(settings.Name).MaxFailures
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = DefaultSettings(settings.Name).OpenTimeout
	}
	if settings.MaxRequests == 0 {
		settings.MaxRequests = DefaultSettings(settings.Name).MaxRequests
	}

	b := &Breaker{}
	b.SetLogger(logger)

	maxFailures := settings.MaxFailures
	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.MaxRequests,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Load().Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
		// Cancelled calls and calls that never left the process say
		// nothing about upstream health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || isLocal(err)
		},
	})

	return b
}

// SetLogger replaces the logger that receives state changes
func (b *Breaker) SetLogger(logger zerolog.Logger) {
	b.logger.Store(&logger)
}

// Execute runs fn through the breaker
func (b *Breaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return b.cb.Execute(fn)
}

// Name returns the breaker name
func (b *Breaker) Name() string {
	return b.cb.Name()
}

// State returns the current breaker state ("closed", "half-open", "open")
func (b *Breaker) State() string {
	return b.cb.State().String()
}

// IsOpen reports whether err was produced by the breaker rejecting a call
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
