package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sitecrew/workforce-scheduler/internal/api/metrics"
	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

// BreakerConfig tunes the datastore circuit breaker.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures uint32
	// OpenTimeout is how long the circuit stays open before a probe is let through.
	OpenTimeout time.Duration
}

// Breaker fails datastore calls fast while MongoDB is unreachable. It never
// retries: a call rejected by an open circuit returns domain.ErrUnavailable.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

func NewBreaker(name string, cfg BreakerConfig, log zerolog.Logger) *Breaker {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 15 * time.Second
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return !isOutage(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})}
}

// do runs fn through the breaker. A nil Breaker runs fn directly.
func (b *Breaker) do(fn func() error) error {
	if b == nil {
		return fn()
	}
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return err
}

// isOutage reports whether err says something about MongoDB's health rather
// than about the request. Missing documents, duplicate keys, domain errors
// and caller cancellations are not outages.
func isOutage(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, mongo.ErrNoDocuments),
		mongo.IsDuplicateKeyError(err),
		errors.Is(err, context.Canceled),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrAlreadyAssigned),
		errors.Is(err, domain.ErrAssignmentNotFound):
		return false
	}
	return true
}
