// Package breaker decorates an ai.Embedder with circuit breaking.
//
// The query path makes one embedding call per request; when the embedding
// service is down, failing fast keeps request latency bounded and lets the
// engine degrade to non-semantic scoring instead of stalling.
package breaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/poiesic/solvent/ai"
)

// ErrNilEmbedder is returned when New is given a nil embedder to wrap.
var ErrNilEmbedder = errors.New("breaker: embedder is required")

// Settings control when the breaker trips and recovers.
type Settings struct {
	// MaxRequests is how many probe requests pass through in half-open state.
	MaxRequests uint32

	// Interval is the window after which closed-state counts reset.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration

	// MinRequests is the minimum number of observed requests before the
	// failure ratio is considered meaningful.
	MinRequests uint32

	// FailureRatio is the failure fraction at which the breaker trips.
	FailureRatio float64
}

// DefaultSettings returns conservative settings suited to a local embedding
// service: trip after repeated failures, probe again after half a minute.
func DefaultSettings() Settings {
	return Settings{
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
}

// Embedder wraps another ai.Embedder with a circuit breaker.
type Embedder struct {
	inner  ai.Embedder
	cb     *gobreaker.CircuitBreaker
	logger *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// New wraps inner with circuit breaking using the given settings.
// name identifies the breaker in logs.
//
// Returns ai.Embedder interface to enforce abstraction.
func New(inner ai.Embedder, settings Settings, name string) (ai.Embedder, error) {
	if inner == nil {
		return nil, ErrNilEmbedder
	}

	logger := slog.Default().With("component", "embedder-breaker")

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= settings.MinRequests && failureRatio >= settings.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &Embedder{
		inner:  inner,
		cb:     gobreaker.NewCircuitBreaker(st),
		logger: logger,
	}, nil
}

// EmbedText generates an embedding through the breaker.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	result, err := e.cb.Execute(func() (interface{}, error) {
		return e.inner.EmbedText(ctx, text)
	})
	if err != nil {
		return nil, err
	}
	return result.([]float32), nil
}

// EmbedTexts generates batch embeddings through the breaker.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	result, err := e.cb.Execute(func() (interface{}, error) {
		return e.inner.EmbedTexts(ctx, texts)
	})
	if err != nil {
		return nil, err
	}
	return result.([][]float32), nil
}
