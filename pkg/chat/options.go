// ABOUTME: Functional options for the chat engine
// ABOUTME: Registry, template bank, state cache, turn event bus, and diagnostic confidence

package chat

import (
	"math/rand/v2"
	"sync"

	"github.com/mauromedda/cognichat-go/internal/convstate"
	"github.com/mauromedda/cognichat-go/internal/eventbus"
	"github.com/mauromedda/cognichat-go/internal/personality"
	"github.com/mauromedda/cognichat-go/internal/synth"
)

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	registry   *personality.Registry
	bank       *synth.Bank
	cache      *convstate.Cache
	events     *eventbus.Bus[TurnEvent]
	confidence rand.Source
}

// WithRegistry sets the mode registry reported by Modes.
func WithRegistry(r *personality.Registry) Option {
	return func(c *engineConfig) {
		c.registry = r
	}
}

// WithBank replaces the compiled-in template bank.
func WithBank(b *synth.Bank) Option {
	return func(c *engineConfig) {
		c.bank = b
	}
}

// WithStateCache memoizes conversation state across calls.
func WithStateCache(cache *convstate.Cache) Option {
	return func(c *engineConfig) {
		c.cache = cache
	}
}

// WithEventBus publishes a TurnEvent on bus after every response.
func WithEventBus(bus *eventbus.Bus[TurnEvent]) Option {
	return func(c *engineConfig) {
		c.events = bus
	}
}

// WithDiagnosticConfidence fills Trace.Confidence with a pseudo-random
// value in [0.8, 1.0) drawn from src. It never affects response text.
func WithDiagnosticConfidence(src rand.Source) Option {
	return func(c *engineConfig) {
		c.confidence = src
	}
}

// confidenceSource serializes draws from a non-concurrent rand.Rand.
type confidenceSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *confidenceSource) next() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return 0.8 + s.rng.Float64()*0.2
}
