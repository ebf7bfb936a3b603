// ABOUTME: Public chat engine: classifies an utterance and renders a mode-aware response
// ABOUTME: Pure per call apart from optional caching, event publishing, and diagnostic confidence

package chat

import (
	"math/rand/v2"

	"github.com/mauromedda/cognichat-go/internal/complexity"
	"github.com/mauromedda/cognichat-go/internal/convstate"
	"github.com/mauromedda/cognichat-go/internal/domain"
	"github.com/mauromedda/cognichat-go/internal/eventbus"
	"github.com/mauromedda/cognichat-go/internal/intent"
	"github.com/mauromedda/cognichat-go/internal/personality"
	"github.com/mauromedda/cognichat-go/internal/sentiment"
	"github.com/mauromedda/cognichat-go/internal/strategy"
	"github.com/mauromedda/cognichat-go/internal/synth"
)

// Re-exported so callers need not import internal packages.
type (
	Mode    = personality.Mode
	History = convstate.History
	Turn    = convstate.Turn
	Role    = convstate.Role
)

// Engine answers utterances. It is safe for concurrent use.
type Engine struct {
	registry   *personality.Registry
	synth      *synth.Synthesizer
	cache      *convstate.Cache
	events     *eventbus.Bus[TurnEvent]
	confidence *confidenceSource
}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	cfg := &engineConfig{}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = personality.NewRegistry()
	}

	e := &Engine{
		registry: cfg.registry,
		synth:    synth.New(cfg.bank),
		cache:    cfg.cache,
		events:   cfg.events,
	}
	if cfg.confidence != nil {
		e.confidence = &confidenceSource{rng: rand.New(cfg.confidence)}
	}
	return e
}

// Respond returns the response text for utterance. history must not contain
// utterance; the caller appends both turns afterwards.
func (e *Engine) Respond(utterance string, history History, mode Mode) string {
	return e.RespondWithTrace(utterance, history, mode).Text
}

// RespondWithTrace is Respond plus the trace of every intermediate decision.
func (e *Engine) RespondWithTrace(utterance string, history History, mode Mode) Result {
	mode = mode.Resolve()

	cls := intent.Classify(utterance)
	score := sentiment.Measure(utterance)
	c := Classification{
		Domains:    domain.Classify(utterance),
		Intent:     cls.Intent,
		Sentiment:  score.Polarity(),
		Complexity: complexity.Assess(utterance),
		Expertise:  complexity.InferExpertise(utterance),
	}
	topics := domain.Topics(utterance)
	comm := intent.CommunicativeOf(utterance)

	state := e.track(history, utterance)
	strat, rule := strategy.SelectWithRule(strategy.Input{
		Utterance:  utterance,
		Complexity: c.Complexity,
		Expertise:  c.Expertise,
		Emotion:    state.Emotion,
	})

	resp := e.synth.Synthesize(synth.Input{
		Mode:              mode,
		Utterance:         utterance,
		Intent:            c.Intent,
		Sentiment:         c.Sentiment,
		Topics:            topics,
		Strategy:          strat,
		Emotion:           state.Emotion,
		HasRecentUserTurn: state.HasRecentUserTurn(),
	})

	trace := Trace{
		Mode:           mode,
		Classification: c,
		Signal:         cls.Signal,
		Topics:         topics,
		Communicative:  comm,
		Score:          score,
		State:          state,
		Strategy:       strat,
		StrategyRule:   rule,
		Rhetorical:     strategy.RhetoricalFor(state.Emotion),
		TemplateKeys:   resp.Keys,
		Reasoning:      reasoningLines(utterance, c, comm, state.Emotion),
		Synthesis:      synthesisSentence(c, comm),
	}
	if e.confidence != nil {
		v := e.confidence.next()
		trace.Confidence = &v
	}

	result := Result{Text: resp.Text, Trace: trace}
	e.events.Publish(TurnEvent{Utterance: utterance, Result: result})
	return result
}

func (e *Engine) track(history History, utterance string) convstate.State {
	if e.cache != nil {
		return e.cache.Track(history, utterance)
	}
	return convstate.Track(history, utterance)
}

// Modes lists the available modes in declaration order.
func (e *Engine) Modes() []personality.Info {
	return e.registry.Modes()
}

// Registry returns the engine's mode registry.
func (e *Engine) Registry() *personality.Registry {
	return e.registry
}

var defaultEngine = New()

// Respond answers with a default engine.
func Respond(utterance string, history History, mode Mode) string {
	return defaultEngine.Respond(utterance, history, mode)
}

// Modes lists the built-in modes.
func Modes() []personality.Info {
	return defaultEngine.Modes()
}
