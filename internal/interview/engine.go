package interview

import (
	"context"
	"log/slog"
	"math/rand/v2"
)

// nodeID names a step function in the session graphs.
type nodeID int

const (
	nodeInitialize nodeID = iota
	nodeAskQuestion
	nodeStoreAnswer
	nodeCheckCompletion
	nodeGenerateFeedback
	nodeHalt
)

func (n nodeID) String() string {
	switch n {
	case nodeInitialize:
		return "initialize"
	case nodeAskQuestion:
		return "ask_question"
	case nodeStoreAnswer:
		return "store_answer"
	case nodeCheckCompletion:
		return "check_completion"
	case nodeGenerateFeedback:
		return "generate_feedback"
	case nodeHalt:
		return "halt"
	}
	return "unknown"
}

// maxStepsPerRun bounds a single RunStep. Both fixed graphs halt within
// four nodes; hitting the bound means the dispatch table is broken.
const maxStepsPerRun = 8

// Engine drives one interview session a step at a time. It composes the
// step functions into two fixed paths: the opening path
// (initialize -> ask_question) and the continuation path
// (store_answer -> check_completion -> ask_question | generate_feedback).
// Execution halts after ask_question or generate_feedback and control
// returns to the caller.
//
// The engine performs no I/O of its own; the question repository, the
// per-pool generators, and the feedback synthesizer are the only
// collaborators that may block.
type Engine struct {
	repo       QuestionRepository
	generators map[Pool]Generator
	synth      Synthesizer
	cfg        Config
	rng        *rand.Rand
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets a deterministic randomness source. Used by tests; the
// default source is the shared math/rand/v2 generator.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine builds an Engine. generators maps each pool to its
// generative source; pools without a generator fall back to the
// question bank and sentinels only.
func NewEngine(repo QuestionRepository, generators map[Pool]Generator, synth Synthesizer, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		repo:       repo,
		generators: generators,
		synth:      synth,
		cfg:        cfg.normalize(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// RunStep advances the session by one externally visible step. When
// firstCall is true it runs the opening path, otherwise the
// continuation path. The state is taken by value and a new value is
// returned; every error along the way degrades to a documented fallback
// rather than surfacing to the caller.
//
// Re-invoking RunStep on a StatusDone state is a caller contract
// violation; the engine returns last-good behavior but does not protect
// against it.
func (e *Engine) RunStep(ctx context.Context, state State, firstCall bool) State {
	state = state.Clone()

	node := nodeStoreAnswer
	if firstCall {
		node = nodeInitialize
	}

	for range maxStepsPerRun {
		switch node {
		case nodeInitialize:
			state = e.initialize(state)
			node = nodeAskQuestion
		case nodeAskQuestion:
			state = e.askQuestion(ctx, state)
			node = nodeHalt
		case nodeStoreAnswer:
			state = e.storeAnswer(state)
			node = nodeCheckCompletion
		case nodeCheckCompletion:
			state = e.checkCompletion(state)
			if state.Status == StatusDone {
				node = nodeGenerateFeedback
			} else {
				node = nodeAskQuestion
			}
		case nodeGenerateFeedback:
			state = e.generateFeedback(ctx, state)
			node = nodeHalt
		case nodeHalt:
			return state
		}
	}

	// Unreachable with the two fixed graphs above. Fail soft: log the
	// anomaly and hand back the last-produced state.
	e.logger.Error("session graph did not reach a halt node",
		"sessionId", state.SessionID, "lastNode", node.String())
	return state
}

func (e *Engine) intN(n int) int {
	if e.rng != nil {
		return e.rng.IntN(n)
	}
	return rand.IntN(n)
}

func (e *Engine) float64() float64 {
	if e.rng != nil {
		return e.rng.Float64()
	}
	return rand.Float64()
}
