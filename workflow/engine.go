package workflow

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentrelay/core"
	"github.com/hupe1980/agentrelay/dispatch"
	"github.com/hupe1980/agentrelay/extract"
	"github.com/hupe1980/agentrelay/logging"
	"github.com/hupe1980/agentrelay/route"
	"github.com/hupe1980/agentrelay/tool"
)

// DefaultMaxSteps is the step ceiling applied when no override is given.
const DefaultMaxSteps = 50

// Status is the terminal state of a run.
type Status int

const (
	// StatusCompleted means the router reached the end sentinel.
	StatusCompleted Status = iota
	// StatusCeilingExceeded means the run was aborted because it consumed
	// more steps than the configured ceiling.
	StatusCeilingExceeded
	// StatusFailed means an agent turn returned an unrecoverable error.
	StatusFailed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCeilingExceeded:
		return "ceiling_exceeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Turner produces one agent turn. Implementations receive the full run
// history and must return a single agent message for the given role.
type Turner interface {
	Turn(ctx context.Context, node core.Node, history []core.Message) (core.Message, error)
}

// Transcript receives history entries as they are appended, keyed by run
// ID. Recording must not fail; sinks that can fail should buffer.
type Transcript interface {
	Record(runID string, msgs ...core.Message)
}

// Options configures the engine.
type Options struct {
	// MaxSteps caps the number of engine iterations per run. Values < 1
	// fall back to DefaultMaxSteps.
	MaxSteps int

	// Logger for engine progress. Defaults to a no-op logger.
	Logger logging.Logger

	// Router overrides the default router.
	Router *route.Router

	// Transcript optionally mirrors every appended message.
	Transcript Transcript
}

// Engine runs the agent/dispatch loop over a RunState.
type Engine struct {
	turner     Turner
	registry   *tool.Registry
	extractor  *extract.Extractor
	dispatcher *dispatch.Dispatcher
	router     *route.Router
	maxSteps   int
	logger     logging.Logger
	transcript Transcript
}

// New creates an engine around a turner and a tool registry.
func New(turner Turner, registry *tool.Registry, optFns ...func(o *Options)) *Engine {
	opts := Options{
		MaxSteps: DefaultMaxSteps,
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxSteps < 1 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.Router == nil {
		opts.Router = route.New(func(o *route.Options) { o.Logger = opts.Logger })
	}

	return &Engine{
		turner:     turner,
		registry:   registry,
		extractor:  extract.New(func(o *extract.Options) { o.Logger = opts.Logger }),
		dispatcher: dispatch.New(func(o *dispatch.Options) { o.Logger = opts.Logger }),
		router:     opts.Router,
		maxSteps:   opts.MaxSteps,
		logger:     opts.Logger,
		transcript: opts.Transcript,
	}
}

// WithMaxSteps overrides the step ceiling.
func WithMaxSteps(n int) func(o *Options) {
	return func(o *Options) { o.MaxSteps = n }
}

// WithLogger sets the engine logger.
func WithLogger(logger logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = logger }
}

// WithRouter replaces the default router.
func WithRouter(r *route.Router) func(o *Options) {
	return func(o *Options) { o.Router = r }
}

// WithTranscript mirrors run history into the given sink.
func WithTranscript(t Transcript) func(o *Options) {
	return func(o *Options) { o.Transcript = t }
}

// RunTask seeds a fresh RunState from a task string and runs it. The
// returned state carries the full history regardless of status.
func (e *Engine) RunTask(ctx context.Context, task string) (Status, *core.RunState, error) {
	state := core.NewRunState(task)
	status, err := e.Run(ctx, state)
	return status, state, err
}

// Run drives the state until the router terminates, the step ceiling is
// exceeded, the context is cancelled, or an agent turn fails. History is
// only ever appended to; on any status the state reflects everything
// that happened up to the stop.
func (e *Engine) Run(ctx context.Context, state *core.RunState) (Status, error) {
	// lastAgent is the most recent agent to hold control; the dispatcher
	// invokes tools on its behalf and the router falls back to it.
	lastAgent := core.NodeOrchestrator
	recorded := 0

	defer func() { e.record(state, &recorded) }()

	for {
		if err := ctx.Err(); err != nil {
			return StatusFailed, fmt.Errorf("run %s cancelled: %w", state.RunID, err)
		}

		state.Steps++
		if state.Steps > e.maxSteps {
			e.logger.Warn("step ceiling exceeded", "runID", state.RunID, "steps", state.Steps-1)
			return StatusCeilingExceeded, nil
		}

		if state.Current == core.NodeDispatcher {
			outcomes := e.dispatcher.DispatchPending(ctx, lastAgent, state, e.registry)
			e.record(state, &recorded)

			state.Current = e.router.AfterDispatch(lastAgent, outcomes)
			continue
		}

		node := state.Current
		msg, err := e.turner.Turn(ctx, node, state.History)
		if err != nil {
			return StatusFailed, fmt.Errorf("agent %s turn failed: %w", node, err)
		}

		state.Append(msg)
		e.record(state, &recorded)

		calls := e.extractor.Extract(msg)
		if len(calls) > 0 {
			state.Pending = calls
		}
		lastAgent = node

		next := e.router.AfterTurn(state, msg, calls)
		if next == core.NodeEnd {
			e.logger.Info("run completed", "runID", state.RunID, "steps", state.Steps)
			return StatusCompleted, nil
		}
		state.Current = next
	}
}

func (e *Engine) record(state *core.RunState, cursor *int) {
	if e.transcript == nil || *cursor >= len(state.History) {
		return
	}
	e.transcript.Record(state.RunID, state.History[*cursor:]...)
	*cursor = len(state.History)
}
