// Package agentrelay provides a high-level façade over the workflow
// engine, the fixed agent roster and the tool registry, enabling rapid
// construction of multi-agent task runs. Most applications interact with
// this package by:
//  1. Creating an AgentRelay via New() around a model implementation
//  2. Registering domain tools (routing tools are pre-registered)
//  3. Running tasks with Run and inspecting the returned state
//
// The façade delegates the turn/dispatch loop to workflow.Engine while
// keeping setup ergonomics concise. All defaults are safe for local
// development and testing.
package agentrelay

import (
	"context"

	"github.com/hupe1980/agentrelay/agent"
	"github.com/hupe1980/agentrelay/core"
	"github.com/hupe1980/agentrelay/logging"
	"github.com/hupe1980/agentrelay/model"
	"github.com/hupe1980/agentrelay/tool"
	"github.com/hupe1980/agentrelay/workflow"
)

// Options configures the AgentRelay instance.
type Options struct {
	// Team maps workflow roles to agents. Defaults to the standard
	// orchestrator/planner/coder roster.
	Team agent.Team

	// Tools are registered alongside the built-in routing tools.
	Tools []tool.Tool

	// MaxSteps caps engine iterations per run.
	MaxSteps int

	// Transcript optionally mirrors run history (e.g. a session store).
	Transcript workflow.Transcript

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentRelay is the high-level façade aggregating the engine, runner and
// tool registry.
type AgentRelay struct {
	registry *tool.Registry
	engine   *workflow.Engine
}

// New creates a new AgentRelay around a model with optional overrides.
func New(m model.Model, optFns ...func(o *Options)) *AgentRelay {
	opts := Options{
		Team:     agent.DefaultTeam(),
		MaxSteps: workflow.DefaultMaxSteps,
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	registry := tool.NewRegistry(tool.RoutingTools()...)
	for _, t := range opts.Tools {
		registry.Register(t)
	}

	runner := agent.NewRunner(m, opts.Team, registry, func(o *agent.RunnerOptions) {
		o.Logger = opts.Logger
	})

	engine := workflow.New(runner, registry,
		workflow.WithMaxSteps(opts.MaxSteps),
		workflow.WithLogger(opts.Logger),
		workflow.WithTranscript(opts.Transcript),
	)

	return &AgentRelay{
		registry: registry,
		engine:   engine,
	}
}

// Run executes a task from scratch and returns the terminal status along
// with the full run state.
func (a *AgentRelay) Run(ctx context.Context, task string) (workflow.Status, *core.RunState, error) {
	return a.engine.RunTask(ctx, task)
}

// Resume continues a previously constructed run state, e.g. one seeded by
// the caller or recovered from a transcript.
func (a *AgentRelay) Resume(ctx context.Context, state *core.RunState) (workflow.Status, error) {
	return a.engine.Run(ctx, state)
}

// RegisterTool adds a tool after construction.
func (a *AgentRelay) RegisterTool(t tool.Tool) { a.registry.Register(t) }

// Registry exposes the underlying tool registry.
func (a *AgentRelay) Registry() *tool.Registry { return a.registry }
