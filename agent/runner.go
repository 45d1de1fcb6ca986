package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentrelay/core"
	"github.com/hupe1980/agentrelay/logging"
	"github.com/hupe1980/agentrelay/model"
	"github.com/hupe1980/agentrelay/tool"
)

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	// Logger for per-turn diagnostics. Defaults to a no-op logger.
	Logger logging.Logger
}

// Runner produces agent turns by rendering the conversation history into a
// model request for the role's agent. It implements the engine's Turner
// contract.
type Runner struct {
	model    model.Model
	team     Team
	registry *tool.Registry
	logger   logging.Logger
}

// NewRunner creates a runner over a model, a team and the tool registry
// whose definitions are exposed to every agent.
func NewRunner(m model.Model, team Team, registry *tool.Registry, optFns ...func(o *RunnerOptions)) *Runner {
	opts := RunnerOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{
		model:    m,
		team:     team,
		registry: registry,
		logger:   opts.Logger,
	}
}

// Turn generates one turn for the given role. The returned message is
// attributed to the role; any raw tool-call payloads the model produced
// are preserved for extraction.
func (r *Runner) Turn(ctx context.Context, node core.Node, history []core.Message) (core.Message, error) {
	a, ok := r.team[node]
	if !ok {
		return core.Message{}, fmt.Errorf("no agent registered for role %s", node)
	}

	instructions, err := a.instruction.Resolve(history)
	if err != nil {
		return core.Message{}, fmt.Errorf("resolve instruction for %s: %w", node, err)
	}

	req := model.Request{
		Instructions: instructions,
		Input:        RenderHistory(history),
		Tools:        Definitions(r.registry),
	}

	resp, err := r.model.Generate(ctx, req)
	if err != nil {
		return core.Message{}, fmt.Errorf("generate turn for %s: %w", node, err)
	}

	msg := resp.Message
	msg.Role = core.RoleAgent
	msg.Author = string(node)

	r.logger.Debug("agent turn produced", "agent", node, "textLen", len(msg.Text), "rawCalls", msg.HasRawCalls())

	return msg, nil
}

// RenderHistory flattens the conversation into the line-per-turn textual
// form agents receive as input. An empty history yields a kickoff line so
// the first turn always has content to react to.
func RenderHistory(history []core.Message) string {
	if len(history) == 0 {
		return "Let's begin the task."
	}

	lines := make([]string, 0, len(history))
	for _, msg := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", speaker(msg), msg.Text))
	}
	return strings.Join(lines, "\n")
}

func speaker(msg core.Message) string {
	switch msg.Role {
	case core.RoleUser:
		return "user"
	case core.RoleTool:
		if msg.Author != "" {
			return fmt.Sprintf("tool[%s]", msg.Author)
		}
		return "tool"
	default:
		if msg.Author != "" {
			return msg.Author
		}
		return "agent"
	}
}

// Definitions exposes every registered tool as a model tool definition,
// in stable name order.
func Definitions(reg *tool.Registry) []model.ToolDefinition {
	if reg == nil {
		return nil
	}

	names := reg.Names()
	defs := make([]model.ToolDefinition, 0, len(names))
	for _, name := range names {
		t, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}
