// Package route decides which node runs next after an agent turn or a
// dispatch step. Routing is a pure function of the observed state: it is
// computed strictly after the producing step completes, and it recovers
// from every ambiguity instead of failing the workflow.
package route

import (
	"strings"

	"github.com/hupe1980/agentrelay/core"
	"github.com/hupe1980/agentrelay/logging"
)

// Plain-text routing directives. These literals are a stable contract
// shared with the prompt layer: an agent that emits one in a turn without
// tool calls requests a hand-off to the named agent. They intentionally
// match the routing tool names so prompts can describe a single token per
// target.
const (
	DirectiveOrchestrator = "route_to_orchestrator"
	DirectivePlanner      = "route_to_planner"
	DirectiveCoder        = "route_to_coder"
)

// Options configures a Router.
type Options struct {
	Logger logging.Logger
}

// Router selects the next node to run. It knows the fixed agent set and
// treats any unknown target as an anomaly to recover from, never a reason
// to crash.
type Router struct {
	agents map[core.Node]struct{}
	logger logging.Logger
}

// New constructs a Router over the fixed agent set.
func New(optFns ...func(o *Options)) *Router {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	agents := make(map[core.Node]struct{})
	for _, n := range core.AgentNodes() {
		agents[n] = struct{}{}
	}
	return &Router{agents: agents, logger: opts.Logger}
}

// AfterTurn routes once an agent turn has been appended to history.
// Tool calls take priority over text directives; a turn with neither
// terminates the run.
func (r *Router) AfterTurn(state *core.RunState, msg core.Message, calls []core.ToolCall) core.Node {
	if len(calls) > 0 {
		r.logger.Debug("route.after_turn", "agent", state.Current, "next", core.NodeDispatcher, "calls", len(calls))
		return core.NodeDispatcher
	}

	if target, ok := directiveTarget(msg.Text); ok {
		r.logger.Info("route.directive", "agent", state.Current, "target", target)
		return target
	}

	r.logger.Debug("route.after_turn", "agent", state.Current, "next", core.NodeEnd)
	return core.NodeEnd
}

// AfterDispatch routes once the dispatcher has consumed the pending calls.
// The first control-transfer outcome wins; otherwise control returns to the
// agent that invoked the tools. A malformed or unknown target degrades to
// the orchestrator with a logged warning.
func (r *Router) AfterDispatch(invoker core.Node, outcomes []core.ToolOutcome) core.Node {
	for _, o := range outcomes {
		if !o.IsTransfer() {
			continue
		}
		if _, ok := r.agents[o.Target]; ok {
			r.logger.Info("route.transfer", "from", invoker, "target", o.Target, "tool", o.Tool)
			return o.Target
		}
		r.logger.Warn("route.transfer_target_unknown", "target", o.Target, "tool", o.Tool)
		return core.NodeOrchestrator
	}

	if _, ok := r.agents[invoker]; ok {
		return invoker
	}

	r.logger.Warn("route.invoker_unknown", "invoker", invoker)
	return core.NodeOrchestrator
}

// directiveTarget matches the reserved routing tokens inside a plain-text
// turn. Substring matching mirrors the fragile-but-simple contract agents
// are prompted with; the tokens are distinct enough not to collide.
func directiveTarget(text string) (core.Node, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, DirectiveOrchestrator):
		return core.NodeOrchestrator, true
	case strings.Contains(lower, DirectivePlanner):
		return core.NodePlanner, true
	case strings.Contains(lower, DirectiveCoder):
		return core.NodeCoder, true
	default:
		return "", false
	}
}
