package route

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agentrelay/core"
)

func turnState(current core.Node) *core.RunState {
	st := core.NewRunState("task")
	st.Current = current
	return st
}

func TestAfterTurn_ToolCallsBeatDirectives(t *testing.T) {
	// Even a message whose text carries a directive goes to the dispatcher
	// first when it also produced a tool call.
	msg := core.NewAgentMessage(core.NodeOrchestrator, "route_to_planner")
	calls := []core.ToolCall{{ID: "c1", Name: "route_to_planner"}}

	next := New().AfterTurn(turnState(core.NodeOrchestrator), msg, calls)
	assert.Equal(t, core.NodeDispatcher, next)
}

func TestAfterTurn_TextDirectives(t *testing.T) {
	tests := []struct {
		text string
		want core.Node
	}{
		{"Context is ready. route_to_planner", core.NodePlanner},
		{"Plan approved, ROUTE_TO_CODER next.", core.NodeCoder},
		{"done here, route_to_orchestrator", core.NodeOrchestrator},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			msg := core.NewAgentMessage(core.NodePlanner, tt.text)
			assert.Equal(t, tt.want, r.AfterTurn(turnState(core.NodePlanner), msg, nil))
		})
	}
}

func TestAfterTurn_NoCallsNoDirectiveTerminates(t *testing.T) {
	msg := core.NewAgentMessage(core.NodeOrchestrator, "The task is complete.")
	next := New().AfterTurn(turnState(core.NodeOrchestrator), msg, nil)
	assert.Equal(t, core.NodeEnd, next)
}

func TestAfterDispatch_TransferWins(t *testing.T) {
	outcomes := []core.ToolOutcome{
		core.NewValueOutcome("c1", "read_file", "contents"),
		core.NewTransferOutcome("c2", "route_to_coder", core.NodeCoder, "Routing to coder"),
	}

	next := New().AfterDispatch(core.NodeOrchestrator, outcomes)
	assert.Equal(t, core.NodeCoder, next)
}

func TestAfterDispatch_FirstTransferWins(t *testing.T) {
	outcomes := []core.ToolOutcome{
		core.NewTransferOutcome("c1", "route_to_planner", core.NodePlanner, ""),
		core.NewTransferOutcome("c2", "route_to_coder", core.NodeCoder, ""),
	}

	next := New().AfterDispatch(core.NodeOrchestrator, outcomes)
	assert.Equal(t, core.NodePlanner, next)
}

func TestAfterDispatch_NonRoutingToolReturnsToInvoker(t *testing.T) {
	outcomes := []core.ToolOutcome{core.NewValueOutcome("c1", "write_file", "ok")}

	assert.Equal(t, core.NodeCoder, New().AfterDispatch(core.NodeCoder, outcomes))
	assert.Equal(t, core.NodePlanner, New().AfterDispatch(core.NodePlanner, outcomes))
}

func TestAfterDispatch_FailureStillReturnsToInvoker(t *testing.T) {
	// Failures are surfaced as tool messages; control goes back to the
	// agent so it can self-correct.
	outcomes := []core.ToolOutcome{core.NewFailureOutcome("c1", "run_command", "exit status 1")}
	assert.Equal(t, core.NodeCoder, New().AfterDispatch(core.NodeCoder, outcomes))
}

func TestAfterDispatch_MalformedTargetDefaultsToOrchestrator(t *testing.T) {
	for _, target := range []core.Node{"", "reviewer", core.NodeDispatcher} {
		outcomes := []core.ToolOutcome{core.NewTransferOutcome("c1", "handoff", target, "")}
		next := New().AfterDispatch(core.NodePlanner, outcomes)
		assert.Equal(t, core.NodeOrchestrator, next, "target %q", target)
	}
}

func TestAfterDispatch_UnknownInvokerDefaultsToOrchestrator(t *testing.T) {
	outcomes := []core.ToolOutcome{core.NewValueOutcome("c1", "x", "ok")}
	assert.Equal(t, core.NodeOrchestrator, New().AfterDispatch(core.NodeDispatcher, outcomes))
	assert.Equal(t, core.NodeOrchestrator, New().AfterDispatch("", nil))
}
