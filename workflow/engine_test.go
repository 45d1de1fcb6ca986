package workflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentrelay/core"
	"github.com/hupe1980/agentrelay/tool"
)

// scriptedTurner replays canned messages per agent role and fails the test
// if a role is asked for more turns than were scripted.
type scriptedTurner struct {
	t       *testing.T
	scripts map[core.Node][]core.Message
}

func newScriptedTurner(t *testing.T) *scriptedTurner {
	return &scriptedTurner{t: t, scripts: make(map[core.Node][]core.Message)}
}

func (s *scriptedTurner) on(node core.Node, msgs ...core.Message) *scriptedTurner {
	s.scripts[node] = append(s.scripts[node], msgs...)
	return s
}

func (s *scriptedTurner) Turn(_ context.Context, node core.Node, _ []core.Message) (core.Message, error) {
	queue := s.scripts[node]
	if len(queue) == 0 {
		s.t.Fatalf("unexpected turn for %s", node)
	}
	s.scripts[node] = queue[1:]
	return queue[0], nil
}

type turnerFunc func(ctx context.Context, node core.Node, history []core.Message) (core.Message, error)

func (f turnerFunc) Turn(ctx context.Context, node core.Node, history []core.Message) (core.Message, error) {
	return f(ctx, node, history)
}

func callMessage(author core.Node, name string, args map[string]any) core.Message {
	return core.Message{
		Role:   core.RoleAgent,
		Author: string(author),
		Calls:  []core.CallPayload{{ID: "c1", Name: name, Args: args}},
	}
}

func echoRegistry() *tool.Registry {
	echo := tool.NewFunctionTool("echo", "Echo the input back.", nil,
		func(_ *tool.CallContext, args map[string]any) (any, error) {
			return args["text"], nil
		})
	reg := tool.NewRegistry(echo)
	for _, rt := range tool.RoutingTools() {
		reg.Register(rt)
	}
	return reg
}

func TestEngine_ToolCallRoundTrip(t *testing.T) {
	turner := newScriptedTurner(t).
		on(core.NodeOrchestrator,
			callMessage(core.NodeOrchestrator, "echo", map[string]any{"text": "hello"}),
			core.NewAgentMessage(core.NodeOrchestrator, "The echo returned hello."),
		)

	engine := New(turner, echoRegistry())
	status, state, err := engine.RunTask(context.Background(), "say hello")

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)

	// user task, agent call, tool result, agent wrap-up
	require.Len(t, state.History, 4)
	assert.Equal(t, core.RoleUser, state.History[0].Role)
	assert.Equal(t, core.RoleAgent, state.History[1].Role)
	assert.Equal(t, core.RoleTool, state.History[2].Role)
	assert.Equal(t, "hello", state.History[2].Text)
	assert.Equal(t, core.RoleAgent, state.History[3].Role)

	assert.Empty(t, state.Pending)
	assert.Equal(t, 3, state.Steps)
}

func TestEngine_PlainTextTerminatesImmediately(t *testing.T) {
	turner := newScriptedTurner(t).
		on(core.NodeOrchestrator, core.NewAgentMessage(core.NodeOrchestrator, "Nothing to do."))

	engine := New(turner, echoRegistry())
	status, state, err := engine.RunTask(context.Background(), "noop")

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)
	assert.Len(t, state.History, 2)
	assert.Equal(t, 1, state.Steps)
}

func TestEngine_TextDirectiveHandsOff(t *testing.T) {
	turner := newScriptedTurner(t).
		on(core.NodeOrchestrator, core.NewAgentMessage(core.NodeOrchestrator, "Context gathered. route_to_planner")).
		on(core.NodePlanner, core.NewAgentMessage(core.NodePlanner, "Plan: single step, already done."))

	engine := New(turner, echoRegistry())
	status, state, err := engine.RunTask(context.Background(), "plan something")

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)
	require.Len(t, state.History, 3)
	assert.Equal(t, string(core.NodePlanner), state.History[2].Author)
}

func TestEngine_RoutingToolTransfersControl(t *testing.T) {
	turner := newScriptedTurner(t).
		on(core.NodeOrchestrator, callMessage(core.NodeOrchestrator, "route_to_coder", nil)).
		on(core.NodeCoder, core.NewAgentMessage(core.NodeCoder, "Patch applied."))

	engine := New(turner, echoRegistry())
	status, state, err := engine.RunTask(context.Background(), "fix the bug")

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)

	// user, orchestrator call, transfer note, coder wrap-up
	require.Len(t, state.History, 4)
	assert.Equal(t, "Routing to coder", state.History[2].Text)
	assert.Equal(t, string(core.NodeCoder), state.History[3].Author)
}

func TestEngine_UnknownToolSurfacesAsError(t *testing.T) {
	turner := newScriptedTurner(t).
		on(core.NodeOrchestrator,
			callMessage(core.NodeOrchestrator, "does_not_exist", nil),
			core.NewAgentMessage(core.NodeOrchestrator, "Giving up."),
		)

	engine := New(turner, echoRegistry())
	status, state, err := engine.RunTask(context.Background(), "call a ghost")

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)
	require.Len(t, state.History, 4)
	assert.Equal(t, core.RoleTool, state.History[2].Role)
	assert.Equal(t, "Error: tool not found: does_not_exist", state.History[2].Text)
}

func TestEngine_StepCeiling(t *testing.T) {
	// Agents ping-pong control forever via text directives.
	turner := turnerFunc(func(_ context.Context, node core.Node, _ []core.Message) (core.Message, error) {
		if node == core.NodePlanner {
			return core.NewAgentMessage(node, "route_to_orchestrator"), nil
		}
		return core.NewAgentMessage(node, "route_to_planner"), nil
	})

	engine := New(turner, echoRegistry())
	status, state, err := engine.RunTask(context.Background(), "loop forever")

	require.NoError(t, err)
	assert.Equal(t, StatusCeilingExceeded, status)
	assert.Equal(t, DefaultMaxSteps+1, state.Steps)
	assert.Len(t, state.History, DefaultMaxSteps+1) // task plus one message per turn
}

func TestEngine_MaxStepsOption(t *testing.T) {
	turner := turnerFunc(func(_ context.Context, node core.Node, _ []core.Message) (core.Message, error) {
		return core.NewAgentMessage(node, "route_to_planner"), nil
	})

	engine := New(turner, echoRegistry(), WithMaxSteps(5))
	status, state, err := engine.RunTask(context.Background(), "loop")

	require.NoError(t, err)
	assert.Equal(t, StatusCeilingExceeded, status)
	assert.Equal(t, 6, state.Steps)
}

func TestEngine_TurnerFailure(t *testing.T) {
	turner := turnerFunc(func(_ context.Context, _ core.Node, _ []core.Message) (core.Message, error) {
		return core.Message{}, fmt.Errorf("model unavailable")
	})

	engine := New(turner, echoRegistry())
	status, state, err := engine.RunTask(context.Background(), "doomed")

	require.Error(t, err)
	assert.ErrorContains(t, err, "model unavailable")
	assert.Equal(t, StatusFailed, status)
	assert.Len(t, state.History, 1) // nothing beyond the seed task
}

func TestEngine_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	turner := newScriptedTurner(t) // must never be consulted
	engine := New(turner, echoRegistry())
	status, _, err := engine.RunTask(ctx, "cancelled before start")

	require.Error(t, err)
	assert.Equal(t, StatusFailed, status)
}

type recordingTranscript struct {
	runID string
	msgs  []core.Message
}

func (r *recordingTranscript) Record(runID string, msgs ...core.Message) {
	r.runID = runID
	r.msgs = append(r.msgs, msgs...)
}

func TestEngine_TranscriptMirrorsHistory(t *testing.T) {
	turner := newScriptedTurner(t).
		on(core.NodeOrchestrator,
			callMessage(core.NodeOrchestrator, "echo", map[string]any{"text": "hi"}),
			core.NewAgentMessage(core.NodeOrchestrator, "done"),
		)

	sink := &recordingTranscript{}
	engine := New(turner, echoRegistry(), WithTranscript(sink))
	status, state, err := engine.RunTask(context.Background(), "mirror me")

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)
	assert.Equal(t, state.RunID, sink.runID)
	assert.Equal(t, state.History, sink.msgs)
}
