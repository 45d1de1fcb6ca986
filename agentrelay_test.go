package agentrelay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentrelay/core"
	"github.com/hupe1980/agentrelay/model"
	"github.com/hupe1980/agentrelay/session"
	"github.com/hupe1980/agentrelay/tool"
	"github.com/hupe1980/agentrelay/workflow"
)

func TestAgentRelay_RunWithToolCall(t *testing.T) {
	m := model.NewMockModel("facade").Enqueue(
		core.Message{
			Role:  core.RoleAgent,
			Calls: []core.CallPayload{{ID: "c1", Name: "greet", Args: map[string]any{"name": "Ada"}}},
		},
		core.Message{Role: core.RoleAgent, Text: "Greeted Ada."},
	)

	greet := tool.NewFunctionTool("greet", "Greet someone by name.", nil,
		func(_ *tool.CallContext, args map[string]any) (any, error) {
			name, _ := args["name"].(string)
			return "Hello, " + name, nil
		})

	relay := New(m, func(o *Options) {
		o.Tools = []tool.Tool{greet}
	})

	status, state, err := relay.Run(context.Background(), "greet Ada")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusCompleted, status)

	require.Len(t, state.History, 4)
	assert.Equal(t, "Hello, Ada", state.History[2].Text)
}

func TestAgentRelay_RoutingToolsPreRegistered(t *testing.T) {
	relay := New(model.NewMockModel("facade"))

	for _, node := range core.AgentNodes() {
		_, ok := relay.Registry().Lookup("route_to_" + string(node))
		assert.True(t, ok, "missing routing tool for %s", node)
	}
}

func TestAgentRelay_TranscriptSink(t *testing.T) {
	store := session.NewInMemoryStore()
	m := model.NewMockModel("facade").Enqueue(
		core.Message{Role: core.RoleAgent, Text: "all done"},
	)

	relay := New(m, func(o *Options) {
		o.Transcript = store
	})

	status, state, err := relay.Run(context.Background(), "quick task")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusCompleted, status)

	msgs, ok := store.Messages(state.RunID)
	require.True(t, ok)
	assert.Equal(t, state.History, msgs)
}

func TestAgentRelay_ResumeSeededState(t *testing.T) {
	m := model.NewMockModel("facade").Enqueue(
		core.Message{Role: core.RoleAgent, Text: "resumed and finished"},
	)

	relay := New(m)

	state := core.NewRunState("long task")
	state.Append(core.NewAgentMessage(core.NodeOrchestrator, "got interrupted"))

	status, err := relay.Resume(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusCompleted, status)
	assert.Equal(t, "resumed and finished", state.History[len(state.History)-1].Text)
}
