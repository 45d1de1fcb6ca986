package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentrelay/core"
)

func TestMockModel_ScriptedMessagesFIFO(t *testing.T) {
	first := core.Message{
		Role:  core.RoleAgent,
		Calls: []core.CallPayload{{ID: "c1", Name: "search", Args: map[string]any{"query": "go"}}},
	}
	second := core.Message{Role: core.RoleAgent, Text: "done"}

	m := NewMockModel("scripted").Enqueue(first, second)

	resp, err := m.Generate(context.Background(), Request{Input: "anything"})
	require.NoError(t, err)
	require.Len(t, resp.Message.Calls, 1)
	assert.Equal(t, "search", resp.Message.Calls[0].Name)

	resp, err = m.Generate(context.Background(), Request{Input: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "done", resp.Message.Text)
}

func TestMockModel_CannedResponseBySubstring(t *testing.T) {
	m := NewMockModel("canned")
	m.AddResponse("weather", "It is sunny.")

	resp, err := m.Generate(context.Background(), Request{Input: "user: what is the weather today?"})
	require.NoError(t, err)
	assert.Equal(t, "It is sunny.", resp.Message.Text)
	assert.Equal(t, core.RoleAgent, resp.Message.Role)
}

func TestMockModel_DefaultEcho(t *testing.T) {
	m := NewMockModel("echo")

	resp, err := m.Generate(context.Background(), Request{Input: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: hello", resp.Message.Text)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestMockModel_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockModel("cancel").Generate(ctx, Request{Input: "x"})
	assert.Error(t, err)
}

func TestMockModel_Info(t *testing.T) {
	info := NewMockModel("test-model").Info()
	assert.Equal(t, "test-model", info.Name)
	assert.Equal(t, "mock", info.Provider)
	assert.True(t, info.SupportsTools)
}
