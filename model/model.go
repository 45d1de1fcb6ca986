package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentrelay/core"
)

// ToolDefinition declaratively exposes a callable function to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset
// expected).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input produced by an agent turn.
type Request struct {
	Instructions string           `json:"instructions"`    // system-level role instructions
	Input        string           `json:"input"`           // rendered conversation history
	Tools        []ToolDefinition `json:"tools,omitempty"` // callable functions
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the final completion for one turn. Message carries any
// tool-call payloads in the provider's native raw carrier; callers hand
// it to the extract package rather than reading carriers directly.
type Response struct {
	Message      core.Message `json:"message"`
	FinishReason string       `json:"finish_reason"` // "stop", "length", "tool_calls", etc.
	Usage        *TokenUsage  `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface agents require to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Scripted messages are consumed in FIFO order; when the script is empty,
// canned completions registered with AddResponse are matched against the
// request input, falling back to a deterministic echo.
type MockModel struct {
	info      Info
	script    []core.Message
	responses map[string]string
}

// NewMockModel constructs a MockModel with basic tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info: Info{
			Name:          name,
			Provider:      "mock",
			SupportsTools: true,
		},
		responses: make(map[string]string),
	}
}

// Enqueue appends scripted turn messages, consumed one per Generate call.
func (m *MockModel) Enqueue(msgs ...core.Message) *MockModel {
	m.script = append(m.script, msgs...)
	return m
}

// AddResponse registers a canned completion returned whenever the request
// input contains prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(m.script) > 0 {
		msg := m.script[0]
		m.script = m.script[1:]
		return &Response{Message: msg, FinishReason: "stop"}, nil
	}

	for prompt, response := range m.responses {
		if strings.Contains(req.Input, prompt) {
			return &Response{
				Message:      core.Message{Role: core.RoleAgent, Text: response},
				FinishReason: "stop",
			}, nil
		}
	}

	return &Response{
		Message: core.Message{
			Role: core.RoleAgent,
			Text: fmt.Sprintf("Mock response to: %s", req.Input),
		},
		FinishReason: "stop",
	}, nil
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
