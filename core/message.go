package core

import "github.com/google/uuid"

// Role categorizes who produced a conversation turn.
type Role string

const (
	// RoleUser marks the initial task message supplied by the caller.
	RoleUser Role = "user"
	// RoleAgent marks a turn produced by one of the agent roles.
	RoleAgent Role = "agent"
	// RoleTool marks the recorded outcome of a dispatched tool call.
	RoleTool Role = "tool"
)

// Message is one turn in the conversation. After it has been appended to a
// run's history it must be treated as immutable.
//
// A message produced by a model binding may carry raw tool-call payloads in
// any of three carriers, mirroring the incompatible shapes provider APIs
// actually emit. The extract package resolves them into canonical ToolCall
// values; nothing downstream of extraction reads the raw carriers.
type Message struct {
	Role   Role   `json:"role"`
	Author string `json:"author,omitempty"` // agent identity or tool name
	Text   string `json:"text,omitempty"`

	// Calls holds near-canonical call descriptors attached directly to the
	// message (shape 1).
	Calls []CallPayload `json:"calls,omitempty"`

	// Extra is a secondary metadata mapping. A "tool_calls" entry holds
	// chat-completions style descriptors whose arguments arrive as a
	// JSON-encoded string (shape 2).
	Extra map[string]any `json:"extra,omitempty"`

	// Blocks is an inline list of typed content blocks. Entries tagged
	// "tool_use" carry a name, an input mapping and possibly an incremental
	// partial_json fragment (shape 3).
	Blocks []ContentBlock `json:"blocks,omitempty"`
}

// CallPayload is a near-canonical raw call descriptor (shape 1).
type CallPayload struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// ContentBlock is one entry of an inline typed content list (shape 3).
// Text blocks carry Text; tool_use blocks carry Name, Input and possibly a
// PartialJSON fragment still to be merged into Input.
type ContentBlock struct {
	Type        string         `json:"type"`
	ID          string         `json:"id,omitempty"`
	Text        string         `json:"text,omitempty"`
	Name        string         `json:"name,omitempty"`
	Input       map[string]any `json:"input,omitempty"`
	PartialJSON string         `json:"partial_json,omitempty"`
}

// BlockTypeToolUse tags content blocks that request a tool invocation.
const BlockTypeToolUse = "tool_use"

// NewUserMessage creates the task message that seeds a run.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// NewAgentMessage creates a plain-text agent turn.
func NewAgentMessage(author Node, text string) Message {
	return Message{Role: RoleAgent, Author: string(author), Text: text}
}

// NewToolMessage records a dispatched tool call's outcome as a turn visible
// to subsequent agent turns.
func NewToolMessage(toolName, text string) Message {
	return Message{Role: RoleTool, Author: toolName, Text: text}
}

// HasRawCalls reports whether any of the three raw carriers is populated.
// It is a cheap pre-check; authoritative extraction lives in the extract
// package.
func (m Message) HasRawCalls() bool {
	if len(m.Calls) > 0 {
		return true
	}
	if m.Extra != nil {
		if v, ok := m.Extra["tool_calls"]; ok {
			if list, ok := v.([]any); ok && len(list) > 0 {
				return true
			}
		}
	}
	for _, b := range m.Blocks {
		if b.Type == BlockTypeToolUse {
			return true
		}
	}
	return false
}

// NewID generates a unique identifier used for run IDs and synthesized
// tool-call correlation tokens.
func NewID() string { return uuid.NewString() }
