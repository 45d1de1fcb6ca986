// Package tool implements the function calling subsystem: the Tool
// interface agents invoke through the dispatcher, a schema-validating
// FunctionTool adapter, the read-only Registry, and the routing tools that
// request explicit control transfers between agents.
package tool

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentrelay/core"
	"github.com/hupe1980/agentrelay/logging"
)

// Tool defines the interface for capabilities agents can invoke.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case recommended)
//   - Define proper JSON schema for parameters
//   - Handle errors gracefully
//   - Be safe for concurrent use; the registry is shared across runs
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool
	// does, provided to the model to guide tool selection.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool. The CallContext exposes the correlation id,
	// the invoking agent and a transfer accumulator; args have already been
	// normalized by extraction.
	Call(callCtx *CallContext, args map[string]any) (any, error)
}

// Transfer is the routing-intent value a handler returns (or accumulates on
// its CallContext) to request an explicit hand-off to another agent.
type Transfer struct {
	Target core.Node `json:"target"`
	Note   string    `json:"note,omitempty"`
}

// CallContext is the constrained surface handed to a tool handler for one
// invocation. It correlates the handler with the originating call and lets
// routing tools request a control transfer without reaching into run state.
type CallContext struct {
	ctx      context.Context
	callID   string
	agent    core.Node
	logger   logging.Logger
	transfer *Transfer
}

// NewCallContext binds a call context to the invoking agent and the
// originating call id.
func NewCallContext(ctx context.Context, callID string, agent core.Node, logger logging.Logger) *CallContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &CallContext{ctx: ctx, callID: callID, agent: agent, logger: logger}
}

// Context returns the context associated with the tool invocation.
func (cc *CallContext) Context() context.Context { return cc.ctx }

// CallID returns the correlation id of the originating tool call.
func (cc *CallContext) CallID() string { return cc.callID }

// Agent returns the agent whose turn produced the tool call.
func (cc *CallContext) Agent() core.Node { return cc.agent }

// Logger returns the logger associated with the tool invocation.
func (cc *CallContext) Logger() logging.Logger { return cc.logger }

// TransferTo records a control-transfer request. The dispatcher reads it
// after the handler returns; the last request wins.
func (cc *CallContext) TransferTo(target core.Node, note string) {
	cc.transfer = &Transfer{Target: target, Note: note}
	cc.logger.Info("tool.transfer.request", "from_agent", cc.agent, "to_agent", target, "call_id", cc.callID)
}

// Transfer returns the accumulated control-transfer request, if any.
func (cc *CallContext) Transfer() *Transfer { return cc.transfer }

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
