package core

import "fmt"

// OutcomeKind discriminates the ToolOutcome union.
type OutcomeKind int

const (
	// OutcomeValue is a successful dispatch carrying a serialized result.
	OutcomeValue OutcomeKind = iota
	// OutcomeFailure records a handler error, panic or unknown tool name.
	OutcomeFailure
	// OutcomeControlTransfer requests an explicit hand-off to another agent.
	OutcomeControlTransfer
)

// String implements fmt.Stringer.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeValue:
		return "value"
	case OutcomeFailure:
		return "failure"
	case OutcomeControlTransfer:
		return "control_transfer"
	default:
		return "unknown"
	}
}

// ToolOutcome is the result of dispatching one ToolCall. Exactly one
// variant is populated, selected by Kind: Text for value and failure
// outcomes, Target/Note for control transfers. CallID and Tool correlate
// the outcome back to the originating call.
type ToolOutcome struct {
	Kind   OutcomeKind `json:"kind"`
	CallID string      `json:"call_id"`
	Tool   string      `json:"tool"`
	Text   string      `json:"text,omitempty"`
	Target Node        `json:"target,omitempty"`
	Note   string      `json:"note,omitempty"`
}

// NewValueOutcome builds a success outcome with a serialized result.
func NewValueOutcome(callID, tool, text string) ToolOutcome {
	return ToolOutcome{Kind: OutcomeValue, CallID: callID, Tool: tool, Text: text}
}

// NewFailureOutcome builds a failure outcome whose text carries the fault
// description for agent-visible diagnosis.
func NewFailureOutcome(callID, tool, message string) ToolOutcome {
	return ToolOutcome{Kind: OutcomeFailure, CallID: callID, Tool: tool, Text: message}
}

// NewTransferOutcome builds a control-transfer outcome.
func NewTransferOutcome(callID, tool string, target Node, note string) ToolOutcome {
	return ToolOutcome{Kind: OutcomeControlTransfer, CallID: callID, Tool: tool, Target: target, Note: note}
}

// IsFailure reports whether the outcome records a fault.
func (o ToolOutcome) IsFailure() bool { return o.Kind == OutcomeFailure }

// IsTransfer reports whether the outcome requests a hand-off.
func (o ToolOutcome) IsTransfer() bool { return o.Kind == OutcomeControlTransfer }

// ToMessage renders the outcome as the tool-role message appended to run
// history, so failures and transfers are visible to subsequent agent turns.
func (o ToolOutcome) ToMessage() Message {
	switch o.Kind {
	case OutcomeFailure:
		return NewToolMessage(o.Tool, fmt.Sprintf("Error: %s", o.Text))
	case OutcomeControlTransfer:
		note := o.Note
		if note == "" {
			note = fmt.Sprintf("Routing to %s", o.Target)
		}
		return NewToolMessage(o.Tool, note)
	default:
		return NewToolMessage(o.Tool, o.Text)
	}
}
