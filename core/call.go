package core

// Reserved argument keys that must never reach a tool handler. The
// correlation key is injected by some model-binding layers to thread the
// call id through argument maps; the placeholder key is an artifact of
// single-argument tool wrappers.
const (
	ReservedCorrelationKey = "tool_call_id"
	ReservedPlaceholderKey = "__arg1"
)

// ToolCall is the canonical representation of one tool invocation request.
// Invariants: Name is never empty and Args never contains the reserved
// correlation key. ID is unique within a turn; when the raw payload omitted
// one it is synthesized during extraction.
type ToolCall struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// CloneArgs returns a shallow copy of the argument map so handlers can
// mutate their view without touching the canonical call.
func (c ToolCall) CloneArgs() map[string]any {
	out := make(map[string]any, len(c.Args))
	for k, v := range c.Args {
		out[k] = v
	}
	return out
}
