package core

// RunState is the complete mutable state of one workflow run.
//
// Contract:
//   - History only grows; nothing is removed or rewritten.
//   - Pending is non-empty only between "agent produced tool calls" and
//     "dispatcher consumed them"; the dispatcher always empties it.
//   - Current is always an agent role or one of the sentinels, never empty.
//   - Steps increases exactly once per engine iteration; only the engine
//     mutates Current and Steps.
//
// A RunState is owned by exactly one in-flight run and is never shared
// across concurrent runs, so it requires no internal locking.
type RunState struct {
	RunID   string     `json:"run_id"`
	History []Message  `json:"history"`
	Current Node       `json:"current"`
	Pending []ToolCall `json:"pending,omitempty"`
	Steps   int        `json:"steps"`
}

// NewRunState seeds a fresh run with a single user message and control at
// the orchestrator.
func NewRunState(task string) *RunState {
	return &RunState{
		RunID:   NewID(),
		History: []Message{NewUserMessage(task)},
		Current: NodeOrchestrator,
	}
}

// Append adds messages to the history. Appending is the only permitted
// history mutation.
func (s *RunState) Append(msgs ...Message) {
	s.History = append(s.History, msgs...)
}

// LastMessage returns the most recent history entry.
func (s *RunState) LastMessage() (Message, bool) {
	if len(s.History) == 0 {
		return Message{}, false
	}
	return s.History[len(s.History)-1], true
}

// TakePending removes and returns the pending calls, restoring the
// invariant that Pending is empty outside a dispatch step.
func (s *RunState) TakePending() []ToolCall {
	calls := s.Pending
	s.Pending = nil
	return calls
}
