package core

// Node identifies a step target in the workflow graph: one of the fixed
// agent roles, the dispatcher pseudo-node that executes pending tool calls,
// or the end sentinel that terminates the run.
type Node string

const (
	// NodeOrchestrator coordinates the overall task and gathers context.
	NodeOrchestrator Node = "orchestrator"
	// NodePlanner produces implementation plans.
	NodePlanner Node = "planner"
	// NodeCoder implements plans.
	NodeCoder Node = "coder"
	// NodeDispatcher executes pending tool calls; not an agent.
	NodeDispatcher Node = "dispatcher"
	// NodeEnd terminates the workflow loop; not an agent.
	NodeEnd Node = "end"
)

// AgentNodes returns the fixed set of agent roles in a stable order.
func AgentNodes() []Node {
	return []Node{NodeOrchestrator, NodePlanner, NodeCoder}
}

// IsAgent reports whether n names one of the fixed agent roles rather than
// a sentinel.
func (n Node) IsAgent() bool {
	switch n {
	case NodeOrchestrator, NodePlanner, NodeCoder:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (n Node) String() string { return string(n) }
