package tool

import (
	"fmt"

	"github.com/hupe1980/agentrelay/core"
)

// routeTool requests workflow transfer to a fixed target agent. One
// instance exists per agent role; the tool name doubles as the plain-text
// routing directive agents may emit instead of calling the tool.
type routeTool struct {
	target core.Node
}

// NewRouteTool constructs the routing tool for the given target agent.
func NewRouteTool(target core.Node) Tool { return &routeTool{target: target} }

// RoutingTools returns one routing tool per agent role, ready for
// registration alongside the domain tools.
func RoutingTools() []Tool {
	nodes := core.AgentNodes()
	tools := make([]Tool, 0, len(nodes))
	for _, n := range nodes {
		tools = append(tools, NewRouteTool(n))
	}
	return tools
}

func (t *routeTool) Name() string { return fmt.Sprintf("route_to_%s", t.target) }

func (t *routeTool) Description() string {
	return fmt.Sprintf("Route the workflow to the %s agent. Use when the %s is better suited to continue.", t.target, t.target)
}

func (t *routeTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

// Call returns a Transfer value and records it on the call context; the
// dispatcher recognizes either signal and emits a control-transfer outcome.
func (t *routeTool) Call(cc *CallContext, _ map[string]any) (any, error) {
	note := fmt.Sprintf("Routing to %s", t.target)
	cc.TransferTo(t.target, note)
	return &Transfer{Target: t.target, Note: note}, nil
}
