package agent

import (
	"fmt"

	"github.com/hupe1980/agentrelay/core"
)

const orchestratorInstruction = `You are the orchestrator agent.

Your responsibilities are:

1. GATHER CONTEXT: Use the available tools to understand the task and the
   codebase before involving anyone else.
2. ROUTE TO SPECIALISTS: When context is complete, route work onward.
   - Use the route_to_planner tool when you need plans created.
   - Use the route_to_coder tool when plans are ready for implementation.
3. COORDINATE: Manage the overall workflow until completion.

CRITICAL:
- You MUST use tool calls, not code blocks. Call tools directly as
  function calls; each call is executed and you receive the result.
- When the task is fully complete, reply with a plain summary and no
  tool calls.`

const plannerInstruction = `You are the planner agent. Your responsibility is to:
1. Analyze the context provided by the orchestrator.
2. Create 3 different technical variations to solve the problem, each
   clearly labeled with implementation steps, key considerations and
   potential challenges.
3. When complete, use the route_to_coder tool to send the plans to the coder.

Do not implement the solutions - that is the coder's job.`

const coderInstruction = `You are the coder agent.

You work with two other agents:
- Orchestrator: sets code context and directs the workflow.
- Planner: proposes multiple solutions to the stated problem.

Your job is to implement the solutions provided by the planner:
1. Create a new branch with a descriptive name.
2. Make the necessary code changes using the available tools.
3. Test the changes and commit with a clear message.
4. Use the route_to_orchestrator tool when complete.

If you encounter errors, fix them and try again. Do your best to
complete the task on your own - the orchestrator and planner don't know
how to code.`

// Agent binds one workflow role to its instruction and description.
type Agent struct {
	node        core.Node
	description string
	instruction Instruction
}

// Options configures an Agent.
type Options struct {
	Description string
	Instruction Instruction
}

// New creates an agent for the given role node.
func New(node core.Node, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Description: fmt.Sprintf("Agent %s", node),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Agent{
		node:        node,
		description: opts.Description,
		instruction: opts.Instruction,
	}
}

// WithDescription overrides the generated description.
func WithDescription(desc string) func(o *Options) {
	return func(o *Options) { o.Description = desc }
}

// WithInstruction sets the agent's role instruction.
func WithInstruction(instruction Instruction) func(o *Options) {
	return func(o *Options) { o.Instruction = instruction }
}

// Node returns the workflow role this agent fills.
func (a *Agent) Node() core.Node { return a.node }

// Description returns a short description of this agent's purpose.
func (a *Agent) Description() string { return a.description }

// Instruction returns the agent's role instruction.
func (a *Agent) Instruction() Instruction { return a.instruction }

// NewOrchestrator creates the context-gathering coordinator agent with its
// default instruction.
func NewOrchestrator(optFns ...func(o *Options)) *Agent {
	return newRole(core.NodeOrchestrator, "Gathers context and coordinates the workflow", orchestratorInstruction, optFns)
}

// NewPlanner creates the solution-drafting agent with its default instruction.
func NewPlanner(optFns ...func(o *Options)) *Agent {
	return newRole(core.NodePlanner, "Drafts alternative technical approaches", plannerInstruction, optFns)
}

// NewCoder creates the implementing agent with its default instruction.
func NewCoder(optFns ...func(o *Options)) *Agent {
	return newRole(core.NodeCoder, "Implements the planned changes", coderInstruction, optFns)
}

func newRole(node core.Node, desc, instruction string, optFns []func(o *Options)) *Agent {
	base := []func(o *Options){
		WithDescription(desc),
		WithInstruction(NewInstructionFromText(instruction)),
	}
	return New(node, append(base, optFns...)...)
}

// Team maps workflow roles to their agents.
type Team map[core.Node]*Agent

// NewTeam builds a team from the given agents. Later agents replace
// earlier ones holding the same role.
func NewTeam(agents ...*Agent) Team {
	team := make(Team, len(agents))
	for _, a := range agents {
		team[a.node] = a
	}
	return team
}

// DefaultTeam returns the standard orchestrator/planner/coder roster.
func DefaultTeam() Team {
	return NewTeam(NewOrchestrator(), NewPlanner(), NewCoder())
}
