// Package core contains the canonical data model shared by every layer of
// AgentRelay: conversation messages with their provider-specific raw
// tool-call carriers, the normalized ToolCall and ToolOutcome types, node
// identities, and the mutable RunState threaded through a workflow run.
//
// Everything in this package is plain data. Behavior lives in the extract,
// dispatch, route and workflow packages, all of which consume these types
// without ever seeing a provider wire format directly.
package core
