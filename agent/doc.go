// Package agent defines the fixed agent roles of a workflow run, their
// role instructions, and the Runner that turns a role plus conversation
// history into a single model-backed turn.
//
// The roster is deliberately small: an orchestrator that gathers context
// and coordinates, a planner that drafts solution approaches, and a coder
// that implements them. Control moves between them through routing tools
// or plain-text routing directives.
package agent
