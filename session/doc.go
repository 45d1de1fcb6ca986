// Package session stores run transcripts keyed by run ID. The in-memory
// store is safe for concurrent access and doubles as the engine's optional
// transcript sink, letting callers inspect a run's history after the fact
// without holding the RunState.
package session
