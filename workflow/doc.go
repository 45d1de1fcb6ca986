// Package workflow drives a multi-agent run to completion. The engine
// alternates agent turns with tool dispatch steps, consulting the router
// after each one, until control reaches the end sentinel or the step
// ceiling is hit.
package workflow
