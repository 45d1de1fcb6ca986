// Package dispatch executes canonical tool calls against the registry and
// converts every possible handler behavior (result, error, panic, routing
// intent) into a core.ToolOutcome. A misbehaving tool must never crash the
// workflow; that containment is this package's single most important
// guarantee.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/hupe1980/agentrelay/core"
	"github.com/hupe1980/agentrelay/logging"
	"github.com/hupe1980/agentrelay/tool"
)

// Options configures a Dispatcher.
type Options struct {
	Logger logging.Logger
}

// Dispatcher resolves tool calls to registered handlers and captures their
// outcomes. It holds no per-run state and is safe for concurrent use by
// multiple runs sharing one registry.
type Dispatcher struct {
	logger logging.Logger
}

// New constructs a Dispatcher.
func New(optFns ...func(o *Options)) *Dispatcher {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dispatcher{logger: opts.Logger}
}

// Dispatch invokes the handler registered for call.Name and converts the
// result into an outcome:
//
//   - unknown name          -> Failure("tool not found: <name>")
//   - handler error / panic -> Failure with the fault description
//   - routing intent        -> ControlTransfer (a *tool.Transfer return
//     value or a transfer accumulated on the CallContext)
//   - anything else         -> Value with the stringified result
//
// Dispatch never returns an error and never propagates a panic.
func (d *Dispatcher) Dispatch(ctx context.Context, invoker core.Node, call core.ToolCall, reg *tool.Registry) core.ToolOutcome {
	impl, ok := reg.Lookup(call.Name)
	if !ok {
		d.logger.Warn("dispatch.tool_not_found", "tool", call.Name, "call_id", call.ID, "agent", invoker)
		return core.NewFailureOutcome(call.ID, call.Name, fmt.Sprintf("tool not found: %s", call.Name))
	}

	callCtx := tool.NewCallContext(ctx, call.ID, invoker, d.logger)

	start := time.Now()
	var (
		result any
		err    error
	)
	func() { // panic safety
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("tool %s panicked: %v", call.Name, r)
				d.logger.Error("dispatch.tool_panic", "tool", call.Name, "call_id", call.ID, "recover", r, "stack", string(debug.Stack()))
			}
		}()
		result, err = impl.Call(callCtx, call.CloneArgs())
	}()

	d.logger.Info(
		"dispatch.tool_executed",
		"tool", call.Name,
		"call_id", call.ID,
		"agent", invoker,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err != nil,
	)

	if err != nil {
		return core.NewFailureOutcome(call.ID, call.Name, err.Error())
	}

	if tr := transferIntent(result, callCtx); tr != nil {
		return core.NewTransferOutcome(call.ID, call.Name, tr.Target, tr.Note)
	}

	return core.NewValueOutcome(call.ID, call.Name, stringify(result))
}

// DispatchPending dispatches every pending call on state in order,
// appending one tool-role message per outcome to the history. Pending is
// always empty when DispatchPending returns, even on cancellation.
func (d *Dispatcher) DispatchPending(ctx context.Context, invoker core.Node, state *core.RunState, reg *tool.Registry) []core.ToolOutcome {
	calls := state.TakePending()
	if len(calls) == 0 {
		d.logger.Warn("dispatch.no_pending_calls", "agent", invoker)
		return nil
	}

	outcomes := make([]core.ToolOutcome, 0, len(calls))
	for i, call := range calls {
		if err := ctx.Err(); err != nil {
			d.logger.Warn("dispatch.cancelled", "remaining", len(calls)-i, "error", err.Error())
			break
		}
		outcome := d.Dispatch(ctx, invoker, call, reg)
		state.Append(outcome.ToMessage())
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// transferIntent extracts a routing intent from the handler's return value
// or its call context. A returned value wins over an accumulated one.
func transferIntent(result any, callCtx *tool.CallContext) *tool.Transfer {
	switch v := result.(type) {
	case *tool.Transfer:
		if v != nil {
			return v
		}
	case tool.Transfer:
		return &v
	}
	return callCtx.Transfer()
}

// stringify serializes a handler result for the tool-result message.
func stringify(result any) string {
	switch v := result.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", v)
	}
}
