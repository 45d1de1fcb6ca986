package tool

import (
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"
)

// FunctionTool is a generic adapter that exposes a plain Go function as a
// tool.
//
// Responsibilities:
//   - Holds a JSON Schema parameter specification
//   - Validates supplied arguments against that schema before execution
//   - Invokes the wrapped function with the per-invocation CallContext
//   - Normalizes error handling so callers receive *ToolError with
//     consistent codes:
//     VALIDATION_ERROR -> schema / argument mismatch
//     EXECUTION_ERROR  -> underlying function returned a non-ToolError
//     (custom codes preserved if the function returns *ToolError directly)
//
// A FunctionTool has no internal mutable state after construction and is
// safe for concurrent use by multiple goroutines.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	fn          func(callCtx *CallContext, args map[string]any) (any, error)
}

// NewFunctionTool constructs a FunctionTool from explicit schema and function.
//
// Example:
//
//	writeTool := NewFunctionTool(
//	  "write_file",
//	  "Write content to a file at the given path",
//	  map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	      "path":    map[string]any{"type": "string"},
//	      "content": map[string]any{"type": "string"},
//	    },
//	    "required": []string{"path", "content"},
//	  },
//	  func(cc *CallContext, args map[string]any) (any, error) {
//	    return writeFile(args["path"].(string), args["content"].(string))
//	  },
//	)
func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(callCtx *CallContext, args map[string]any) (any, error),
) *FunctionTool {
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// Name returns the unique tool name used in function call declarations.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the short natural language description exposed to models.
func (t *FunctionTool) Description() string { return t.description }

// Parameters returns the JSON schema describing expected arguments.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// Call validates the provided args against the declared schema then invokes
// the underlying function. Validation or execution failures are wrapped (or
// passed through) as *ToolError for uniform downstream handling.
func (t *FunctionTool) Call(callCtx *CallContext, args map[string]any) (any, error) {
	logger := callCtx.Logger()
	start := time.Now()

	logger.Debug("tool.call.start", "tool", t.name, "call_id", callCtx.CallID())

	if err := t.validate(args); err != nil {
		logger.Warn("tool.call.validation_failed", "tool", t.name, "error", err.Error())
		return nil, err
	}

	result, err := t.fn(callCtx, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok { // Already a ToolError -> just log and forward
			logger.Error("tool.call.error", "tool", t.name, "error", toolErr.Message)
			return nil, toolErr
		}

		logger.Error("tool.call.error", "tool", t.name, "error", err.Error())

		return nil, &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    "EXECUTION_ERROR",
		}
	}

	logger.Info("tool.call.success", "tool", t.name, "duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

// validate checks args against the declared parameter schema. A nil or
// empty schema disables validation.
func (t *FunctionTool) validate(args map[string]any) error {
	if len(t.parameters) == 0 {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(t.parameters),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return &ToolError{
			Tool:    t.name,
			Message: fmt.Sprintf("schema validation could not run: %v", err),
			Code:    "VALIDATION_ERROR",
		}
	}

	if !result.Valid() {
		msg := "invalid arguments"
		if errs := result.Errors(); len(errs) > 0 {
			msg = errs[0].String()
		}
		return &ToolError{
			Tool:    t.name,
			Message: fmt.Sprintf("parameter validation failed: %s", msg),
			Code:    "VALIDATION_ERROR",
			Details: result.Errors(),
		}
	}

	return nil
}
