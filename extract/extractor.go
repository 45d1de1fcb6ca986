// Package extract normalizes the incompatible raw tool-call shapes carried
// by agent messages into the canonical core.ToolCall form. It is the only
// place in the codebase that understands provider wire formats; downstream
// components never see a raw payload.
package extract

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/hupe1980/agentrelay/core"
	"github.com/hupe1980/agentrelay/logging"
)

// Options configures an Extractor.
type Options struct {
	// Logger receives warnings about degraded extraction (dropped
	// fragments, skipped descriptors). Defaults to NoOpLogger.
	Logger logging.Logger
}

// Extractor resolves an agent message into an ordered list of canonical
// tool calls. It tries the known source shapes in a fixed priority order
// and stops at the first that yields at least one call:
//
//  1. Direct call descriptors attached to the message.
//  2. Chat-completions descriptors nested in the message's extra metadata,
//     whose arguments arrive as a JSON-encoded string.
//  3. Typed content blocks tagged tool_use, whose input may be accompanied
//     by a partial_json fragment still to be merged.
//
// Extract never returns an error and never panics: malformed payloads
// degrade to best-effort extraction, and a message with no recognizable
// calls yields an empty result, signalling a plain text turn.
type Extractor struct {
	logger logging.Logger
}

// New constructs an Extractor.
func New(optFns ...func(o *Options)) *Extractor {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Extractor{logger: opts.Logger}
}

// Extract returns the canonical tool calls carried by msg, in order. An
// empty result is not an error; it means the turn was plain text.
func (e *Extractor) Extract(msg core.Message) []core.ToolCall {
	if calls := e.fromDirect(msg); len(calls) > 0 {
		return calls
	}
	if calls := e.fromExtra(msg); len(calls) > 0 {
		return calls
	}
	return e.fromBlocks(msg)
}

// fromDirect handles shape 1: near-canonical descriptors on the message.
func (e *Extractor) fromDirect(msg core.Message) []core.ToolCall {
	var calls []core.ToolCall
	for _, p := range msg.Calls {
		if p.Name == "" {
			e.logger.Warn("extract.direct.unnamed_call_skipped", "id", p.ID)
			continue
		}
		calls = append(calls, normalize(p.ID, p.Name, cloneArgs(p.Args)))
	}
	return calls
}

// fromExtra handles shape 2: a tool_calls list nested in the extra
// metadata mapping, arguments JSON-encoded as a string.
func (e *Extractor) fromExtra(msg core.Message) []core.ToolCall {
	if msg.Extra == nil {
		return nil
	}
	list, ok := msg.Extra["tool_calls"].([]any)
	if !ok {
		return nil
	}

	var calls []core.ToolCall
	for _, entry := range list {
		desc, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		id, _ := desc["id"].(string)
		name, _ := desc["name"].(string)
		var rawArgs any
		if fn, ok := desc["function"].(map[string]any); ok {
			if n, ok := fn["name"].(string); ok && n != "" {
				name = n
			}
			rawArgs = fn["arguments"]
		} else {
			rawArgs = desc["arguments"]
		}
		if name == "" {
			e.logger.Warn("extract.extra.unnamed_call_skipped", "id", id)
			continue
		}

		calls = append(calls, normalize(id, name, e.decodeArgs(name, rawArgs)))
	}
	return calls
}

// fromBlocks handles shape 3: typed content blocks with tool_use entries.
func (e *Extractor) fromBlocks(msg core.Message) []core.ToolCall {
	var calls []core.ToolCall
	for _, b := range msg.Blocks {
		if b.Type != core.BlockTypeToolUse {
			continue
		}
		if b.Name == "" {
			e.logger.Warn("extract.block.unnamed_tool_use_skipped", "id", b.ID)
			continue
		}

		args := cloneArgs(b.Input)
		if b.PartialJSON != "" {
			if frag, ok := parseObject(b.PartialJSON); ok {
				for k, v := range frag {
					args[k] = v
				}
			} else {
				// Fragment is dropped, never fatal.
				e.logger.Warn("extract.block.partial_json_unparsable", "tool", b.Name, "fragment_len", len(b.PartialJSON))
			}
		}

		calls = append(calls, normalize(b.ID, b.Name, args))
	}
	return calls
}

// decodeArgs turns a raw arguments value into an argument map. A
// JSON-encoded object string is parsed; an unparsable string is wrapped as
// a single query argument rather than discarding the call.
func (e *Extractor) decodeArgs(tool string, raw any) map[string]any {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return cloneArgs(v)
	case string:
		if v == "" {
			return map[string]any{}
		}
		if args, ok := parseObject(v); ok {
			return args
		}
		e.logger.Warn("extract.extra.arguments_unparsable", "tool", tool, "len", len(v))
		return map[string]any{"query": v}
	default:
		e.logger.Warn("extract.extra.arguments_unexpected_type", "tool", tool)
		return map[string]any{}
	}
}

// parseObject decodes s when it is a valid JSON object.
func parseObject(s string) (map[string]any, bool) {
	if !gjson.Valid(s) || !gjson.Parse(s).IsObject() {
		return nil, false
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, false
	}
	return out, true
}

// normalize applies the canonical invariants: reserved argument keys are
// stripped and a missing correlation id is synthesized.
func normalize(id, name string, args map[string]any) core.ToolCall {
	if args == nil {
		args = map[string]any{}
	}
	delete(args, core.ReservedPlaceholderKey)
	delete(args, core.ReservedCorrelationKey)
	if id == "" {
		id = core.NewID()
	}
	return core.ToolCall{ID: id, Name: name, Args: args}
}

func cloneArgs(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
