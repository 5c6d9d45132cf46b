// Package dispatcher validates tool-call requests from the planner against a
// closed allow-list, executes them through the tool library, and shapes
// their results for reinjection into the LLM context.
package dispatcher

import "github.com/pvkg/pvqa/internal/tools"

// ToolCallRequest is one planner-produced call: a tool name from the closed
// enum, its arguments, and an optional reason the planner gives for
// choosing it.
type ToolCallRequest struct {
	Tool   tools.Name
	Args   map[string]any
	Reason string
}

// ToolPlan is an ordered, non-empty sequence of tool calls the planner
// wants executed this iteration, plus an optional stop signal meaning "no
// further tool calls; proceed to narration".
type ToolPlan struct {
	Calls []ToolCallRequest
	Stop  bool
}

// ErrorKind classifies why a ToolResult carries an error rather than a
// payload.
type ErrorKind string

const (
	ErrorUnknownTool ErrorKind = "dispatch.unknown_tool"
	ErrorInvalidArgs ErrorKind = "tool.invalid_args"
	ErrorUpstream    ErrorKind = "tool.upstream"
	ErrorTimeout     ErrorKind = "tool.timeout"
)

// ToolResult is the dispatcher's per-call outcome: the tool name, an echo of
// its arguments, ok/error, the shaped payload (already truncated), and a
// human-readable one-line summary for the trace digest.
type ToolResult struct {
	Tool      tools.Name
	Args      map[string]any
	OK        bool
	ErrorKind ErrorKind
	ErrorMsg  string
	Payload   any
	Truncated bool
	Summary   string
}
