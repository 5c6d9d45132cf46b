package dispatcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/pvkg/pvqa/internal/telemetry"
	"github.com/pvkg/pvqa/internal/toolerrors"
	"github.com/pvkg/pvqa/internal/tools"
)

// Accumulator routes a tool's raw return value into the per-query evidence
// pack. It is the narrow slice of *evidence.Pack the
// dispatcher depends on, kept as an interface here to avoid a package cycle.
type Accumulator interface {
	Accumulate(tool tools.Name, args map[string]any, payload any)
}

// Dispatcher validates ToolPlan calls against the closed allow-list,
// executes them sequentially through the tool library, and shapes results
// for the observer LLM. One Dispatcher is constructed per query (it wraps a
// per-query Accumulator) over shared Library/Logger references.
type Dispatcher struct {
	lib    *tools.Library
	acc    Accumulator
	logger telemetry.Logger
}

// New constructs a Dispatcher over the given tool library and evidence
// accumulator.
func New(lib *tools.Library, acc Accumulator, logger telemetry.Logger) *Dispatcher {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	return &Dispatcher{lib: lib, acc: acc, logger: logger}
}

// Dispatch executes every call in plan, in order, and returns one
// ToolResult per call. It never aborts the plan on a per-call failure — a
// failing call becomes a synthetic error ToolResult and execution
// continues through received→validating→executing(i)→shaping(i)→…→delivered
// for the remaining calls.
func (d *Dispatcher) Dispatch(ctx context.Context, plan ToolPlan) []ToolResult {
	results := make([]ToolResult, 0, len(plan.Calls))
	for _, call := range plan.Calls {
		results = append(results, d.dispatchOne(ctx, call))
	}
	return results
}

func (d *Dispatcher) dispatchOne(ctx context.Context, call ToolCallRequest) ToolResult {
	// Step 1: allow-list check.
	fn, ok := invokeTable[call.Tool]
	if !ok || !tools.AllowList[call.Tool] {
		d.logger.Warn(ctx, "rejected tool call outside allow-list", "tool", string(call.Tool))
		return ToolResult{
			Tool: call.Tool, Args: call.Args, OK: false,
			ErrorKind: ErrorUnknownTool, ErrorMsg: fmt.Sprintf("tool %q is not a recognized tool", call.Tool),
		}
	}

	// Steps 2-3: argument coercion happens inside fn, immediately before
	// executing; a coercion failure and a library-internal invalid_args
	// failure are both reported the same way.
	payload, err := fn(ctx, d.lib, call.Args)
	if err != nil {
		kind, msg := classifyError(err)
		d.logger.Info(ctx, "tool call failed", "tool", string(call.Tool), "kind", string(kind))
		return ToolResult{Tool: call.Tool, Args: call.Args, OK: false, ErrorKind: kind, ErrorMsg: msg}
	}

	// Step 4: accumulation, against the raw (unshaped) payload.
	if d.acc != nil {
		d.acc.Accumulate(call.Tool, call.Args, payload)
	}

	// Step 5: shaping for the observer LLM.
	shaped, truncated := Shape(payload)
	return ToolResult{
		Tool: call.Tool, Args: call.Args, OK: true,
		Payload: shaped, Truncated: truncated, Summary: Summarize(call.Tool, payload),
	}
}

func classifyError(err error) (ErrorKind, string) {
	var ae *argError
	if errors.As(err, &ae) {
		return ErrorInvalidArgs, ae.Error()
	}
	var te *toolerrors.ToolError
	if errors.As(err, &te) {
		switch te.Kind {
		case toolerrors.KindInvalidArgs:
			return ErrorInvalidArgs, te.Error()
		case toolerrors.KindTimeout:
			return ErrorTimeout, te.Error()
		default:
			return ErrorUpstream, te.Error()
		}
	}
	return ErrorUpstream, err.Error()
}
