package tools

import (
	"github.com/pvkg/pvqa/internal/graphstore"
	"github.com/pvkg/pvqa/internal/scoring"
	"github.com/pvkg/pvqa/internal/toolerrors"
)

// defaultItemCap is the per-tool "return at most N items" cap every
// collection-returning tool enforces on top of the dispatcher's own
// shaping cap.
const defaultItemCap = 100

// Library implements the ~20 tool functions against a shared Gateway and
// Policy. It holds no per-query state; one Library is constructed at startup
// and shared by reference across concurrent queries.
type Library struct {
	gw     *graphstore.Gateway
	policy *scoring.Policy
}

// New constructs a Library over the given gateway and scoring policy.
func New(gw *graphstore.Gateway, policy *scoring.Policy) *Library {
	return &Library{gw: gw, policy: policy}
}

func requirePositiveKey(argName string, key int64) error {
	if key <= 0 {
		return toolerrors.Errorf(toolerrors.KindInvalidArgs, "%s must be a positive surrogate key, got %d", argName, key)
	}
	return nil
}

func requireNonEmpty(argName string, values []string) error {
	if len(values) == 0 {
		return toolerrors.Errorf(toolerrors.KindInvalidArgs, "%s must contain at least one value", argName)
	}
	return nil
}

func toolerrorsInvalidArg(argName, reason string) error {
	return toolerrors.Errorf(toolerrors.KindInvalidArgs, "%s %s", argName, reason)
}

func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// wrapUpstream converts a graphstore error into a ToolError{kind=upstream}.
// Invalid-argument ToolErrors are produced directly by the tool functions
// before any gateway call is made.
func wrapUpstream(err error) error {
	if err == nil {
		return nil
	}
	return toolerrors.NewWithCause(toolerrors.KindUpstream, err.Error(), err)
}
