// Package orchestrator implements the ReAct-style state machine described
// for one query: init -> plan -> dispatch -> observe -> {plan | narrate |
// abort}. Engine.Run drives the loop synchronously in-process;
// orchestrator/temporal carries its own copy of the same loop, run across
// Temporal workflow/activity boundaries for durable execution.
package orchestrator

import (
	"github.com/pvkg/pvqa/internal/dispatcher"
	"github.com/pvkg/pvqa/internal/graphstore"
	"github.com/pvkg/pvqa/internal/tools"
)

// CompletionReason classifies how a query's orchestration loop ended.
type CompletionReason string

const (
	ReasonSufficient    CompletionReason = "sufficient"
	ReasonMaxIterations CompletionReason = "max_iterations"
	ReasonPlannerStop   CompletionReason = "planner_stop"
	ReasonCancelled     CompletionReason = "cancelled"
	ReasonError         CompletionReason = "error"
)

// IterationLog records one plan/dispatch/observe cycle for the trace
// returned to the caller.
type IterationLog struct {
	Iteration   int                  `json:"iteration"`
	PlanReason  string               `json:"plan_reason,omitempty"`
	Calls       []dispatcher.ToolResult `json:"calls"`
	Verdict     string               `json:"verdict,omitempty"`
	VerdictGaps []string             `json:"verdict_gaps,omitempty"`
}

// EvidenceSummary is the `evidence` field of a Result: every id the
// accumulator observed across the query, flattened for the caller.
type EvidenceSummary struct {
	Drugs       map[string]*tools.ResolvedEntity `json:"drugs"`
	Genes       map[string]*tools.ResolvedEntity `json:"genes"`
	Diseases    map[string]*tools.ResolvedEntity `json:"diseases"`
	AEs         map[string]*tools.ResolvedEntity `json:"aes"`
	ClaimIDs    []int64                          `json:"claim_ids"`
	EvidenceIDs []int64                          `json:"evidence_ids"`
	DatasetIDs  []string                         `json:"dataset_ids"`
}

// Result is the run_query response.
type Result struct {
	Summary          string               `json:"summary"`
	Subgraph         *graphstore.Subgraph `json:"subgraph,omitempty"`
	Paths            []tools.MechanisticPath `json:"paths,omitempty"`
	Evidence         EvidenceSummary      `json:"evidence"`
	Trace            []IterationLog       `json:"trace"`
	CompletionReason CompletionReason     `json:"completion_reason"`
}

// Query is the orchestrator's input for one run_query call.
type Query struct {
	Text          string
	MaxIterations int
}

const (
	DefaultMaxIterations = 3
	MinMaxIterations     = 1
	MaxMaxIterations     = 10
)

// clampIterations applies the iteration-count bound (default 3, configurable 1-10).
func clampIterations(n int) int {
	if n <= 0 {
		return DefaultMaxIterations
	}
	if n < MinMaxIterations {
		return MinMaxIterations
	}
	if n > MaxMaxIterations {
		return MaxMaxIterations
	}
	return n
}
