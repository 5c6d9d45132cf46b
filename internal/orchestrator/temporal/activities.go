// Package temporal provides a durable Temporal-backed execution of the same
// init -> plan -> dispatch -> observe -> {plan | narrate | abort} state
// machine internal/orchestrator.Engine runs synchronously in-process.
// Workflow code may not perform IO directly, so each state transition that
// calls out to the LLM or the tool library is an Activity; the workflow
// itself only threads evidence.Snapshot data between them and re-derives
// the same decisions internal/orchestrator.Engine.Run makes inline.
package temporal

import (
	"context"
	"fmt"

	"github.com/pvkg/pvqa/internal/dispatcher"
	"github.com/pvkg/pvqa/internal/evidence"
	"github.com/pvkg/pvqa/internal/llm"
	"github.com/pvkg/pvqa/internal/orchestrator"
	"github.com/pvkg/pvqa/internal/telemetry"
	"github.com/pvkg/pvqa/internal/tools"
)

// Activities bundles the non-deterministic dependencies (LLM roles, tool
// library, logger) a workflow execution calls through activity methods.
// One Activities value is registered per worker; it holds no per-query
// state.
type Activities struct {
	Planner  orchestrator.Planner
	Observer orchestrator.Observer
	Narrator orchestrator.Narrator
	Library  *tools.Library
	Logger   telemetry.Logger
}

// PlanInput/PlanOutput and friends are the serializable activity payloads;
// Temporal's data converter marshals these across the workflow/activity
// boundary, so every field must be JSON-friendly (snapshot, not live Pack).

type PlanInput struct {
	QueryText string            `json:"query_text"`
	Snapshot  evidence.Snapshot `json:"snapshot"`
}

type PlanOutput struct {
	Plan llm.ToolPlanDTO `json:"plan"`
}

// Plan runs the planner role against the current evidence snapshot.
func (a *Activities) Plan(ctx context.Context, in PlanInput) (PlanOutput, error) {
	pack := evidence.FromSnapshot(in.Snapshot)
	plan, err := a.Planner.Plan(ctx, in.QueryText, pack.SummarizeForPrompt())
	if err != nil {
		return PlanOutput{}, fmt.Errorf("temporal plan activity: %w", err)
	}
	return PlanOutput{Plan: plan}, nil
}

type DispatchInput struct {
	Snapshot evidence.Snapshot        `json:"snapshot"`
	Calls    []dispatcher.ToolCallRequest `json:"calls"`
}

type DispatchOutput struct {
	Results  []dispatcher.ToolResult `json:"results"`
	Snapshot evidence.Snapshot       `json:"snapshot"`
}

// Dispatch executes one plan's tool calls against the shared Library,
// accumulating into a Pack rehydrated from the prior snapshot, and returns
// the updated snapshot for the next activity.
func (a *Activities) Dispatch(ctx context.Context, in DispatchInput) (DispatchOutput, error) {
	pack := evidence.FromSnapshot(in.Snapshot)
	dsp := dispatcher.New(a.Library, pack, a.Logger)
	results := dsp.Dispatch(ctx, dispatcher.ToolPlan{Calls: in.Calls})
	for _, r := range results {
		pack.RecordTrace(fmt.Sprintf("%s(%v) -> %s", r.Tool, r.Args, r.Summary))
	}
	return DispatchOutput{Results: results, Snapshot: pack.Export()}, nil
}

type ObserveInput struct {
	QueryText string            `json:"query_text"`
	Snapshot  evidence.Snapshot `json:"snapshot"`
}

type ObserveOutput struct {
	Verdict llm.SufficiencyVerdictDTO `json:"verdict"`
}

// Observe runs the observer role against the current evidence snapshot.
func (a *Activities) Observe(ctx context.Context, in ObserveInput) (ObserveOutput, error) {
	pack := evidence.FromSnapshot(in.Snapshot)
	verdict, err := a.Observer.Observe(ctx, in.QueryText, pack.SummarizeForPrompt())
	if err != nil {
		return ObserveOutput{}, fmt.Errorf("temporal observe activity: %w", err)
	}
	return ObserveOutput{Verdict: verdict}, nil
}

type NarrateInput struct {
	QueryText  string            `json:"query_text"`
	Snapshot   evidence.Snapshot `json:"snapshot"`
	BestEffort bool              `json:"best_effort"`
}

type NarrateOutput struct {
	Summary string `json:"summary"`
}

// Narrate runs the narrator role against the final evidence snapshot.
func (a *Activities) Narrate(ctx context.Context, in NarrateInput) (NarrateOutput, error) {
	pack := evidence.FromSnapshot(in.Snapshot)
	text, err := a.Narrator.Narrate(ctx, in.QueryText, pack.SummarizeForPrompt(), in.BestEffort)
	if err != nil {
		return NarrateOutput{}, fmt.Errorf("temporal narrate activity: %w", err)
	}
	return NarrateOutput{Summary: text}, nil
}
