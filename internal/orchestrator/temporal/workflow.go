package temporal

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/pvkg/pvqa/internal/dispatcher"
	"github.com/pvkg/pvqa/internal/evidence"
	"github.com/pvkg/pvqa/internal/orchestrator"
	"github.com/pvkg/pvqa/internal/tools"
)

const (
	// TaskQueue is the default queue RunQueryWorkflow and Activities are
	// registered on.
	TaskQueue = "pvqa-run-query"

	llmActivityTimeout  = 60 * time.Second
	toolActivityTimeout = 30 * time.Second
)

var retryPolicy = &temporal.RetryPolicy{
	InitialInterval:    time.Second,
	BackoffCoefficient: 2.0,
	MaximumAttempts:    3,
}

// WorkflowInput is RunQueryWorkflow's serializable input.
type WorkflowInput struct {
	QueryText     string `json:"query_text"`
	MaxIterations int    `json:"max_iterations"`
}

// RunQueryWorkflow drives one query through the same init -> plan ->
// dispatch -> observe -> {plan | narrate | abort} decisions as
// orchestrator.Engine.Run, using Activities for every step that performs
// IO and workflow.Context's deterministic clock/cancellation for the rest.
func RunQueryWorkflow(ctx workflow.Context, in WorkflowInput) (orchestrator.Result, error) {
	var a *Activities // method name resolution only; activities run on the worker

	llmOpts := workflow.ActivityOptions{
		StartToCloseTimeout: llmActivityTimeout,
		RetryPolicy:         retryPolicy,
	}
	toolOpts := workflow.ActivityOptions{
		StartToCloseTimeout: toolActivityTimeout,
		RetryPolicy:         retryPolicy,
	}

	pack := evidence.New()
	snapshot := pack.Export()
	maxIter := clampIterations(in.MaxIterations)

	var trace []orchestrator.IterationLog
	for {
		if err := ctx.Err(); err != nil {
			return finish(ctx, llmOpts, in.QueryText, snapshot, trace, orchestrator.ReasonCancelled, true), nil
		}

		snapshot.Iteration++
		iter := snapshot.Iteration

		var planOut PlanOutput
		planCtx := workflow.WithActivityOptions(ctx, llmOpts)
		if err := workflow.ExecuteActivity(planCtx, a.Plan, PlanInput{QueryText: in.QueryText, Snapshot: snapshot}).Get(planCtx, &planOut); err != nil {
			return finish(ctx, llmOpts, in.QueryText, snapshot, trace, orchestrator.ReasonError, true), nil
		}

		if planOut.Plan.Stop {
			trace = append(trace, orchestrator.IterationLog{Iteration: iter, PlanReason: "planner requested stop"})
			return finish(ctx, llmOpts, in.QueryText, snapshot, trace, orchestrator.ReasonPlannerStop, false), nil
		}

		calls := make([]dispatcher.ToolCallRequest, 0, len(planOut.Plan.Calls))
		for _, c := range planOut.Plan.Calls {
			calls = append(calls, dispatcher.ToolCallRequest{Tool: tools.Name(c.Tool), Args: c.Args, Reason: c.Reason})
		}

		var dispatchOut DispatchOutput
		toolCtx := workflow.WithActivityOptions(ctx, toolOpts)
		if err := workflow.ExecuteActivity(toolCtx, a.Dispatch, DispatchInput{Snapshot: snapshot, Calls: calls}).Get(toolCtx, &dispatchOut); err != nil {
			return finish(ctx, llmOpts, in.QueryText, snapshot, trace, orchestrator.ReasonError, true), nil
		}
		snapshot = dispatchOut.Snapshot

		var observeOut ObserveOutput
		if err := workflow.ExecuteActivity(planCtx, a.Observe, ObserveInput{QueryText: in.QueryText, Snapshot: snapshot}).Get(planCtx, &observeOut); err != nil {
			return finish(ctx, llmOpts, in.QueryText, snapshot, trace, orchestrator.ReasonError, true), nil
		}

		trace = append(trace, orchestrator.IterationLog{
			Iteration:   iter,
			Calls:       dispatchOut.Results,
			Verdict:     verdictLabel(observeOut.Verdict.Sufficient),
			VerdictGaps: observeOut.Verdict.Gaps,
		})

		if observeOut.Verdict.Sufficient {
			return finish(ctx, llmOpts, in.QueryText, snapshot, trace, orchestrator.ReasonSufficient, false), nil
		}
		if iter >= maxIter {
			return finish(ctx, llmOpts, in.QueryText, snapshot, trace, orchestrator.ReasonMaxIterations, true), nil
		}
		for _, gap := range observeOut.Verdict.Gaps {
			snapshot.TraceLog = append(snapshot.TraceLog, "gap: "+gap)
		}
	}
}

func verdictLabel(sufficient bool) string {
	if sufficient {
		return "sufficient"
	}
	return "insufficient"
}

func clampIterations(n int) int {
	const (
		defaultN = 3
		minN     = 1
		maxN     = 10
	)
	if n <= 0 {
		return defaultN
	}
	if n < minN {
		return minN
	}
	if n > maxN {
		return maxN
	}
	return n
}

func finish(ctx workflow.Context, llmOpts workflow.ActivityOptions, queryText string, snapshot evidence.Snapshot, trace []orchestrator.IterationLog, reason orchestrator.CompletionReason, bestEffort bool) orchestrator.Result {
	var a *Activities
	var summary string
	if reason != orchestrator.ReasonCancelled {
		var out NarrateOutput
		narrateCtx := workflow.WithActivityOptions(ctx, llmOpts)
		if err := workflow.ExecuteActivity(narrateCtx, a.Narrate, NarrateInput{QueryText: queryText, Snapshot: snapshot, BestEffort: bestEffort}).Get(narrateCtx, &out); err == nil {
			summary = out.Summary
		}
	}
	return orchestrator.Result{
		Summary: summary,
		Subgraph: snapshot.Subgraph,
		Paths:    snapshot.Paths,
		Evidence: orchestrator.EvidenceSummary{
			Drugs:       snapshot.DrugsByName,
			Genes:       snapshot.GenesByName,
			Diseases:    snapshot.DiseaseByName,
			AEs:         snapshot.AEsByName,
			ClaimIDs:    snapshot.ClaimKeys,
			EvidenceIDs: snapshot.EvidenceKeys,
			DatasetIDs:  snapshot.DatasetKeys,
		},
		Trace:            trace,
		CompletionReason: reason,
	}
}
