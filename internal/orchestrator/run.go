package orchestrator

import (
	"context"
	"fmt"

	"github.com/pvkg/pvqa/internal/dispatcher"
	"github.com/pvkg/pvqa/internal/evidence"
	"github.com/pvkg/pvqa/internal/telemetry"
	"github.com/pvkg/pvqa/internal/tools"
)

// Engine drives one query through the init -> plan -> dispatch -> observe ->
// {plan | narrate | abort} state machine. The default in-process
// implementation is synchronous and sequential: one query runs strictly
// sequentially through its own iterations. Temporal execution in
// internal/orchestrator/temporal mirrors the same decision flow from
// activities instead of re-deriving the state machine.
//
// Library and Logger are shared across concurrently running queries (all
// shared state is read-only); a fresh Dispatcher wrapping that query's own
// Accumulator is built inside Run so concurrent Run calls never share
// mutable accumulator state.
type Engine struct {
	Planner  Planner
	Observer Observer
	Narrator Narrator
	Library  *tools.Library
	Logger   telemetry.Logger
}

// Run executes one query to completion, checking ctx for cancellation at
// every state transition boundary (never mid-tool-call).
func (e *Engine) Run(ctx context.Context, q Query) Result {
	pack := evidence.New()
	dsp := dispatcher.New(e.Library, pack, e.Logger)
	maxIter := clampIterations(q.MaxIterations)

	var trace []IterationLog
	for {
		if err := ctx.Err(); err != nil {
			return e.finish(ctx, q.Text, pack, trace, ReasonCancelled, true)
		}

		iter := pack.NextIteration()
		plan, err := e.Planner.Plan(ctx, q.Text, pack.SummarizeForPrompt())
		if err != nil {
			return e.finish(ctx, q.Text, pack, trace, ReasonError, true)
		}

		if plan.Stop {
			trace = append(trace, IterationLog{Iteration: iter, PlanReason: "planner requested stop"})
			return e.finish(ctx, q.Text, pack, trace, ReasonPlannerStop, false)
		}

		if err := ctx.Err(); err != nil {
			return e.finish(ctx, q.Text, pack, trace, ReasonCancelled, true)
		}

		calls := make([]dispatcher.ToolCallRequest, 0, len(plan.Calls))
		for _, c := range plan.Calls {
			calls = append(calls, dispatcher.ToolCallRequest{
				Tool:   tools.Name(c.Tool),
				Args:   c.Args,
				Reason: c.Reason,
			})
		}
		results := dsp.Dispatch(ctx, dispatcher.ToolPlan{Calls: calls})
		for _, r := range results {
			pack.RecordTrace(fmt.Sprintf("%s(%v) -> %s", r.Tool, r.Args, r.Summary))
		}

		if err := ctx.Err(); err != nil {
			return e.finish(ctx, q.Text, pack, trace, ReasonCancelled, true)
		}

		verdict, err := e.Observer.Observe(ctx, q.Text, pack.SummarizeForPrompt())
		if err != nil {
			return e.finish(ctx, q.Text, pack, trace, ReasonError, true)
		}

		trace = append(trace, IterationLog{
			Iteration:   iter,
			Calls:       results,
			Verdict:     verdictLabel(verdict.Sufficient),
			VerdictGaps: verdict.Gaps,
		})

		if verdict.Sufficient {
			return e.finish(ctx, q.Text, pack, trace, ReasonSufficient, false)
		}
		if iter >= maxIter {
			return e.finish(ctx, q.Text, pack, trace, ReasonMaxIterations, true)
		}
		for _, gap := range verdict.Gaps {
			pack.RecordTrace("gap: " + gap)
		}
	}
}

func verdictLabel(sufficient bool) string {
	if sufficient {
		return "sufficient"
	}
	return "insufficient"
}

func (e *Engine) finish(ctx context.Context, queryText string, pack *evidence.Pack, trace []IterationLog, reason CompletionReason, bestEffort bool) Result {
	var summary string
	if reason != ReasonCancelled {
		text, err := e.Narrator.Narrate(ctx, queryText, pack.SummarizeForPrompt(), bestEffort)
		if err == nil {
			summary = text
		}
	}
	return Result{
		Summary:          summary,
		Subgraph:         pack.Subgraph(),
		Paths:            pack.Paths(),
		Evidence:         buildEvidenceSummary(pack),
		Trace:            trace,
		CompletionReason: reason,
	}
}

func buildEvidenceSummary(pack *evidence.Pack) EvidenceSummary {
	return EvidenceSummary{
		Drugs:       pack.ResolvedDrugs(),
		Genes:       pack.ResolvedGenes(),
		Diseases:    pack.ResolvedDiseases(),
		AEs:         pack.ResolvedAdverseEvents(),
		ClaimIDs:    pack.ClaimKeys(),
		EvidenceIDs: pack.EvidenceKeys(),
		DatasetIDs:  pack.DatasetKeys(),
	}
}
