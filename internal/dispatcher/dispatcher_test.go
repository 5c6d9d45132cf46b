package dispatcher

import (
	"context"
	"testing"

	"github.com/pvkg/pvqa/internal/tools"
)

type recordingAccumulator struct {
	calls int
}

func (r *recordingAccumulator) Accumulate(tools.Name, map[string]any, any) { r.calls++ }

func TestDispatchRejectsUnknownTool(t *testing.T) {
	d := New(tools.New(nil, nil), &recordingAccumulator{}, nil)
	results := d.Dispatch(context.Background(), ToolPlan{
		Calls: []ToolCallRequest{{Tool: "not_a_real_tool"}},
	})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].OK {
		t.Fatal("expected unknown tool call to fail")
	}
	if results[0].ErrorKind != ErrorUnknownTool {
		t.Fatalf("expected ErrorUnknownTool, got %v", results[0].ErrorKind)
	}
}

func TestDispatchRejectsMissingRequiredArg(t *testing.T) {
	d := New(tools.New(nil, nil), &recordingAccumulator{}, nil)
	results := d.Dispatch(context.Background(), ToolPlan{
		Calls: []ToolCallRequest{{Tool: tools.GetDrugTargets, Args: map[string]any{}}},
	})
	if results[0].OK {
		t.Fatal("expected missing drug_key to fail")
	}
	if results[0].ErrorKind != ErrorInvalidArgs {
		t.Fatalf("expected ErrorInvalidArgs, got %v", results[0].ErrorKind)
	}
}

func TestDispatchContinuesPlanAfterFailure(t *testing.T) {
	d := New(tools.New(nil, nil), &recordingAccumulator{}, nil)
	results := d.Dispatch(context.Background(), ToolPlan{
		Calls: []ToolCallRequest{
			{Tool: "bogus_one"},
			{Tool: "bogus_two"},
		},
	})
	if len(results) != 2 {
		t.Fatalf("expected both calls to produce a result, got %d", len(results))
	}
}

func TestShapeTruncatesListsOverThirty(t *testing.T) {
	items := make([]int, 45)
	shaped, truncated := Shape(items)
	if !truncated {
		t.Fatal("expected truncated=true for a 45-item slice")
	}
	got := shaped.([]int)
	if len(got) != shapeItemCap {
		t.Fatalf("expected %d items, got %d", shapeItemCap, len(got))
	}
}

func TestShapeDoesNotTruncateAtOrBelowCap(t *testing.T) {
	items := make([]int, shapeItemCap)
	_, truncated := Shape(items)
	if truncated {
		t.Fatal("expected truncated=false at exactly the cap")
	}
}
