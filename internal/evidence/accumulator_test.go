package evidence

import (
	"strings"
	"testing"

	"github.com/pvkg/pvqa/internal/graphstore"
	"github.com/pvkg/pvqa/internal/tools"
)

func TestAccumulateResolvedDrugsIsIdempotent(t *testing.T) {
	p := New()
	payload := map[string]*tools.ResolvedEntity{
		"aspirin": {Key: 1, Name: "Aspirin", MatchSource: "exact_name", Confidence: 1.0},
	}
	p.Accumulate(tools.ResolveDrugs, nil, payload)
	p.Accumulate(tools.ResolveDrugs, nil, payload)

	got := p.ResolvedDrugs()
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 resolved drug after repeated accumulation, got %d", len(got))
	}
	if got["aspirin"].Key != 1 {
		t.Fatalf("expected key 1, got %d", got["aspirin"].Key)
	}
}

func TestAccumulateCollectsClaimKeys(t *testing.T) {
	p := New()
	payload := []graphstore.DrugTargetRow{
		{Gene: graphstore.Gene{Key: 10}, ClaimKey: 100},
		{Gene: graphstore.Gene{Key: 11}, ClaimKey: 101},
	}
	p.Accumulate(tools.GetDrugTargets, nil, payload)

	keys := p.ClaimKeys()
	if len(keys) != 2 || keys[0] != 100 || keys[1] != 101 {
		t.Fatalf("expected claim keys [100 101], got %v", keys)
	}
}

func TestSummarizeForPromptReflectsCounts(t *testing.T) {
	p := New()
	p.Accumulate(tools.ResolveDrugs, nil, map[string]*tools.ResolvedEntity{
		"aspirin": {Key: 1, Name: "Aspirin", Confidence: 1.0},
	})
	p.NextIteration()
	summary := p.SummarizeForPrompt()
	if summary == "" {
		t.Fatal("expected a non-empty summary")
	}
	if !strings.Contains(summary, "1 drug(s), 0 gene(s)") {
		t.Fatalf("expected summary to count 1 drug and 0 genes, got %q", summary)
	}
}
