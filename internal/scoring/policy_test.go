package scoring

import "testing"

func strength(v float64) *float64 { return &v }

func TestScoreHigherStrengthWinsAtEqualLength(t *testing.T) {
	p := NewDefaultPolicy()
	high := PathInput{PrimaryClaim: ClaimScore{Strength: strength(0.9)}, Claims: []ClaimScore{{Strength: strength(0.9)}}}
	low := PathInput{PrimaryClaim: ClaimScore{Strength: strength(0.4)}, Claims: []ClaimScore{{Strength: strength(0.4)}}}

	s1 := p.Score(high, 2, nil)
	s2 := p.Score(low, 2, nil)
	if !(s1 > s2) {
		t.Fatalf("expected higher strength to score higher: %v vs %v", s1, s2)
	}
}

func TestScoreShorterPathWinsAtEqualStrength(t *testing.T) {
	p := NewDefaultPolicy()
	input := PathInput{PrimaryClaim: ClaimScore{Strength: strength(0.8)}, Claims: []ClaimScore{{Strength: strength(0.8)}}}

	short := p.Score(input, 1, nil)
	long := p.Score(input, 3, nil)
	if !(short > long) {
		t.Fatalf("expected shorter path to score higher: %v vs %v", short, long)
	}
}

func TestScoreMultiSourceBonusIsExactlyOneTwo(t *testing.T) {
	p := NewDefaultPolicy()
	single := PathInput{
		PrimaryClaim: ClaimScore{Strength: strength(0.6)},
		Claims:       []ClaimScore{{Strength: strength(0.6), EvidenceKeys: []int64{1}}},
	}
	double := PathInput{
		PrimaryClaim: ClaimScore{Strength: strength(0.6)},
		Claims: []ClaimScore{
			{Strength: strength(0.6), EvidenceKeys: []int64{1}},
			{Strength: strength(0.6), EvidenceKeys: []int64{2}},
		},
	}

	s1 := p.Score(single, 1, nil)
	s2 := p.Score(double, 1, nil)
	got := s2 / s1
	if diff := got - MultiSourceBonus; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected exactly %v multiplier, got %v", MultiSourceBonus, got)
	}
}

func TestScoreNullStrengthDefaultsToPointFive(t *testing.T) {
	p := NewDefaultPolicy()
	input := PathInput{PrimaryClaim: ClaimScore{Strength: nil}, Claims: []ClaimScore{{Strength: nil}}}
	got := p.Score(input, 0, nil)
	if got != DefaultStrength {
		t.Fatalf("expected null strength to score as %v, got %v", DefaultStrength, got)
	}
}

func TestScoreContextBoostAppliesOncePerDistinctDisease(t *testing.T) {
	p := NewDefaultPolicy()
	input := PathInput{
		PrimaryClaim:    ClaimScore{Strength: strength(0.2)},
		Claims:          []ClaimScore{{Strength: strength(0.2)}},
		PathDiseaseKeys: []int64{100, 100, 200},
	}
	withoutBoost := p.Score(PathInput{PrimaryClaim: input.PrimaryClaim, Claims: input.Claims}, 0, nil)
	withBoost := p.Score(input, 0, []int64{100, 200})

	want := clamp01(withoutBoost * ContextBoost * ContextBoost)
	if withBoost != want {
		t.Fatalf("expected boost applied once per distinct disease: got %v want %v", withBoost, want)
	}
}

func TestScoreClampsToUnitInterval(t *testing.T) {
	p := NewDefaultPolicy()
	input := PathInput{
		PrimaryClaim:    ClaimScore{Strength: strength(1.0)},
		Claims:          []ClaimScore{{Strength: strength(1.0), EvidenceKeys: []int64{1}}, {Strength: strength(1.0), EvidenceKeys: []int64{2}}},
		PathDiseaseKeys: []int64{1, 2, 3},
	}
	got := p.Score(input, 0, []int64{1, 2, 3})
	if got > 1.0 {
		t.Fatalf("expected score clamped to 1.0, got %v", got)
	}
}

func TestRankOrdersByScoreThenLengthThenDatasetsThenNodeKeys(t *testing.T) {
	paths := []RankedPath{
		{ID: "a", Score: 0.5, HopCount: 2, DistinctDatasets: 1, NodeKeys: []int64{3, 4}},
		{ID: "b", Score: 0.5, HopCount: 1, DistinctDatasets: 2, NodeKeys: []int64{1, 2}},
		{ID: "c", Score: 0.9, HopCount: 3, DistinctDatasets: 1, NodeKeys: []int64{9, 9}},
		{ID: "d", Score: 0.5, HopCount: 1, DistinctDatasets: 1, NodeKeys: []int64{5, 6}},
	}
	ranked := Rank(paths)
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	want := []string{"c", "d", "b", "a"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("rank order mismatch: got %v want %v", ids, want)
		}
	}
}

func TestScoreEdgesUsesDefaultsAndFallback(t *testing.T) {
	p := NewDefaultPolicy()
	edges := []ScoredEdge{
		{FromKey: 1, ToKey: 2, Category: "TARGETS"},
		{FromKey: 2, ToKey: 3, Category: "SOMETHING_UNKNOWN"},
	}
	scored := p.ScoreEdges(edges)
	if scored[0].Weight != 1.0 {
		t.Fatalf("expected TARGETS weight 1.0, got %v", scored[0].Weight)
	}
	if scored[1].Weight != defaultEdgeWeight {
		t.Fatalf("expected fallback weight %v, got %v", defaultEdgeWeight, scored[1].Weight)
	}
}
