// Package scoring implements the path-scoring formula: claim-strength
// normalization, length penalty, multi-source bonus, context boosting, and
// the optional source-weight refinement. It holds no state beyond its
// configured weight tables and is safe to share by reference across
// concurrent queries.
package scoring

import (
	"math"
	"sort"
)

// DefaultStrength is substituted for a claim whose strength_score is null —
// "no native confidence recorded", not "zero confidence".
const DefaultStrength = 0.5

// Length penalty, multi-source bonus, and context boost weights.
const (
	LengthPenalty     = 0.95
	MultiSourceBonus  = 1.2
	ContextBoost      = 1.5
)

// DefaultSourceWeights is the default per-dataset weight table for the
// optional source-weight refinement.
var DefaultSourceWeights = map[string]float64{
	"drugcentral": 1.00,
	"opentargets": 0.95,
	"chembl":      0.90,
	"reactome":    0.90,
	"gtop":        0.85,
	"clingen":     0.85,
	"sider":       0.80,
	"hpo":         0.70,
	"ctd":         0.70,
	"string":      0.60,
	"faers":       0.50,
	"openfda":     0.50,
}

// DefaultEdgeWeights is the default per-edge-category weight table consumed
// by ScoreEdges.
var DefaultEdgeWeights = map[string]float64{
	"TARGETS":         1.0,
	"IN_PATHWAY":      0.9,
	"ASSOCIATED_WITH": 0.8,
	"CAUSES":          0.7,
}

// defaultEdgeWeight is used for any edge category absent from the table.
const defaultEdgeWeight = 0.5

// ClaimScore is the minimal claim-level information Score needs: its
// strength (nil meaning null/unrecorded), its dataset key for the optional
// source-weight refinement, and the evidence keys it cites for the
// multi-source bonus.
type ClaimScore struct {
	Strength     *float64
	DatasetKey   string
	EvidenceKeys []int64
}

// PathInput is the information Score needs about one candidate path: its
// primary (first-hop) claim, every claim contributing along the path, and
// the disease node keys it passes through (for context boosting).
type PathInput struct {
	PrimaryClaim    ClaimScore
	Claims          []ClaimScore
	PathDiseaseKeys []int64 // disease node keys traversed by this path, in order
}

// Policy computes path scores. ApplySourceWeights is an optional
// refinement, default off (see DESIGN.md).
type Policy struct {
	SourceWeights      map[string]float64
	EdgeWeights        map[string]float64
	ApplySourceWeights bool
}

// NewDefaultPolicy returns a Policy using the default weight tables
// with the source-weight refinement disabled.
func NewDefaultPolicy() *Policy {
	return &Policy{
		SourceWeights:      DefaultSourceWeights,
		EdgeWeights:        DefaultEdgeWeights,
		ApplySourceWeights: false,
	}
}

// Score computes S(ρ) = σ_base(c*) · λ^k · μ(ρ) for a path of hop count k,
// applying the context boost once per distinct matching disease key in
// conditionKeys and, if enabled, the mean-source-weight refinement. The
// result is clamped to [0,1].
func (p *Policy) Score(path PathInput, hopCount int, conditionKeys []int64) float64 {
	sigmaBase := strengthOrDefault(path.PrimaryClaim.Strength)
	score := sigmaBase * math.Pow(LengthPenalty, float64(hopCount)) * multiSourceBonus(path.Claims)

	if len(conditionKeys) > 0 {
		want := map[int64]bool{}
		for _, k := range conditionKeys {
			want[k] = true
		}
		seen := map[int64]bool{}
		for _, dk := range path.PathDiseaseKeys {
			if want[dk] && !seen[dk] {
				seen[dk] = true
				score *= ContextBoost
			}
		}
	}

	if p.ApplySourceWeights && len(path.Claims) > 1 {
		score *= p.meanSourceWeight(path.Claims)
	}

	return clamp01(score)
}

func (p *Policy) meanSourceWeight(claims []ClaimScore) float64 {
	if len(claims) == 0 {
		return 1.0
	}
	var sum float64
	for _, c := range claims {
		w, ok := p.SourceWeights[c.DatasetKey]
		if !ok {
			w = 1.0
		}
		sum += w
	}
	return sum / float64(len(claims))
}

// multiSourceBonus returns 1.2 if the path's claims cite more than one
// distinct Evidence record, else 1.0.
func multiSourceBonus(claims []ClaimScore) float64 {
	seen := map[int64]bool{}
	for _, c := range claims {
		for _, ek := range c.EvidenceKeys {
			seen[ek] = true
		}
	}
	if len(seen) > 1 {
		return MultiSourceBonus
	}
	return 1.0
}

func strengthOrDefault(s *float64) float64 {
	if s == nil {
		return DefaultStrength
	}
	return *s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RankedPath pairs a caller-supplied identifier with its computed score and
// the tie-break inputs: hop count, distinct dataset count, and a
// deterministic node-key sequence.
type RankedPath struct {
	ID              string
	Score           float64
	HopCount        int
	DistinctDatasets int
	NodeKeys        []int64
}

// Rank sorts paths by score descending; ties break by shorter path first,
// then fewer distinct datasets, then lexicographic node-key sequence, so
// ranking stays deterministic across repeated calls.
func Rank(paths []RankedPath) []RankedPath {
	out := make([]RankedPath, len(paths))
	copy(out, paths)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.HopCount != b.HopCount {
			return a.HopCount < b.HopCount
		}
		if a.DistinctDatasets != b.DistinctDatasets {
			return a.DistinctDatasets < b.DistinctDatasets
		}
		return lessNodeKeys(a.NodeKeys, b.NodeKeys)
	})
	return out
}

func lessNodeKeys(a, b []int64) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
