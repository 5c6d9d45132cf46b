package tools

import (
	"context"

	"github.com/pvkg/pvqa/internal/graphstore"
	"github.com/pvkg/pvqa/internal/scoring"
)

const (
	defaultSubgraphCap = 30
	maxSubgraphDrugs   = 25
)

// BuildSubgraphRequest mirrors build_subgraph's caller-selected edge
// categories and per-category caps.
type BuildSubgraphRequest struct {
	DrugKeys        []int64
	IncludeTargets  bool
	IncludePathways bool
	IncludeDiseases bool
	IncludeAEs      bool
	MaxTargets      int
	MaxPathways     int
	MaxDiseases     int
	MaxAEs          int
	MinDiseaseScore float64
}

// BuildSubgraphFn assembles a bounded subgraph over the given drugs.
func (l *Library) BuildSubgraphFn(ctx context.Context, req BuildSubgraphRequest) (graphstore.Subgraph, error) {
	if len(req.DrugKeys) == 0 {
		return graphstore.Subgraph{}, toolerrorsInvalidArg("drug_keys", "must contain at least one key")
	}
	if len(req.DrugKeys) > maxSubgraphDrugs {
		return graphstore.Subgraph{}, toolerrorsInvalidArg("drug_keys", "must contain at most 25 keys")
	}
	for _, dk := range req.DrugKeys {
		if dk <= 0 {
			return graphstore.Subgraph{}, toolerrorsInvalidArg("drug_keys", "must contain only positive surrogate keys")
		}
	}
	if req.MinDiseaseScore < 0 || req.MinDiseaseScore > 1 {
		return graphstore.Subgraph{}, toolerrorsInvalidArg("min_disease_score", "must lie in [0,1]")
	}
	if !req.IncludeTargets && !req.IncludePathways && !req.IncludeDiseases && !req.IncludeAEs {
		return graphstore.Subgraph{}, toolerrorsInvalidArg("include_*", "at least one edge category must be selected")
	}

	opts := graphstore.SubgraphOptions{
		IncludeTargets:  req.IncludeTargets,
		IncludePathways: req.IncludePathways,
		IncludeDiseases: req.IncludeDiseases,
		IncludeAEs:      req.IncludeAEs,
		MaxTargets:      clampLimit(req.MaxTargets, defaultSubgraphCap, defaultItemCap),
		MaxPathways:     clampLimit(req.MaxPathways, defaultSubgraphCap, defaultItemCap),
		MaxDiseases:     clampLimit(req.MaxDiseases, defaultSubgraphCap, defaultItemCap),
		MaxAEs:          clampLimit(req.MaxAEs, defaultSubgraphCap, defaultItemCap),
		MinDiseaseScore: req.MinDiseaseScore,
	}
	sg, err := l.gw.BuildSubgraph(ctx, req.DrugKeys, opts)
	if err != nil {
		return graphstore.Subgraph{}, wrapUpstream(err)
	}
	return sg, nil
}

// ScoreEdgesFn annotates a subgraph's edges with numeric weights, using an
// optional caller-supplied override table merged over the policy defaults.
func (l *Library) ScoreEdgesFn(sg graphstore.Subgraph, weightOverrides map[string]float64) []scoring.EdgeScore {
	p := l.policy
	if len(weightOverrides) > 0 {
		merged := make(map[string]float64, len(scoring.DefaultEdgeWeights)+len(weightOverrides))
		for k, v := range p.EdgeWeights {
			merged[k] = v
		}
		for k, v := range weightOverrides {
			merged[k] = v
		}
		p = &scoring.Policy{SourceWeights: p.SourceWeights, EdgeWeights: merged, ApplySourceWeights: p.ApplySourceWeights}
	}
	edges := make([]scoring.ScoredEdge, len(sg.Edges))
	for i, e := range sg.Edges {
		edges[i] = scoring.ScoredEdge{FromKey: e.FromKey, ToKey: e.ToKey, Category: string(e.Category)}
	}
	return p.ScoreEdges(edges)
}
