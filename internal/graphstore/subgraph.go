package graphstore

import "context"

// SubgraphEdge is one typed edge in an assembled subgraph, tagged with the
// category score_edges uses to look up a default weight.
type SubgraphEdge struct {
	FromKind, ToKind PathNodeKind
	FromKey, ToKey   int64
	Category         PathEdgeKind
	ClaimKey         int64
	StrengthScore    *float64
	DatasetKey       string
}

// SubgraphOptions controls which edge categories build_subgraph includes and
// how many edges per category per drug it keeps.
type SubgraphOptions struct {
	IncludeTargets     bool
	IncludePathways    bool
	IncludeDiseases    bool
	IncludeAEs         bool
	MaxTargets         int
	MaxPathways        int
	MaxDiseases        int
	MaxAEs             int
	MinDiseaseScore    float64
}

// Subgraph is the bounded, multi-drug subgraph build_subgraph assembles for
// visualization. It is intentionally a flat edge list rather than an
// adjacency structure — the tool layer and score_edges operate on edges.
type Subgraph struct {
	Edges []SubgraphEdge
}

// BuildSubgraph assembles a bounded subgraph over the given drugs, applying
// per-category caps so the result stays O(len(drugKeys) x cap).
func (g *Gateway) BuildSubgraph(ctx context.Context, drugKeys []int64, opts SubgraphOptions) (Subgraph, error) {
	var sg Subgraph
	for _, drugKey := range drugKeys {
		if opts.IncludeTargets {
			targets, err := g.GetDrugTargets(ctx, drugKey)
			if err != nil {
				return Subgraph{}, err
			}
			for i, t := range targets {
				if opts.MaxTargets > 0 && i >= opts.MaxTargets {
					break
				}
				sg.Edges = append(sg.Edges, SubgraphEdge{
					FromKind: NodeDrug, FromKey: drugKey,
					ToKind: NodeGene, ToKey: t.Gene.Key,
					Category: EdgeTargets, ClaimKey: t.ClaimKey,
				})
			}
			if opts.IncludePathways {
				for i, t := range targets {
					if opts.MaxTargets > 0 && i >= opts.MaxTargets {
						break
					}
					pathways, err := g.GetGenePathways(ctx, t.Gene.Key)
					if err != nil {
						return Subgraph{}, err
					}
					for j, p := range pathways {
						if opts.MaxPathways > 0 && j >= opts.MaxPathways {
							break
						}
						sg.Edges = append(sg.Edges, SubgraphEdge{
							FromKind: NodeGene, FromKey: t.Gene.Key,
							ToKind: NodePathway, ToKey: p.Pathway.Key,
							Category: EdgeInPathway, ClaimKey: p.ClaimKey,
						})
					}
				}
			}
			if opts.IncludeDiseases {
				for i, t := range targets {
					if opts.MaxTargets > 0 && i >= opts.MaxTargets {
						break
					}
					diseases, err := g.GetGeneDiseases(ctx, t.Gene.Key, opts.MinDiseaseScore)
					if err != nil {
						return Subgraph{}, err
					}
					for j, d := range diseases {
						if opts.MaxDiseases > 0 && j >= opts.MaxDiseases {
							break
						}
						sg.Edges = append(sg.Edges, SubgraphEdge{
							FromKind: NodeGene, FromKey: t.Gene.Key,
							ToKind: NodeDisease, ToKey: d.Disease.Key,
							Category: EdgeAssociatedWith, ClaimKey: d.ClaimKey,
							StrengthScore: d.Score, DatasetKey: d.Dataset,
						})
					}
				}
			}
		}
		if opts.IncludeAEs {
			labelRows, err := g.GetDrugAdverseEvents(ctx, drugKey)
			if err != nil {
				return Subgraph{}, err
			}
			for i, r := range labelRows {
				if opts.MaxAEs > 0 && i >= opts.MaxAEs {
					break
				}
				sg.Edges = append(sg.Edges, SubgraphEdge{
					FromKind: NodeDrug, FromKey: drugKey,
					ToKind: NodeAdverseEvent, ToKey: r.AdverseEvent.Key,
					Category: EdgeCauses, ClaimKey: r.ClaimKey, DatasetKey: r.DatasetKey,
				})
			}
		}
	}
	return sg, nil
}
