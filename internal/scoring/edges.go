package scoring

// EdgeScore annotates one subgraph edge with a numeric weight, the output of
// score_edges.
type EdgeScore struct {
	FromKey, ToKey int64
	Category       string
	Weight         float64
}

// ScoredEdge is the minimal edge shape ScoreEdges needs from the caller
// (graphstore.SubgraphEdge satisfies this by field match at the call site).
type ScoredEdge struct {
	FromKey, ToKey int64
	Category       string
}

// ScoreEdges annotates each edge with its category weight, falling back to
// defaultEdgeWeight for any category absent from the table. A nil weights
// map uses DefaultEdgeWeights.
func (p *Policy) ScoreEdges(edges []ScoredEdge) []EdgeScore {
	weights := p.EdgeWeights
	if weights == nil {
		weights = DefaultEdgeWeights
	}
	out := make([]EdgeScore, len(edges))
	for i, e := range edges {
		w, ok := weights[e.Category]
		if !ok {
			w = defaultEdgeWeight
		}
		out[i] = EdgeScore{FromKey: e.FromKey, ToKey: e.ToKey, Category: e.Category, Weight: w}
	}
	return out
}
