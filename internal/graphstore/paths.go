package graphstore

import "context"

// PathNodeKind enumerates the node kinds that can appear in a mechanistic
// path step.
type PathNodeKind string

const (
	NodeDrug         PathNodeKind = "drug"
	NodeGene         PathNodeKind = "gene"
	NodeDisease      PathNodeKind = "disease"
	NodePathway      PathNodeKind = "pathway"
	NodeAdverseEvent PathNodeKind = "adverse_event"
)

// PathEdgeKind enumerates the edge kinds a PathStep can be reached by.
type PathEdgeKind string

const (
	EdgeTargets        PathEdgeKind = "TARGETS"
	EdgeInPathway       PathEdgeKind = "IN_PATHWAY"
	EdgeAssociatedWith PathEdgeKind = "ASSOCIATED_WITH"
	EdgeInteractsWith  PathEdgeKind = "INTERACTS_WITH"
	EdgeCauses         PathEdgeKind = "CAUSES"
)

// PathNode is one node in a candidate path, carrying enough identity for the
// tool layer to attach labels without a second round trip.
type PathNode struct {
	Kind PathNodeKind
	Key  int64
	Edge PathEdgeKind // edge kind that led to this node; empty for the start node
}

// PathCandidate is an ordered node sequence plus the claim keys backing each
// hop, in the same order as the edges between consecutive nodes. Claims are
// later used by the tool layer to look up evidence and strength scores for
// scoring.Policy.Score.
type PathCandidate struct {
	Nodes      []PathNode
	ClaimKeys  []int64
	DatasetKeys []string
}

// pathFanoutCap bounds traversal so a dense gene neighborhood cannot blow up
// enumeration: at most this many drug targets are expanded, and at most this
// many interactors are fetched per target.
const pathFanoutCap = 25

// FindDrugToAEPaths enumerates candidate mechanistic paths from drug to ae:
// direct Drug→AE, Drug→Gene→Pathway→AE and Drug→Gene→Disease→AE (each closed
// by a direct Drug→AE edge), plus Drug→Gene→Gene interactor paths that end
// at the second gene without an AE node. Candidates are deduplicated by node
// sequence and capped at maxPaths. When aeKey is nil every AE with a direct
// edge from drug is considered; no path is returned when drug has no direct
// edge to the requested AE.
func (g *Gateway) FindDrugToAEPaths(ctx context.Context, drugKey int64, aeKey *int64, maxPaths int) ([]PathCandidate, error) {
	directAE, err := g.directAdverseEvents(ctx, drugKey)
	if err != nil {
		return nil, err
	}
	if aeKey != nil {
		filtered := make(map[int64]int64, 1)
		if claimKey, ok := directAE[*aeKey]; ok {
			filtered[*aeKey] = claimKey
		}
		directAE = filtered
	}
	if len(directAE) == 0 {
		return nil, nil
	}

	var out []PathCandidate
	seen := map[string]bool{}

	addIfNew := func(cand PathCandidate) bool {
		key := pathSeqKey(cand.Nodes)
		if seen[key] {
			return false
		}
		seen[key] = true
		out = append(out, cand)
		return true
	}

	// Shape 1: direct Drug -> AE.
	for ae, claimKey := range directAE {
		if len(out) >= maxPaths {
			return out, nil
		}
		addIfNew(PathCandidate{
			Nodes: []PathNode{
				{Kind: NodeDrug, Key: drugKey},
				{Kind: NodeAdverseEvent, Key: ae, Edge: EdgeCauses},
			},
			ClaimKeys: []int64{claimKey},
		})
	}

	targets, err := g.GetDrugTargets(ctx, drugKey)
	if err != nil {
		return nil, err
	}
	if len(targets) > pathFanoutCap {
		targets = targets[:pathFanoutCap]
	}

	for _, t := range targets {
		if len(out) >= maxPaths {
			return out, nil
		}
		prefix := []PathNode{
			{Kind: NodeDrug, Key: drugKey},
			{Kind: NodeGene, Key: t.Gene.Key, Edge: EdgeTargets},
		}
		prefixClaims := []int64{t.ClaimKey}

		// Shape 2: Drug -> Gene -> Pathway, closed by the direct AE edge.
		pathways, err := g.GetGenePathways(ctx, t.Gene.Key)
		if err != nil {
			return nil, err
		}
		for _, p := range pathways {
			for ae, claimKey := range directAE {
				if len(out) >= maxPaths {
					return out, nil
				}
				nodes := append(append([]PathNode{}, prefix...),
					PathNode{Kind: NodePathway, Key: p.Pathway.Key, Edge: EdgeInPathway},
					PathNode{Kind: NodeAdverseEvent, Key: ae, Edge: EdgeCauses})
				claims := append(append([]int64{}, prefixClaims...), p.ClaimKey, claimKey)
				addIfNew(PathCandidate{Nodes: nodes, ClaimKeys: claims})
			}
		}

		// Shape 3: Drug -> Gene -> Disease, closed by the direct AE edge.
		diseases, err := g.GetGeneDiseases(ctx, t.Gene.Key, 0)
		if err != nil {
			return nil, err
		}
		for _, d := range diseases {
			for ae, claimKey := range directAE {
				if len(out) >= maxPaths {
					return out, nil
				}
				nodes := append(append([]PathNode{}, prefix...),
					PathNode{Kind: NodeDisease, Key: d.Disease.Key, Edge: EdgeAssociatedWith},
					PathNode{Kind: NodeAdverseEvent, Key: ae, Edge: EdgeCauses})
				claims := append(append([]int64{}, prefixClaims...), d.ClaimKey, claimKey)
				addIfNew(PathCandidate{Nodes: nodes, ClaimKeys: claims})
			}
		}

		// Interactor extension: Drug -> Gene -> Gene, reported as a 3-node
		// path with no disease or AE node, whether or not aeKey is set.
		interactors, err := g.GetGeneInteractors(ctx, t.Gene.Key, 0, pathFanoutCap)
		if err != nil {
			return nil, err
		}
		for _, gi := range interactors {
			if len(out) >= maxPaths {
				return out, nil
			}
			nodes := append(append([]PathNode{}, prefix...),
				PathNode{Kind: NodeGene, Key: gi.Gene.Key, Edge: EdgeInteractsWith})
			claims := append(append([]int64{}, prefixClaims...), gi.ClaimKey)
			addIfNew(PathCandidate{Nodes: nodes, ClaimKeys: claims})
		}
	}

	return out, nil
}

// directAdverseEvents returns every AE a drug is directly linked to (label or
// FAERS claims) keyed by AE key, keeping the single claim key to cite.
func (g *Gateway) directAdverseEvents(ctx context.Context, drugKey int64) (map[int64]int64, error) {
	out := map[int64]int64{}
	labelRows, err := g.GetDrugAdverseEvents(ctx, drugKey)
	if err != nil {
		return nil, err
	}
	for _, r := range labelRows {
		out[r.AdverseEvent.Key] = r.ClaimKey
	}
	faersRows, err := g.GetDrugFAERSSignals(ctx, drugKey)
	if err != nil {
		return nil, err
	}
	for _, r := range faersRows {
		if _, exists := out[r.AdverseEvent.Key]; !exists {
			out[r.AdverseEvent.Key] = r.ClaimKey
		}
	}
	return out, nil
}

func pathSeqKey(nodes []PathNode) string {
	key := make([]byte, 0, len(nodes)*12)
	for _, n := range nodes {
		key = append(key, []byte(n.Kind)...)
		key = append(key, ':')
		key = appendInt(key, n.Key)
		key = append(key, '|')
	}
	return string(key)
}

func appendInt(b []byte, v int64) []byte {
	if v == 0 {
		return append(b, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	if neg {
		b = append(b, '-')
	}
	// reverse the digits appended
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}
