package graphstore

import "context"

// nodeLabelQueries maps a PathNodeKind to the single-column label query used
// by NodeLabels; each must select (key, label) in that order.
var nodeLabelQueries = map[PathNodeKind]string{
	NodeDrug:         `SELECT key, preferred_name FROM drug WHERE key = ANY($1::bigint[])`,
	NodeGene:         `SELECT key, symbol FROM gene WHERE key = ANY($1::bigint[])`,
	NodeDisease:      `SELECT key, label FROM disease WHERE key = ANY($1::bigint[])`,
	NodePathway:      `SELECT key, label FROM pathway WHERE key = ANY($1::bigint[])`,
	NodeAdverseEvent: `SELECT key, label FROM adverse_event WHERE key = ANY($1::bigint[])`,
}

// NodeLabels batch-resolves display labels for a set of node keys of a
// single kind, for callers (the tool library's path/subgraph shaping) that
// need human-readable labels without a per-node round trip.
func (g *Gateway) NodeLabels(ctx context.Context, kind PathNodeKind, keys []int64) (map[int64]string, error) {
	query, ok := nodeLabelQueries[kind]
	if !ok {
		return nil, schemaMismatch("unsupported node kind for label lookup")
	}
	if len(keys) == 0 {
		return map[int64]string{}, nil
	}
	rows, err := g.pool.Query(ctx, query, keys)
	if err != nil {
		return nil, wrapQueryErr("node labels", err)
	}
	defer rows.Close()
	out := make(map[int64]string, len(keys))
	for rows.Next() {
		var key int64
		var label string
		if err := rows.Scan(&key, &label); err != nil {
			return nil, wrapQueryErr("scan node label", err)
		}
		out[key] = label
	}
	return out, wrapQueryErr("iterate node labels", rows.Err())
}
