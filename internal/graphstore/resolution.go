package graphstore

import (
	"context"
	"strings"
)

// MatchCandidate is a single resolution candidate returned by the gateway's
// resolution queries, before the tool library applies confidence scoring and
// tie-breaking.
type MatchCandidate struct {
	Key           int64
	CanonicalName string
	MatchSource   string // "exact_name", "exact_xref", "exact_symbol", "exact_hgnc", "exact_label", "exact_ontology", "exact_code", "substring", "embedding"
	CrossRefCount int    // richer cross-ref set wins ties
}

// FindDrugsByName resolves a free-text drug name against preferred_name,
// external id columns, and a substring fallback, ordered by cross-ref count
// descending then key ascending (not by match strength). The tool layer
// assigns confidence per attempt and picks the strongest match; the gateway
// only reports what matched and how.
func (g *Gateway) FindDrugsByName(ctx context.Context, name string) ([]MatchCandidate, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT key, preferred_name,
			(CASE WHEN drugcentral_id <> '' THEN 1 ELSE 0 END
			 + CASE WHEN chembl_id <> '' THEN 1 ELSE 0 END
			 + CASE WHEN pubchem_cid <> '' THEN 1 ELSE 0 END
			 + CASE WHEN inchi_key <> '' THEN 1 ELSE 0 END) AS xref_count,
			CASE
				WHEN lower(preferred_name) = lower($1) THEN 'exact_name'
				WHEN lower(drugcentral_id) = lower($1) OR lower(chembl_id) = lower($1)
					OR lower(pubchem_cid) = lower($1) OR lower(inchi_key) = lower($1) THEN 'exact_xref'
				ELSE 'substring'
			END AS match_source
		FROM drug
		WHERE lower(preferred_name) = lower($1)
			OR lower(drugcentral_id) = lower($1) OR lower(chembl_id) = lower($1)
			OR lower(pubchem_cid) = lower($1) OR lower(inchi_key) = lower($1)
			OR lower(preferred_name) LIKE '%' || lower($1) || '%'
		ORDER BY xref_count DESC, key ASC`, strings.TrimSpace(name))
	if err != nil {
		return nil, wrapQueryErr("find drugs by name", err)
	}
	defer rows.Close()

	var out []MatchCandidate
	for rows.Next() {
		var c MatchCandidate
		if err := rows.Scan(&c.Key, &c.CanonicalName, &c.CrossRefCount, &c.MatchSource); err != nil {
			return nil, wrapQueryErr("scan drug match", err)
		}
		out = append(out, c)
	}
	return out, wrapQueryErr("iterate drug matches", rows.Err())
}

// FindDrugsByEmbedding is a nearest-neighbor search over the Drug.Embedding
// column. No tool calls it: resolve_drugs resolves by name, cross-ref and
// substring only.
func (g *Gateway) FindDrugsByEmbedding(ctx context.Context, embedding []float32, limit int) ([]MatchCandidate, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT key, preferred_name, 'embedding' AS match_source
		FROM drug
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2`, embedding, limit)
	if err != nil {
		return nil, wrapQueryErr("find drugs by embedding", err)
	}
	defer rows.Close()
	var out []MatchCandidate
	for rows.Next() {
		var c MatchCandidate
		if err := rows.Scan(&c.Key, &c.CanonicalName, &c.MatchSource); err != nil {
			return nil, wrapQueryErr("scan embedding match", err)
		}
		out = append(out, c)
	}
	return out, wrapQueryErr("iterate embedding matches", rows.Err())
}

// FindGenesBySymbol resolves a gene symbol (case-insensitive exact) or
// nomenclature id (exact).
func (g *Gateway) FindGenesBySymbol(ctx context.Context, symbol string) ([]MatchCandidate, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT key, symbol,
			CASE WHEN lower(symbol) = lower($1) THEN 'exact_symbol' ELSE 'exact_hgnc' END
		FROM gene
		WHERE lower(symbol) = lower($1) OR lower(hgnc_id) = lower($1)
		ORDER BY key ASC`, strings.TrimSpace(symbol))
	if err != nil {
		return nil, wrapQueryErr("find genes by symbol", err)
	}
	defer rows.Close()
	var out []MatchCandidate
	for rows.Next() {
		var c MatchCandidate
		if err := rows.Scan(&c.Key, &c.CanonicalName, &c.MatchSource); err != nil {
			return nil, wrapQueryErr("scan gene match", err)
		}
		out = append(out, c)
	}
	return out, wrapQueryErr("iterate gene matches", rows.Err())
}

// FindDiseasesByTerm resolves a disease label or ontology id exactly, with a
// substring fallback on label.
func (g *Gateway) FindDiseasesByTerm(ctx context.Context, term string) ([]MatchCandidate, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT key, label,
			CASE
				WHEN lower(label) = lower($1) THEN 'exact_label'
				WHEN lower(ontology_id) = lower($1) THEN 'exact_ontology'
				ELSE 'substring'
			END
		FROM disease
		WHERE lower(label) = lower($1) OR lower(ontology_id) = lower($1)
			OR lower(label) LIKE '%' || lower($1) || '%'
		ORDER BY key ASC`, strings.TrimSpace(term))
	if err != nil {
		return nil, wrapQueryErr("find diseases by term", err)
	}
	defer rows.Close()
	var out []MatchCandidate
	for rows.Next() {
		var c MatchCandidate
		if err := rows.Scan(&c.Key, &c.CanonicalName, &c.MatchSource); err != nil {
			return nil, wrapQueryErr("scan disease match", err)
		}
		out = append(out, c)
	}
	return out, wrapQueryErr("iterate disease matches", rows.Err())
}

// FindAdverseEventsByTerm resolves an adverse event label or ontology code
// exactly, with a substring fallback on label.
func (g *Gateway) FindAdverseEventsByTerm(ctx context.Context, term string) ([]MatchCandidate, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT key, label,
			CASE
				WHEN lower(label) = lower($1) THEN 'exact_label'
				WHEN lower(ontology_code) = lower($1) THEN 'exact_code'
				ELSE 'substring'
			END
		FROM adverse_event
		WHERE lower(label) = lower($1) OR lower(ontology_code) = lower($1)
			OR lower(label) LIKE '%' || lower($1) || '%'
		ORDER BY key ASC`, strings.TrimSpace(term))
	if err != nil {
		return nil, wrapQueryErr("find adverse events by term", err)
	}
	defer rows.Close()
	var out []MatchCandidate
	for rows.Next() {
		var c MatchCandidate
		if err := rows.Scan(&c.Key, &c.CanonicalName, &c.MatchSource); err != nil {
			return nil, wrapQueryErr("scan ae match", err)
		}
		out = append(out, c)
	}
	return out, wrapQueryErr("iterate ae matches", rows.Err())
}
