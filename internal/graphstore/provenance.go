package graphstore

import "context"

// ClaimEvidenceRow is one claim→evidence provenance link.
type ClaimEvidenceRow struct {
	Evidence Evidence
	Dataset  Dataset
}

// GetClaimEvidence returns every evidence record supporting a claim, joined
// with the dataset the claim belongs to.
func (g *Gateway) GetClaimEvidence(ctx context.Context, claimKey int64) ([]ClaimEvidenceRow, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT e.key, e.evidence_type, e.source_record_id, e.source_url, e.payload,
			d.dataset_key, d.version, d.license
		FROM supported_by sb
		JOIN evidence e ON e.key = sb.evidence_key
		JOIN claim c ON c.key = sb.claim_key
		JOIN dataset d ON d.dataset_key = c.dataset_key
		WHERE sb.claim_key = $1`, claimKey)
	if err != nil {
		return nil, wrapQueryErr("get claim evidence", err)
	}
	defer rows.Close()
	var out []ClaimEvidenceRow
	for rows.Next() {
		var r ClaimEvidenceRow
		if err := rows.Scan(&r.Evidence.Key, &r.Evidence.EvidenceType, &r.Evidence.SourceRecordID, &r.Evidence.SourceURL, &r.Evidence.Payload,
			&r.Dataset.Key, &r.Dataset.Version, &r.Dataset.License); err != nil {
			return nil, wrapQueryErr("scan claim evidence", err)
		}
		out = append(out, r)
	}
	return out, wrapQueryErr("iterate claim evidence", rows.Err())
}

// GetEntityClaims returns every claim directly attached to an entity,
// regardless of claim type, for entity-centric provenance inspection.
func (g *Gateway) GetEntityClaims(ctx context.Context, entityKind string, entityKey int64) ([]Claim, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT c.key, c.claim_type, c.polarity, c.strength_score, c.dataset_key, c.source_record_id, c.raw_statement
		FROM has_claim hc
		JOIN claim c ON c.key = hc.claim_key
		WHERE hc.entity_kind = $1 AND hc.entity_key = $2`, entityKind, entityKey)
	if err != nil {
		return nil, wrapQueryErr("get entity claims", err)
	}
	defer rows.Close()
	var out []Claim
	for rows.Next() {
		var c Claim
		if err := rows.Scan(&c.Key, &c.Type, &c.Polarity, &c.StrengthScore, &c.DatasetKey, &c.SourceRecordID, &c.RawStatement); err != nil {
			return nil, wrapQueryErr("scan entity claim", err)
		}
		out = append(out, c)
	}
	return out, wrapQueryErr("iterate entity claims", rows.Err())
}

// GetClaimsByKeys batch-fetches claim rows by surrogate key, used by the
// tool library's path scoring to look up strength_score and dataset_key for
// every claim along a candidate path in one round trip.
func (g *Gateway) GetClaimsByKeys(ctx context.Context, claimKeys []int64) ([]Claim, error) {
	if len(claimKeys) == 0 {
		return nil, nil
	}
	rows, err := g.pool.Query(ctx, `
		SELECT key, claim_type, polarity, strength_score, dataset_key, source_record_id, raw_statement
		FROM claim WHERE key = ANY($1::bigint[])`, claimKeys)
	if err != nil {
		return nil, wrapQueryErr("get claims by keys", err)
	}
	defer rows.Close()
	var out []Claim
	for rows.Next() {
		var c Claim
		if err := rows.Scan(&c.Key, &c.Type, &c.Polarity, &c.StrengthScore, &c.DatasetKey, &c.SourceRecordID, &c.RawStatement); err != nil {
			return nil, wrapQueryErr("scan claim", err)
		}
		out = append(out, c)
	}
	return out, wrapQueryErr("iterate claims", rows.Err())
}

// CountDistinctDatasets returns the number of distinct dataset keys backing a
// set of claims. The scoring policy's multi-source bonus μ(ρ) does not use
// it; μ is computed from the evidence keys of each path's claims.
func (g *Gateway) CountDistinctDatasets(ctx context.Context, claimKeys []int64) (int, error) {
	var n int
	row := g.pool.QueryRow(ctx, `
		SELECT count(DISTINCT dataset_key) FROM claim WHERE key = ANY($1::bigint[])`, claimKeys)
	if err := row.Scan(&n); err != nil {
		return 0, wrapQueryErr("count distinct datasets", err)
	}
	return n, nil
}
