package tools

import (
	"context"

	"github.com/pvkg/pvqa/internal/graphstore"
)

// GetClaimEvidenceFn returns every evidence record supporting a claim.
func (l *Library) GetClaimEvidenceFn(ctx context.Context, claimKey int64) ([]graphstore.ClaimEvidenceRow, error) {
	if err := requirePositiveKey("claim_key", claimKey); err != nil {
		return nil, err
	}
	rows, err := l.gw.GetClaimEvidence(ctx, claimKey)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	if len(rows) > defaultItemCap {
		rows = rows[:defaultItemCap]
	}
	return rows, nil
}

var validEntityKinds = map[string]bool{
	"drug": true, "gene": true, "disease": true, "pathway": true, "adverse_event": true,
}

// GetEntityClaimsFn returns claims attached to an entity, optionally
// filtered by claim type, limited.
func (l *Library) GetEntityClaimsFn(ctx context.Context, entityKind string, entityKey int64, claimTypes []string, limit int) ([]graphstore.Claim, error) {
	if !validEntityKinds[entityKind] {
		return nil, toolerrorsInvalidArg("entity_kind", "must be one of drug, gene, disease, pathway, adverse_event")
	}
	if err := requirePositiveKey("entity_key", entityKey); err != nil {
		return nil, err
	}
	rows, err := l.gw.GetEntityClaims(ctx, entityKind, entityKey)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	if len(claimTypes) > 0 {
		want := map[string]bool{}
		for _, t := range claimTypes {
			want[t] = true
		}
		filtered := rows[:0]
		for _, c := range rows {
			if want[string(c.Type)] {
				filtered = append(filtered, c)
			}
		}
		rows = filtered
	}
	limit = clampLimit(limit, 50, defaultItemCap)
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
