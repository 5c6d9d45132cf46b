package tools

import (
	"context"
	"strconv"

	"github.com/pvkg/pvqa/internal/graphstore"
	"github.com/pvkg/pvqa/internal/scoring"
)

const defaultMaxPaths = 20

// FindDrugToAEPathsFn enumerates candidate mechanistic paths from drug to ae,
// unscored — explain_paths is the scored/ranked entry point callers normally
// use; this is exposed separately as its own tool so callers can inspect raw
// path shapes without paying for scoring.
func (l *Library) FindDrugToAEPathsFn(ctx context.Context, drugKey int64, aeKey *int64, maxPaths int) ([]graphstore.PathCandidate, error) {
	if err := requirePositiveKey("drug_key", drugKey); err != nil {
		return nil, err
	}
	if aeKey != nil {
		if err := requirePositiveKey("ae_key", *aeKey); err != nil {
			return nil, err
		}
	}
	maxPaths = clampLimit(maxPaths, defaultMaxPaths, defaultItemCap)
	cands, err := l.gw.FindDrugToAEPaths(ctx, drugKey, aeKey, maxPaths)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	return cands, nil
}

// ExplainPathsFn wraps path finding with scoring and the optional
// patient-condition context boost, returning the topK ranked
// MechanisticPaths.
func (l *Library) ExplainPathsFn(ctx context.Context, drugKey int64, aeKey *int64, conditionKeys []int64, topK int) ([]MechanisticPath, error) {
	cands, err := l.FindDrugToAEPathsFn(ctx, drugKey, aeKey, defaultItemCap)
	if err != nil {
		return nil, err
	}
	topK = clampLimit(topK, 10, defaultItemCap)
	if len(cands) == 0 {
		return nil, nil
	}

	claimsByKey, err := l.fetchClaimsByKey(ctx, cands)
	if err != nil {
		return nil, err
	}
	labels, err := l.labelCandidateNodes(ctx, cands)
	if err != nil {
		return nil, err
	}

	pathInputs := make([]scoring.PathInput, len(cands))
	ranked := make([]scoring.RankedPath, len(cands))
	for i, cand := range cands {
		claims := make([]scoring.ClaimScore, 0, len(cand.ClaimKeys))
		datasetSet := map[string]bool{}
		var diseaseKeys []int64
		for _, ck := range cand.ClaimKeys {
			c, ok := claimsByKey[ck]
			if !ok {
				continue
			}
			// One sentinel evidence key per claim: scoring's multi-source
			// bonus only needs distinct-claim cardinality here, since every
			// claim on a mechanistic path already carries at least one
			// supporting evidence edge.
			claims = append(claims, scoring.ClaimScore{
				Strength: c.StrengthScore, DatasetKey: c.DatasetKey, EvidenceKeys: []int64{c.Key},
			})
			datasetSet[c.DatasetKey] = true
		}
		for _, n := range cand.Nodes {
			if n.Kind == graphstore.NodeDisease {
				diseaseKeys = append(diseaseKeys, n.Key)
			}
		}
		var primary scoring.ClaimScore
		if len(claims) > 0 {
			primary = claims[0]
		}
		pathInputs[i] = scoring.PathInput{PrimaryClaim: primary, Claims: claims, PathDiseaseKeys: diseaseKeys}

		nodeKeys := make([]int64, len(cand.Nodes))
		for j, n := range cand.Nodes {
			nodeKeys[j] = n.Key
		}
		ranked[i] = scoring.RankedPath{
			ID: strconv.Itoa(i), HopCount: len(cand.Nodes) - 1,
			DistinctDatasets: len(datasetSet), NodeKeys: nodeKeys,
		}
	}

	for i := range ranked {
		ranked[i].Score = l.policy.Score(pathInputs[i], ranked[i].HopCount, conditionKeys)
	}
	ranked = scoring.Rank(ranked)
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	out := make([]MechanisticPath, 0, len(ranked))
	for _, r := range ranked {
		idx, _ := strconv.Atoi(r.ID)
		cand := cands[idx]
		steps := make([]PathStep, len(cand.Nodes))
		for j, n := range cand.Nodes {
			steps[j] = PathStep{NodeKind: n.Kind, NodeKey: n.Key, NodeLabel: labels[n.Kind][n.Key], EdgeKind: n.Edge}
		}
		out = append(out, MechanisticPath{
			Steps: steps, Score: r.Score,
			SupportingEvidence: countDistinctEvidence(pathInputs[idx].Claims),
		})
	}
	return out, nil
}

func countDistinctEvidence(claims []scoring.ClaimScore) int {
	seen := map[int64]bool{}
	for _, c := range claims {
		for _, ek := range c.EvidenceKeys {
			seen[ek] = true
		}
	}
	return len(seen)
}

func (l *Library) fetchClaimsByKey(ctx context.Context, cands []graphstore.PathCandidate) (map[int64]graphstore.Claim, error) {
	keySet := map[int64]bool{}
	for _, c := range cands {
		for _, ck := range c.ClaimKeys {
			keySet[ck] = true
		}
	}
	keys := make([]int64, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	claims, err := l.gw.GetClaimsByKeys(ctx, keys)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	out := make(map[int64]graphstore.Claim, len(claims))
	for _, c := range claims {
		out[c.Key] = c
	}
	return out, nil
}

func (l *Library) labelCandidateNodes(ctx context.Context, cands []graphstore.PathCandidate) (map[graphstore.PathNodeKind]map[int64]string, error) {
	keysByKind := map[graphstore.PathNodeKind]map[int64]bool{}
	for _, cand := range cands {
		for _, n := range cand.Nodes {
			if keysByKind[n.Kind] == nil {
				keysByKind[n.Kind] = map[int64]bool{}
			}
			keysByKind[n.Kind][n.Key] = true
		}
	}
	out := map[graphstore.PathNodeKind]map[int64]string{}
	for kind, keys := range keysByKind {
		keyList := make([]int64, 0, len(keys))
		for k := range keys {
			keyList = append(keyList, k)
		}
		labels, err := l.gw.NodeLabels(ctx, kind, keyList)
		if err != nil {
			return nil, wrapUpstream(err)
		}
		out[kind] = labels
	}
	return out, nil
}
