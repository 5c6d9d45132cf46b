package tools

import (
	"context"

	"github.com/pvkg/pvqa/internal/graphstore"
)

// GetDrugTargetsFn returns the genes a drug targets.
func (l *Library) GetDrugTargetsFn(ctx context.Context, drugKey int64) ([]graphstore.DrugTargetRow, error) {
	if err := requirePositiveKey("drug_key", drugKey); err != nil {
		return nil, err
	}
	rows, err := l.gw.GetDrugTargets(ctx, drugKey)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	if len(rows) > defaultItemCap {
		rows = rows[:defaultItemCap]
	}
	return rows, nil
}

// GetGenePathwaysFn returns the pathways a gene participates in.
func (l *Library) GetGenePathwaysFn(ctx context.Context, geneKey int64) ([]graphstore.GenePathwayRow, error) {
	if err := requirePositiveKey("gene_key", geneKey); err != nil {
		return nil, err
	}
	rows, err := l.gw.GetGenePathways(ctx, geneKey)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	if len(rows) > defaultItemCap {
		rows = rows[:defaultItemCap]
	}
	return rows, nil
}

// GetGeneDiseasesFn returns disease associations for a gene at or above
// minScore. minScore must lie in [0,1].
func (l *Library) GetGeneDiseasesFn(ctx context.Context, geneKey int64, minScore float64) ([]graphstore.GeneDiseaseRow, error) {
	if err := requirePositiveKey("gene_key", geneKey); err != nil {
		return nil, err
	}
	if minScore < 0 || minScore > 1 {
		return nil, toolerrorsInvalidArg("min_score", "must lie in [0,1]")
	}
	rows, err := l.gw.GetGeneDiseases(ctx, geneKey, minScore)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	if len(rows) > defaultItemCap {
		rows = rows[:defaultItemCap]
	}
	return rows, nil
}

// GetDiseaseGenesFn returns genes associated with a disease, filtered by an
// optional dataset allow-list, minimum score, and result limit.
func (l *Library) GetDiseaseGenesFn(ctx context.Context, diseaseKey int64, sources []string, minScore float64, limit int) ([]graphstore.DiseaseGeneRow, error) {
	if err := requirePositiveKey("disease_key", diseaseKey); err != nil {
		return nil, err
	}
	if minScore < 0 || minScore > 1 {
		return nil, toolerrorsInvalidArg("min_score", "must lie in [0,1]")
	}
	limit = clampLimit(limit, 20, defaultItemCap)
	rows, err := l.gw.GetDiseaseGenes(ctx, diseaseKey, sources, minScore, limit)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	return rows, nil
}

// GetGeneInteractorsFn returns interaction partners for a gene at or above
// minScore, limited and ordered descending by score.
func (l *Library) GetGeneInteractorsFn(ctx context.Context, geneKey int64, minScore float64, limit int) ([]graphstore.InteractorRow, error) {
	if err := requirePositiveKey("gene_key", geneKey); err != nil {
		return nil, err
	}
	if minScore < 0 || minScore > 1 {
		return nil, toolerrorsInvalidArg("min_score", "must lie in [0,1]")
	}
	limit = clampLimit(limit, 20, defaultItemCap)
	rows, err := l.gw.GetGeneInteractors(ctx, geneKey, minScore, limit)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	return rows, nil
}

// MechanismExpansion is the deduplicated union of a drug's targets and their
// pathways, the result of expand_mechanism.
type MechanismExpansion struct {
	Targets  []graphstore.DrugTargetRow
	Pathways []graphstore.Pathway
}

// ExpandMechanismFn returns a drug's targets union their pathways,
// deduplicated by pathway key.
func (l *Library) ExpandMechanismFn(ctx context.Context, drugKey int64) (MechanismExpansion, error) {
	if err := requirePositiveKey("drug_key", drugKey); err != nil {
		return MechanismExpansion{}, err
	}
	targets, err := l.gw.GetDrugTargets(ctx, drugKey)
	if err != nil {
		return MechanismExpansion{}, wrapUpstream(err)
	}
	seen := map[int64]bool{}
	var pathways []graphstore.Pathway
	for _, t := range targets {
		rows, err := l.gw.GetGenePathways(ctx, t.Gene.Key)
		if err != nil {
			return MechanismExpansion{}, wrapUpstream(err)
		}
		for _, r := range rows {
			if !seen[r.Pathway.Key] {
				seen[r.Pathway.Key] = true
				pathways = append(pathways, r.Pathway)
			}
		}
	}
	if len(targets) > defaultItemCap {
		targets = targets[:defaultItemCap]
	}
	if len(pathways) > defaultItemCap {
		pathways = pathways[:defaultItemCap]
	}
	return MechanismExpansion{Targets: targets, Pathways: pathways}, nil
}

// GeneContext bundles per-gene pathway and disease context for
// expand_gene_context.
type GeneContext struct {
	GeneKey  int64
	Pathways []graphstore.Pathway
	Diseases []graphstore.GeneDiseaseRow
}

// ExpandGeneContextFn returns per-gene pathway memberships and disease
// associations above minDiseaseScore, for each gene key supplied.
func (l *Library) ExpandGeneContextFn(ctx context.Context, geneKeys []int64, minDiseaseScore float64) ([]GeneContext, error) {
	if len(geneKeys) == 0 {
		return nil, toolerrorsInvalidArg("gene_keys", "must contain at least one key")
	}
	if minDiseaseScore < 0 || minDiseaseScore > 1 {
		return nil, toolerrorsInvalidArg("min_disease_score", "must lie in [0,1]")
	}
	for _, gk := range geneKeys {
		if gk <= 0 {
			return nil, toolerrorsInvalidArg("gene_keys", "must contain only positive surrogate keys")
		}
	}
	var out []GeneContext
	for _, gk := range geneKeys {
		pwRows, err := l.gw.GetGenePathways(ctx, gk)
		if err != nil {
			return nil, wrapUpstream(err)
		}
		pathways := make([]graphstore.Pathway, 0, len(pwRows))
		for _, r := range pwRows {
			pathways = append(pathways, r.Pathway)
		}
		diseases, err := l.gw.GetGeneDiseases(ctx, gk, minDiseaseScore)
		if err != nil {
			return nil, wrapUpstream(err)
		}
		out = append(out, GeneContext{GeneKey: gk, Pathways: pathways, Diseases: diseases})
	}
	return out, nil
}
