package graphstore

import "context"

// DrugTargetRow is one drug→gene target relationship.
type DrugTargetRow struct {
	Gene     Gene
	ClaimKey int64
}

// GetDrugTargets returns the genes a drug targets, via DRUG_TARGET claims.
func (g *Gateway) GetDrugTargets(ctx context.Context, drugKey int64) ([]DrugTargetRow, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT g.key, g.hgnc_id, g.symbol, g.ensembl_id, g.protein_id, c.key
		FROM has_claim hc
		JOIN claim c ON c.key = hc.claim_key AND c.claim_type = 'DRUG_TARGET'
		JOIN claim_gene cg ON cg.claim_key = c.key
		JOIN gene g ON g.key = cg.gene_key
		WHERE hc.entity_kind = 'drug' AND hc.entity_key = $1`, drugKey)
	if err != nil {
		return nil, wrapQueryErr("get drug targets", err)
	}
	defer rows.Close()
	var out []DrugTargetRow
	for rows.Next() {
		var r DrugTargetRow
		if err := rows.Scan(&r.Gene.Key, &r.Gene.HGNCID, &r.Gene.Symbol, &r.Gene.EnsemblID, &r.Gene.ProteinID, &r.ClaimKey); err != nil {
			return nil, wrapQueryErr("scan drug target", err)
		}
		out = append(out, r)
	}
	return out, wrapQueryErr("iterate drug targets", rows.Err())
}

// GenePathwayRow is one gene→pathway membership relationship.
type GenePathwayRow struct {
	Pathway  Pathway
	ClaimKey int64
}

// GetGenePathways returns the pathways a gene participates in.
func (g *Gateway) GetGenePathways(ctx context.Context, geneKey int64) ([]GenePathwayRow, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT p.key, p.ref_id, p.label, c.key
		FROM has_claim hc
		JOIN claim c ON c.key = hc.claim_key AND c.claim_type = 'GENE_PATHWAY'
		JOIN claim_pathway cp ON cp.claim_key = c.key
		JOIN pathway p ON p.key = cp.pathway_key
		WHERE hc.entity_kind = 'gene' AND hc.entity_key = $1`, geneKey)
	if err != nil {
		return nil, wrapQueryErr("get gene pathways", err)
	}
	defer rows.Close()
	var out []GenePathwayRow
	for rows.Next() {
		var r GenePathwayRow
		if err := rows.Scan(&r.Pathway.Key, &r.Pathway.RefID, &r.Pathway.Label, &r.ClaimKey); err != nil {
			return nil, wrapQueryErr("scan gene pathway", err)
		}
		out = append(out, r)
	}
	return out, wrapQueryErr("iterate gene pathways", rows.Err())
}

// GeneDiseaseRow is one gene→disease association.
type GeneDiseaseRow struct {
	Disease  Disease
	ClaimKey int64
	Score    *float64
	Dataset  string
}

// GetGeneDiseases returns disease associations for a gene with strength_score
// at or above minScore (claims with a null score are always included — null
// means "no native confidence", not "zero").
func (g *Gateway) GetGeneDiseases(ctx context.Context, geneKey int64, minScore float64) ([]GeneDiseaseRow, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT d.key, d.ontology_id, d.label, c.key, c.strength_score, c.dataset_key
		FROM has_claim hc
		JOIN claim c ON c.key = hc.claim_key AND c.claim_type = 'GENE_DISEASE'
		JOIN claim_disease cd ON cd.claim_key = c.key
		JOIN disease d ON d.key = cd.disease_key
		WHERE hc.entity_kind = 'gene' AND hc.entity_key = $1
			AND (c.strength_score IS NULL OR c.strength_score >= $2)`, geneKey, minScore)
	if err != nil {
		return nil, wrapQueryErr("get gene diseases", err)
	}
	defer rows.Close()
	var out []GeneDiseaseRow
	for rows.Next() {
		var r GeneDiseaseRow
		if err := rows.Scan(&r.Disease.Key, &r.Disease.OntologyID, &r.Disease.Label, &r.ClaimKey, &r.Score, &r.Dataset); err != nil {
			return nil, wrapQueryErr("scan gene disease", err)
		}
		out = append(out, r)
	}
	return out, wrapQueryErr("iterate gene diseases", rows.Err())
}

// DiseaseGeneRow is one disease→gene association, reversed relative to
// GeneDiseaseRow for get_disease_genes.
type DiseaseGeneRow struct {
	Gene     Gene
	ClaimKey int64
	Score    *float64
	Dataset  string
}

// GetDiseaseGenes returns genes associated with a disease, filtered by an
// optional dataset allow-list and minimum score, limited and ordered
// descending by score (nulls treated as scoring.DefaultStrength by the tool
// layer, not here — the gateway returns raw scores).
func (g *Gateway) GetDiseaseGenes(ctx context.Context, diseaseKey int64, sources []string, minScore float64, limit int) ([]DiseaseGeneRow, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT ge.key, ge.hgnc_id, ge.symbol, ge.ensembl_id, ge.protein_id,
			c.key, c.strength_score, c.dataset_key
		FROM has_claim hc
		JOIN claim c ON c.key = hc.claim_key AND c.claim_type = 'GENE_DISEASE'
		JOIN claim_disease cd ON cd.claim_key = c.key AND cd.disease_key = $1
		JOIN claim_gene cg ON cg.claim_key = c.key
		JOIN gene ge ON ge.key = cg.gene_key
		WHERE hc.entity_kind = 'disease' AND hc.entity_key = $1
			AND (c.strength_score IS NULL OR c.strength_score >= $2)
			AND (cardinality($3::text[]) = 0 OR c.dataset_key = ANY($3::text[]))
		ORDER BY c.strength_score DESC NULLS LAST
		LIMIT $4`, diseaseKey, minScore, sources, limit)
	if err != nil {
		return nil, wrapQueryErr("get disease genes", err)
	}
	defer rows.Close()
	var out []DiseaseGeneRow
	for rows.Next() {
		var r DiseaseGeneRow
		if err := rows.Scan(&r.Gene.Key, &r.Gene.HGNCID, &r.Gene.Symbol, &r.Gene.EnsemblID, &r.Gene.ProteinID,
			&r.ClaimKey, &r.Score, &r.Dataset); err != nil {
			return nil, wrapQueryErr("scan disease gene", err)
		}
		out = append(out, r)
	}
	return out, wrapQueryErr("iterate disease genes", rows.Err())
}

// InteractorRow is one gene→gene interaction (GENE_GENE_STRING claims).
type InteractorRow struct {
	Gene     Gene
	ClaimKey int64
	Score    *float64
}

// GetGeneInteractors returns interaction partners for a gene above minScore,
// limited and ordered descending by score.
func (g *Gateway) GetGeneInteractors(ctx context.Context, geneKey int64, minScore float64, limit int) ([]InteractorRow, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT other.key, other.hgnc_id, other.symbol, other.ensembl_id, other.protein_id,
			c.key, c.strength_score
		FROM claim c
		JOIN claim_gene cg1 ON cg1.claim_key = c.key AND cg1.gene_key = $1
		JOIN claim_gene cg2 ON cg2.claim_key = c.key AND cg2.gene_key <> $1
		JOIN gene other ON other.key = cg2.gene_key
		WHERE c.claim_type = 'GENE_GENE_STRING'
			AND (c.strength_score IS NULL OR c.strength_score >= $2)
		ORDER BY c.strength_score DESC NULLS LAST
		LIMIT $3`, geneKey, minScore, limit)
	if err != nil {
		return nil, wrapQueryErr("get gene interactors", err)
	}
	defer rows.Close()
	var out []InteractorRow
	for rows.Next() {
		var r InteractorRow
		if err := rows.Scan(&r.Gene.Key, &r.Gene.HGNCID, &r.Gene.Symbol, &r.Gene.EnsemblID, &r.Gene.ProteinID,
			&r.ClaimKey, &r.Score); err != nil {
			return nil, wrapQueryErr("scan interactor", err)
		}
		out = append(out, r)
	}
	return out, wrapQueryErr("iterate interactors", rows.Err())
}
