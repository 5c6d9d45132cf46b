package graphstore

import "context"

// DrugAdverseEventRow is one drug→adverse-event label claim (DRUG_AE_LABEL).
type DrugAdverseEventRow struct {
	AdverseEvent AdverseEvent
	ClaimKey     int64
	Polarity     int8
	Frequency    *float64
	DatasetKey   string
}

// GetDrugAdverseEvents returns label-sourced adverse event claims for a drug.
func (g *Gateway) GetDrugAdverseEvents(ctx context.Context, drugKey int64) ([]DrugAdverseEventRow, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT ae.key, ae.label, ae.ontology_code, c.key, c.polarity, cae.frequency, c.dataset_key
		FROM has_claim hc
		JOIN claim c ON c.key = hc.claim_key AND c.claim_type = 'DRUG_AE_LABEL'
		JOIN claim_adverse_event cae ON cae.claim_key = c.key
		JOIN adverse_event ae ON ae.key = cae.ae_key
		WHERE hc.entity_kind = 'drug' AND hc.entity_key = $1`, drugKey)
	if err != nil {
		return nil, wrapQueryErr("get drug adverse events", err)
	}
	defer rows.Close()
	var out []DrugAdverseEventRow
	for rows.Next() {
		var r DrugAdverseEventRow
		if err := rows.Scan(&r.AdverseEvent.Key, &r.AdverseEvent.Label, &r.AdverseEvent.OntologyCode,
			&r.ClaimKey, &r.Polarity, &r.Frequency, &r.DatasetKey); err != nil {
			return nil, wrapQueryErr("scan drug adverse event", err)
		}
		out = append(out, r)
	}
	return out, wrapQueryErr("iterate drug adverse events", rows.Err())
}

// GetDrugLabelSections returns the same DRUG_AE_LABEL claims restricted to
// claims whose raw_statement is non-empty, modeling "label sections" as the
// narrative text attached to a label-sourced claim.
func (g *Gateway) GetDrugLabelSections(ctx context.Context, drugKey int64) ([]Claim, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT c.key, c.claim_type, c.polarity, c.strength_score, c.dataset_key, c.source_record_id, c.raw_statement
		FROM has_claim hc
		JOIN claim c ON c.key = hc.claim_key AND c.claim_type = 'DRUG_AE_LABEL'
		WHERE hc.entity_kind = 'drug' AND hc.entity_key = $1 AND c.raw_statement <> ''`, drugKey)
	if err != nil {
		return nil, wrapQueryErr("get drug label sections", err)
	}
	defer rows.Close()
	var out []Claim
	for rows.Next() {
		var c Claim
		if err := rows.Scan(&c.Key, &c.Type, &c.Polarity, &c.StrengthScore, &c.DatasetKey, &c.SourceRecordID, &c.RawStatement); err != nil {
			return nil, wrapQueryErr("scan label section", err)
		}
		out = append(out, c)
	}
	return out, wrapQueryErr("iterate label sections", rows.Err())
}

// FAERSSignalRow is one spontaneous-report adverse event signal
// (DRUG_AE_FAERS claims), which carry a reporting-odds-ratio-like score in
// strength_score and a report count in frequency.
type FAERSSignalRow struct {
	AdverseEvent AdverseEvent
	ClaimKey     int64
	Polarity     int8
	Score        *float64
	ReportCount  *float64
	DatasetKey   string
}

// GetDrugFAERSSignals returns spontaneous-report signals for a drug.
func (g *Gateway) GetDrugFAERSSignals(ctx context.Context, drugKey int64) ([]FAERSSignalRow, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT ae.key, ae.label, ae.ontology_code, c.key, c.polarity, c.strength_score, cae.frequency, c.dataset_key
		FROM has_claim hc
		JOIN claim c ON c.key = hc.claim_key AND c.claim_type = 'DRUG_AE_FAERS'
		JOIN claim_adverse_event cae ON cae.claim_key = c.key
		JOIN adverse_event ae ON ae.key = cae.ae_key
		WHERE hc.entity_kind = 'drug' AND hc.entity_key = $1`, drugKey)
	if err != nil {
		return nil, wrapQueryErr("get drug faers signals", err)
	}
	defer rows.Close()
	var out []FAERSSignalRow
	for rows.Next() {
		var r FAERSSignalRow
		if err := rows.Scan(&r.AdverseEvent.Key, &r.AdverseEvent.Label, &r.AdverseEvent.OntologyCode,
			&r.ClaimKey, &r.Polarity, &r.Score, &r.ReportCount, &r.DatasetKey); err != nil {
			return nil, wrapQueryErr("scan faers signal", err)
		}
		out = append(out, r)
	}
	return out, wrapQueryErr("iterate faers signals", rows.Err())
}

// GetDrugProfile returns the drug's own identity row, used by get_drug_profile
// to assemble a one-shot summary before the tool layer fans out to targets,
// label claims, and FAERS signals.
func (g *Gateway) GetDrugProfile(ctx context.Context, drugKey int64) (Drug, error) {
	var d Drug
	row := g.pool.QueryRow(ctx, `
		SELECT key, preferred_name, drugcentral_id, chembl_id, pubchem_cid, inchi_key
		FROM drug WHERE key = $1`, drugKey)
	if err := row.Scan(&d.Key, &d.PreferredName, &d.DrugCentralID, &d.ChemblID, &d.PubchemCID, &d.InChIKey); err != nil {
		return Drug{}, wrapQueryErr("get drug profile", err)
	}
	return d, nil
}
