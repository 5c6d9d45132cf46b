// Package graphstore provides the read-only Graph Store Gateway: typed,
// parameterized queries against the property graph backing the engine.
// No write operations exist; issuing one is a programming error.
package graphstore

import "github.com/pgvector/pgvector-go"

// Drug is the minimal identity of a drug entity in the property graph.
type Drug struct {
	Key             int64
	PreferredName   string
	DrugCentralID   string
	ChemblID        string
	PubchemCID      string
	InChIKey        string
	Synonyms        []string
	Embedding       *pgvector.Vector
}

// Gene is the minimal identity of a gene entity.
type Gene struct {
	Key       int64
	HGNCID    string
	Symbol    string
	EnsemblID string
	ProteinID string
}

// Disease is the minimal identity of a disease entity.
type Disease struct {
	Key        int64
	OntologyID string // mondo/doid/efo
	Label      string
	Synonyms   []string
}

// Pathway is the minimal identity of a pathway entity.
type Pathway struct {
	Key   int64
	RefID string // reactome/wikipathways id
	Label string
}

// AdverseEvent is the minimal identity of an adverse event entity.
type AdverseEvent struct {
	Key         int64
	Label       string
	OntologyCode string
}

// ClaimType enumerates the claim-type vocabulary stored on claim edges.
type ClaimType string

const (
	ClaimDrugTarget     ClaimType = "DRUG_TARGET"
	ClaimDrugAELabel    ClaimType = "DRUG_AE_LABEL"
	ClaimGenePathway    ClaimType = "GENE_PATHWAY"
	ClaimGeneDisease    ClaimType = "GENE_DISEASE"
	ClaimGeneGeneString ClaimType = "GENE_GENE_STRING"
	ClaimDrugAEFAERS    ClaimType = "DRUG_AE_FAERS"
)

// Claim is an assertion node connecting one or more entities.
type Claim struct {
	Key            int64
	Type           ClaimType
	Polarity       int8 // -1, 0, +1
	StrengthScore  *float64
	DatasetKey     string
	SourceRecordID string
	RawStatement   string
}

// Evidence carries provenance for a claim.
type Evidence struct {
	Key            int64
	EvidenceType   string
	SourceRecordID string
	SourceURL      string
	Payload        []byte
}

// Dataset describes the source dataset a claim/evidence record originates
// from.
type Dataset struct {
	Key     string
	Version string
	License string
}
