// Package tools implements the closed catalog of ~20 read-only tool
// functions: resolution, mechanism traversal, adverse-event lookups,
// provenance, path finding, and subgraph assembly. Every function takes
// typed parameters, returns plain records, and fails with a
// toolerrors.ToolError — never an unstructured exception.
package tools

import "github.com/pvkg/pvqa/internal/graphstore"

// ResolvedEntity is the outcome of resolving a free-text name against the
// graph. Immutable once created.
type ResolvedEntity struct {
	Key         int64
	Name        string
	MatchSource string
	Confidence  float64
}

// Name is the closed enum of tool identifiers the dispatcher allow-lists
// against. No other string is ever accepted as a tool call.
type Name string

const (
	ResolveDrugs         Name = "resolve_drugs"
	ResolveGenes         Name = "resolve_genes"
	ResolveDiseases      Name = "resolve_diseases"
	ResolveAdverseEvents Name = "resolve_adverse_events"

	GetDrugTargets    Name = "get_drug_targets"
	GetGenePathways   Name = "get_gene_pathways"
	GetGeneDiseases   Name = "get_gene_diseases"
	GetDiseaseGenes   Name = "get_disease_genes"
	GetGeneInteractors Name = "get_gene_interactors"
	ExpandMechanism   Name = "expand_mechanism"
	ExpandGeneContext Name = "expand_gene_context"

	GetDrugAdverseEvents Name = "get_drug_adverse_events"
	GetDrugLabelSections Name = "get_drug_label_sections"
	GetDrugFAERSSignals  Name = "get_drug_faers_signals"
	GetDrugProfile       Name = "get_drug_profile"

	GetClaimEvidence Name = "get_claim_evidence"
	GetEntityClaims  Name = "get_entity_claims"

	FindDrugToAEPaths Name = "find_drug_to_ae_paths"
	ExplainPaths      Name = "explain_paths"

	BuildSubgraph Name = "build_subgraph"
	ScoreEdges    Name = "score_edges"
)

// AllowList is the fixed, closed set of tool names the dispatcher accepts.
// Any ToolCallRequest naming something else is rejected before execution.
var AllowList = map[Name]bool{
	ResolveDrugs: true, ResolveGenes: true, ResolveDiseases: true, ResolveAdverseEvents: true,
	GetDrugTargets: true, GetGenePathways: true, GetGeneDiseases: true, GetDiseaseGenes: true,
	GetGeneInteractors: true, ExpandMechanism: true, ExpandGeneContext: true,
	GetDrugAdverseEvents: true, GetDrugLabelSections: true, GetDrugFAERSSignals: true, GetDrugProfile: true,
	GetClaimEvidence: true, GetEntityClaims: true,
	FindDrugToAEPaths: true, ExplainPaths: true,
	BuildSubgraph: true, ScoreEdges: true,
}

// PathStep is one node in a reported mechanistic path.
type PathStep struct {
	NodeKind graphstore.PathNodeKind
	NodeKey  int64
	NodeLabel string
	EdgeKind graphstore.PathEdgeKind
}

// MechanisticPath is an ordered explanation path with its computed score and
// SupportingEvidence, the number of distinct claims along it. Each claim is
// counted as one evidence source; Evidence records themselves are not
// looked up or counted.
type MechanisticPath struct {
	Steps              []PathStep
	Score              float64
	SupportingEvidence int
}

// ClaimRef is a lightweight pointer into the claim table, used wherever a
// tool result needs to let the caller drill down via get_claim_evidence.
type ClaimRef struct {
	ClaimKey   int64
	DatasetKey string
}
