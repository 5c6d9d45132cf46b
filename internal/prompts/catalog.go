// Package prompts renders the tool catalog and per-role system prompts the
// orchestrator sends to the LLM Client. The catalog is a fixed, closed set
// (internal/tools.AllowList) rather than one generated per deployment, so
// templates are rendered at runtime via text/template instead of through a
// codegen step.
package prompts

import (
	"strings"
	"text/template"

	"github.com/pvkg/pvqa/internal/tools"
)

// ToolDoc is one catalog entry rendered into the planner system prompt.
type ToolDoc struct {
	Name        tools.Name
	Description string
}

// Catalog is the closed, ordered list of tools the planner may call,
// mirroring internal/tools.AllowList's membership.
var Catalog = []ToolDoc{
	{tools.ResolveDrugs, "Resolve free-text drug names to graph entities. Input: names (list of strings)."},
	{tools.ResolveGenes, "Resolve free-text gene symbols to graph entities. Input: symbols (list of strings)."},
	{tools.ResolveDiseases, "Resolve free-text disease/condition terms to graph entities. Input: terms (list of strings)."},
	{tools.ResolveAdverseEvents, "Resolve free-text adverse-event terms to graph entities. Input: terms (list of strings)."},
	{tools.GetDrugTargets, "List genes targeted by a drug. Input: drug_key."},
	{tools.GetGenePathways, "List pathways a gene participates in. Input: gene_key."},
	{tools.GetGeneDiseases, "List diseases associated with a gene above min_score. Input: gene_key, min_score."},
	{tools.GetDiseaseGenes, "List genes associated with a disease. Input: disease_key, sources?, min_score, limit."},
	{tools.GetGeneInteractors, "List genes that physically/functionally interact with a gene. Input: gene_key, min_score, limit."},
	{tools.ExpandMechanism, "Targets of a drug unioned with their pathways, deduplicated. Input: drug_key."},
	{tools.ExpandGeneContext, "Per-gene pathways and disease associations for a set of genes. Input: gene_keys, min_disease_score."},
	{tools.GetDrugAdverseEvents, "Adverse events reported for a drug, sorted by frequency descending. Input: drug_key, min_frequency, limit."},
	{tools.GetDrugLabelSections, "Textual product-label sections for a drug, truncated to 10 KB each. Input: drug_key, sections?."},
	{tools.GetDrugFAERSSignals, "FAERS disproportionality signals (PRR/ROR/chi2/count) for a drug. Input: drug_key, top_k, min_count, min_prr."},
	{tools.GetDrugProfile, "Basic drug info plus top-20 adverse events and targets. Input: drug_key."},
	{tools.GetClaimEvidence, "A claim and all evidence records supporting it. Input: claim_key."},
	{tools.GetEntityClaims, "Claims attached to an entity. Input: entity_kind, entity_key, claim_types?, limit."},
	{tools.FindDrugToAEPaths, "Enumerate candidate mechanistic paths from a drug to an adverse event, unscored. Input: drug_key, ae_key?, max_paths."},
	{tools.ExplainPaths, "Scored and ranked mechanistic paths, with optional patient-condition context boost. Input: drug_key, ae_key?, condition_keys?, top_k."},
	{tools.BuildSubgraph, "Assemble a bounded subgraph around one or more drugs for visualization. Input: drug_keys, include_*, max_*, min_disease_score."},
	{tools.ScoreEdges, "Annotate a subgraph's edges with numeric weights. Input: subgraph, weights?."},
}

var catalogTmpl = template.Must(template.New("catalog").Parse(
	strings.TrimSpace(`
{{- range . }}
- {{ .Name }}: {{ .Description }}
{{- end }}
`)))

// RenderCatalog produces the tool-catalog block embedded in the planner
// system prompt.
func RenderCatalog() string {
	var b strings.Builder
	if err := catalogTmpl.Execute(&b, Catalog); err != nil {
		return ""
	}
	return b.String()
}
