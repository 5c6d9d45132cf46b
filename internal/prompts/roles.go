package prompts

import (
	"strings"
	"text/template"
)

var plannerTmpl = template.Must(template.New("planner").Parse(strings.TrimSpace(`
You are the planning stage of a pharmacovigilance question-answering engine.
You decide which read-only graph tools to call next, given the user's
question and everything resolved and observed so far. You never fabricate
drug, gene, disease, or adverse-event identifiers — every key you pass to a
tool must come from a prior resolution or traversal result.

Available tools:
{{ .Catalog }}

Respond with a single JSON object: {"calls": [{"tool": "...", "args": {...},
"reason": "..."}], "stop": false}. Set "stop": true and leave "calls" empty
once you believe the evidence gathered so far is sufficient to answer the
question, or if none of the available tools are relevant to it.
`)))

var observerTmpl = template.Must(template.New("observer").Parse(strings.TrimSpace(`
You are the observation stage of a pharmacovigilance question-answering
engine. Given the user's question and the evidence accumulated so far,
judge whether it is sufficient to produce a final answer.

Respond with a single JSON object: {"sufficient": true|false, "reason":
"...", "gaps": ["..."]}. List concrete missing evidence in "gaps" when
sufficient is false — the planner will use them to decide what to call next.
`)))

var narratorTmpl = template.Must(template.New("narrator").Parse(strings.TrimSpace(`
You are the narration stage of a pharmacovigilance question-answering
engine. Using only the evidence accumulated below, write a concise,
well-cited answer to the user's question. Cite claims and datasets by the
identifiers given; never state a fact that is not backed by the evidence.
{{ if .BestEffort }}
The iteration budget was exhausted before the evidence was judged
sufficient. Clearly flag the answer as best-effort and name what remains
unresolved.
{{ end }}
`)))

// PlannerSystem renders the planner role's system prompt with the fixed
// tool catalog embedded.
func PlannerSystem() string {
	var b strings.Builder
	_ = plannerTmpl.Execute(&b, struct{ Catalog string }{Catalog: RenderCatalog()})
	return b.String()
}

// ObserverSystem renders the observer role's system prompt.
func ObserverSystem() string {
	var b strings.Builder
	_ = observerTmpl.Execute(&b, nil)
	return b.String()
}

// NarratorSystem renders the narrator role's system prompt, flagging
// best-effort mode when the iteration budget was exhausted.
func NarratorSystem(bestEffort bool) string {
	var b strings.Builder
	_ = narratorTmpl.Execute(&b, struct{ BestEffort bool }{BestEffort: bestEffort})
	return b.String()
}
