// Package evidence implements the per-query Evidence Accumulator: the
// mutable state that threads resolved entities, claims, paths, and
// provenance ids through every ReAct iteration so the final narrative can
// cite only observed data. One Accumulator is created when a query enters
// the orchestrator and discarded after the final response is emitted.
package evidence

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pvkg/pvqa/internal/graphstore"
	"github.com/pvkg/pvqa/internal/tools"
)

// Pack is the rolling accumulator keyed by the original query, holding
// every resolved entity and evidence id gathered across a query's
// iterations. It is safe for concurrent use within a single query's
// iterations, though the orchestrator only ever calls it from one
// goroutine at a time per query.
type Pack struct {
	mu sync.Mutex

	QueryID string

	// Resolved entities, keyed by input name. Re-resolving the same name in
	// a later iteration queries the gateway again and overwrites the entry;
	// these maps are not consulted before a resolution call.
	drugsByName   map[string]*tools.ResolvedEntity
	genesByName   map[string]*tools.ResolvedEntity
	diseaseByName map[string]*tools.ResolvedEntity
	aesByName     map[string]*tools.ResolvedEntity

	claimKeys    map[int64]bool
	evidenceKeys map[int64]bool
	datasetKeys  map[string]bool

	paths     []tools.MechanisticPath
	subgraph  *graphstore.Subgraph
	traceLog  []string
	iteration int
}

// New creates an empty Pack for one query, stamping it with a fresh
// iteration/trace id.
func New() *Pack {
	return &Pack{
		QueryID:       uuid.NewString(),
		drugsByName:   map[string]*tools.ResolvedEntity{},
		genesByName:   map[string]*tools.ResolvedEntity{},
		diseaseByName: map[string]*tools.ResolvedEntity{},
		aesByName:     map[string]*tools.ResolvedEntity{},
		claimKeys:     map[int64]bool{},
		evidenceKeys:  map[int64]bool{},
		datasetKeys:   map[string]bool{},
	}
}

// Accumulate routes one tool's raw return value into the pack's category
// maps, implementing dispatcher.Accumulator. Resolution results populate the
// entity-by-name maps (idempotent: re-resolving the same name overwrites
// with an identical value, never duplicates); every other tool's claim/
// evidence/dataset references are recorded for provenance tracking.
func (p *Pack) Accumulate(tool tools.Name, _ map[string]any, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch tool {
	case tools.ResolveDrugs:
		mergeResolved(p.drugsByName, payload)
	case tools.ResolveGenes:
		mergeResolved(p.genesByName, payload)
	case tools.ResolveDiseases:
		mergeResolved(p.diseaseByName, payload)
	case tools.ResolveAdverseEvents:
		mergeResolved(p.aesByName, payload)
	case tools.ExplainPaths:
		if paths, ok := payload.([]tools.MechanisticPath); ok {
			p.paths = append(p.paths, paths...)
		}
	case tools.BuildSubgraph:
		if sg, ok := payload.(graphstore.Subgraph); ok {
			p.subgraph = &sg
			for _, e := range sg.Edges {
				p.claimKeys[e.ClaimKey] = true
				if e.DatasetKey != "" {
					p.datasetKeys[e.DatasetKey] = true
				}
			}
		}
	}

	collectClaimRefs(payload, p.claimKeys, p.datasetKeys)
	collectEvidenceRefs(payload, p.evidenceKeys)
}

func mergeResolved(dst map[string]*tools.ResolvedEntity, payload any) {
	m, ok := payload.(map[string]*tools.ResolvedEntity)
	if !ok {
		return
	}
	for name, ent := range m {
		dst[name] = ent
	}
}

// ResolvedDrugs, ResolvedGenes, ResolvedDiseases, and ResolvedAdverseEvents
// return a snapshot copy of each resolution map; the orchestrator reads them
// only to build the final evidence summary.
func (p *Pack) ResolvedDrugs() map[string]*tools.ResolvedEntity   { return snapshot(p.drugsByName, &p.mu) }
func (p *Pack) ResolvedGenes() map[string]*tools.ResolvedEntity   { return snapshot(p.genesByName, &p.mu) }
func (p *Pack) ResolvedDiseases() map[string]*tools.ResolvedEntity { return snapshot(p.diseaseByName, &p.mu) }
func (p *Pack) ResolvedAdverseEvents() map[string]*tools.ResolvedEntity {
	return snapshot(p.aesByName, &p.mu)
}

func snapshot(m map[string]*tools.ResolvedEntity, mu *sync.Mutex) map[string]*tools.ResolvedEntity {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]*tools.ResolvedEntity, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Paths returns every mechanistic path accumulated across iterations.
func (p *Pack) Paths() []tools.MechanisticPath {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]tools.MechanisticPath, len(p.paths))
	copy(out, p.paths)
	return out
}

// Subgraph returns the last assembled subgraph, if any.
func (p *Pack) Subgraph() *graphstore.Subgraph {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subgraph
}

// ClaimKeys returns every claim key observed so far, sorted for determinism.
func (p *Pack) ClaimKeys() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return sortedInt64Keys(p.claimKeys)
}

// EvidenceKeys returns every evidence key observed so far, sorted.
func (p *Pack) EvidenceKeys() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return sortedInt64Keys(p.evidenceKeys)
}

// DatasetKeys returns every dataset key observed so far, sorted.
func (p *Pack) DatasetKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.datasetKeys))
	for k := range p.datasetKeys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedInt64Keys(m map[int64]bool) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RecordTrace appends a one-line summary to the trace log for the current
// iteration, consumed by SummarizeForPrompt on the next planner turn.
func (p *Pack) RecordTrace(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.traceLog = append(p.traceLog, line)
}

// NextIteration increments and returns the iteration counter.
func (p *Pack) NextIteration() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.iteration++
	return p.iteration
}

// Iteration returns the current iteration counter without advancing it.
func (p *Pack) Iteration() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.iteration
}

// SummarizeForPrompt renders the trace digest carried into the next
// planner prompt instead of raw tool payloads: entity counts, claim/dataset
// counts, and the per-call one-line summaries recorded this query.
func (p *Pack) SummarizeForPrompt() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := fmt.Sprintf(
		"iteration %d — resolved: %d drug(s), %d gene(s), %d disease(s), %d AE(s); %d claim(s) across %d dataset(s); %d path(s) found",
		p.iteration, len(p.drugsByName), len(p.genesByName), len(p.diseaseByName), len(p.aesByName),
		len(p.claimKeys), len(p.datasetKeys), len(p.paths),
	)
	for _, line := range p.traceLog {
		s += "\n- " + line
	}
	return s
}
