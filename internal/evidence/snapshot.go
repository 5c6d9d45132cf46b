package evidence

import (
	"sort"

	"github.com/pvkg/pvqa/internal/graphstore"
	"github.com/pvkg/pvqa/internal/tools"
)

// Snapshot is the serializable projection of a Pack's state, used to thread
// accumulator state between Temporal activity invocations (a workflow may
// not hold a live *Pack across activity boundaries — only plain, replayable
// data survives a replay).
type Snapshot struct {
	QueryID       string                           `json:"query_id"`
	DrugsByName   map[string]*tools.ResolvedEntity `json:"drugs_by_name"`
	GenesByName   map[string]*tools.ResolvedEntity `json:"genes_by_name"`
	DiseaseByName map[string]*tools.ResolvedEntity `json:"disease_by_name"`
	AEsByName     map[string]*tools.ResolvedEntity `json:"aes_by_name"`
	ClaimKeys     []int64                          `json:"claim_keys"`
	EvidenceKeys  []int64                          `json:"evidence_keys"`
	DatasetKeys   []string                         `json:"dataset_keys"`
	Paths         []tools.MechanisticPath          `json:"paths"`
	Subgraph      *graphstore.Subgraph             `json:"subgraph,omitempty"`
	TraceLog      []string                         `json:"trace_log"`
	Iteration     int                              `json:"iteration"`
}

// Export takes a point-in-time snapshot of the pack suitable for JSON
// marshaling across an activity boundary.
func (p *Pack) Export() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		QueryID:       p.QueryID,
		DrugsByName:   copyResolved(p.drugsByName),
		GenesByName:   copyResolved(p.genesByName),
		DiseaseByName: copyResolved(p.diseaseByName),
		AEsByName:     copyResolved(p.aesByName),
		ClaimKeys:     sortedInt64Keys(p.claimKeys),
		EvidenceKeys:  sortedInt64Keys(p.evidenceKeys),
		DatasetKeys:   p.datasetKeysLocked(),
		Paths:         append([]tools.MechanisticPath{}, p.paths...),
		Subgraph:      p.subgraph,
		TraceLog:      append([]string{}, p.traceLog...),
		Iteration:     p.iteration,
	}
}

// FromSnapshot reconstructs a live Pack from a previously exported
// Snapshot, so an activity can resume accumulating where the last one left
// off.
func FromSnapshot(s Snapshot) *Pack {
	p := New()
	if s.QueryID != "" {
		p.QueryID = s.QueryID
	}
	p.drugsByName = copyResolved(s.DrugsByName)
	p.genesByName = copyResolved(s.GenesByName)
	p.diseaseByName = copyResolved(s.DiseaseByName)
	p.aesByName = copyResolved(s.AEsByName)
	for _, k := range s.ClaimKeys {
		p.claimKeys[k] = true
	}
	for _, k := range s.EvidenceKeys {
		p.evidenceKeys[k] = true
	}
	for _, k := range s.DatasetKeys {
		p.datasetKeys[k] = true
	}
	p.paths = append(p.paths, s.Paths...)
	p.subgraph = s.Subgraph
	p.traceLog = append(p.traceLog, s.TraceLog...)
	p.iteration = s.Iteration
	return p
}

func copyResolved(m map[string]*tools.ResolvedEntity) map[string]*tools.ResolvedEntity {
	out := make(map[string]*tools.ResolvedEntity, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (p *Pack) datasetKeysLocked() []string {
	out := make([]string, 0, len(p.datasetKeys))
	for k := range p.datasetKeys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
