package tools

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/pvkg/pvqa/internal/graphstore"
)

// AdverseEventSignal is one drug→AE label claim shaped for get_drug_adverse_events.
type AdverseEventSignal struct {
	AdverseEvent graphstore.AdverseEvent
	ClaimKey     int64
	Polarity     int8
	Frequency    float64
	DatasetKey   string
}

// GetDrugAdverseEventsFn returns label-sourced AE claims for a drug at or
// above minFrequency, sorted descending by frequency, limited.
func (l *Library) GetDrugAdverseEventsFn(ctx context.Context, drugKey int64, minFrequency float64, limit int) ([]AdverseEventSignal, error) {
	if err := requirePositiveKey("drug_key", drugKey); err != nil {
		return nil, err
	}
	if minFrequency < 0 || minFrequency > 1 {
		return nil, toolerrorsInvalidArg("min_frequency", "must lie in [0,1]")
	}
	rows, err := l.gw.GetDrugAdverseEvents(ctx, drugKey)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	limit = clampLimit(limit, 20, defaultItemCap)

	out := make([]AdverseEventSignal, 0, len(rows))
	for _, r := range rows {
		freq := 0.0
		if r.Frequency != nil {
			freq = *r.Frequency
		}
		if freq < minFrequency {
			continue
		}
		out = append(out, AdverseEventSignal{
			AdverseEvent: r.AdverseEvent, ClaimKey: r.ClaimKey, Polarity: r.Polarity,
			Frequency: freq, DatasetKey: r.DatasetKey,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Frequency > out[j].Frequency })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// LabelSection is a drug label claim's narrative text, truncated to a
// 10 KB-per-section cap.
type LabelSection struct {
	ClaimKey     int64
	Text         string
	Truncated    bool
	DatasetKey   string
}

const labelSectionByteCap = 10 * 1024

// GetDrugLabelSectionsFn returns label-text claims for a drug, truncated to
// 10 KB each. sections, when non-empty, is matched case-insensitively as a
// substring anywhere in each claim's raw_statement, as a coarse section
// filter.
func (l *Library) GetDrugLabelSectionsFn(ctx context.Context, drugKey int64, sections []string) ([]LabelSection, error) {
	if err := requirePositiveKey("drug_key", drugKey); err != nil {
		return nil, err
	}
	claims, err := l.gw.GetDrugLabelSections(ctx, drugKey)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	out := make([]LabelSection, 0, len(claims))
	for _, c := range claims {
		if len(sections) > 0 && !matchesAnySection(c.RawStatement, sections) {
			continue
		}
		text := c.RawStatement
		truncated := false
		if len(text) > labelSectionByteCap {
			text = text[:labelSectionByteCap]
			truncated = true
		}
		out = append(out, LabelSection{ClaimKey: c.Key, Text: text, Truncated: truncated, DatasetKey: c.DatasetKey})
	}
	if len(out) > defaultItemCap {
		out = out[:defaultItemCap]
	}
	return out, nil
}

func matchesAnySection(text string, sections []string) bool {
	lower := strings.ToLower(text)
	for _, s := range sections {
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// FAERSSignal reports per-AE disproportionality metrics for get_drug_faers_signals.
// ROR and Chi2 are derived from the stored PRR-equivalent strength_score and
// report count — the claim schema records only those two native fields, so
// these are monotone approximations rather than recomputed 2x2-table
// statistics, suitable for ranking but not for citation as primary metrics.
type FAERSSignal struct {
	AdverseEvent graphstore.AdverseEvent
	ClaimKey     int64
	PRR          float64
	ROR          float64
	Chi2         float64
	Count        int
	DatasetKey   string
}

// GetDrugFAERSSignalsFn returns the topK FAERS disproportionality signals for
// a drug meeting minCount and minPRR thresholds, ranked by PRR descending.
func (l *Library) GetDrugFAERSSignalsFn(ctx context.Context, drugKey int64, topK int, minCount int, minPRR float64) ([]FAERSSignal, error) {
	if err := requirePositiveKey("drug_key", drugKey); err != nil {
		return nil, err
	}
	if minPRR < 0 {
		return nil, toolerrorsInvalidArg("min_prr", "must be non-negative")
	}
	rows, err := l.gw.GetDrugFAERSSignals(ctx, drugKey)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	topK = clampLimit(topK, 20, defaultItemCap)

	out := make([]FAERSSignal, 0, len(rows))
	for _, r := range rows {
		prr := 1.0
		if r.Score != nil {
			prr = *r.Score
		}
		count := 0
		if r.ReportCount != nil {
			count = int(*r.ReportCount)
		}
		if count < minCount || prr < minPRR {
			continue
		}
		out = append(out, FAERSSignal{
			AdverseEvent: r.AdverseEvent, ClaimKey: r.ClaimKey,
			PRR: prr, ROR: prr * (1 + 1/math.Max(float64(count), 1)),
			Chi2: prr * prr * math.Log(float64(count)+1), Count: count,
			DatasetKey: r.DatasetKey,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PRR > out[j].PRR })
	if len(out) > topK {
		out = out[:topK]
	}
	return out, nil
}

// DrugProfile bundles a drug's identity, top adverse events, and targets for
// get_drug_profile's one-shot summary.
type DrugProfile struct {
	Drug    graphstore.Drug
	TopAEs  []AdverseEventSignal
	Targets []graphstore.DrugTargetRow
}

const drugProfileTopAECount = 20

// GetDrugProfileFn assembles basic drug info, top-20 AEs, and targets.
func (l *Library) GetDrugProfileFn(ctx context.Context, drugKey int64) (DrugProfile, error) {
	if err := requirePositiveKey("drug_key", drugKey); err != nil {
		return DrugProfile{}, err
	}
	drug, err := l.gw.GetDrugProfile(ctx, drugKey)
	if err != nil {
		return DrugProfile{}, wrapUpstream(err)
	}
	topAEs, err := l.GetDrugAdverseEventsFn(ctx, drugKey, 0, drugProfileTopAECount)
	if err != nil {
		return DrugProfile{}, err
	}
	targets, err := l.GetDrugTargetsFn(ctx, drugKey)
	if err != nil {
		return DrugProfile{}, err
	}
	return DrugProfile{Drug: drug, TopAEs: topAEs, Targets: targets}, nil
}
