package tools

import (
	"context"
	"strings"

	"github.com/pvkg/pvqa/internal/graphstore"
)

// resolutionConfidence maps a gateway match_source tag to a confidence band.
// Attempt 3 (substring) is 0.7 here, raised to 0.8 for drugs by
// ResolveDrugsFn; attempts 1/2 (exact) are treated
// as full confidence; exact cross-ref matches on a richer record score
// slightly below a direct name match within the 0.7-1.0 band.
func resolutionConfidence(matchSource string) float64 {
	switch matchSource {
	case "exact_name", "exact_symbol", "exact_label":
		return 1.0
	case "exact_xref", "exact_hgnc", "exact_ontology", "exact_code":
		return 0.85
	case "substring":
		return 0.7
	case "embedding":
		return 0.6
	default:
		return 0.7
	}
}

func bestCandidate(cands []graphstore.MatchCandidate) *ResolvedEntity {
	if len(cands) == 0 {
		return nil
	}
	best := cands[0]
	for _, c := range cands[1:] {
		// The stronger attempt wins (exact name over exact cross-ref over
		// substring); ties are broken by the richer cross-ref set, then the
		// lower surrogate key.
		cc, bc := resolutionConfidence(c.MatchSource), resolutionConfidence(best.MatchSource)
		if cc > bc || (cc == bc && (c.CrossRefCount > best.CrossRefCount || (c.CrossRefCount == best.CrossRefCount && c.Key < best.Key))) {
			best = c
		}
	}
	return &ResolvedEntity{
		Key:         best.Key,
		Name:        best.CanonicalName,
		MatchSource: best.MatchSource,
		Confidence:  resolutionConfidence(best.MatchSource),
	}
}

// ResolveDrugsFn resolves a list of free-text drug names to ResolvedEntity,
// one entry per input name (nil when no candidate matched).
func (l *Library) ResolveDrugsFn(ctx context.Context, names []string) (map[string]*ResolvedEntity, error) {
	if err := requireNonEmpty("names", names); err != nil {
		return nil, err
	}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, toolerrorsInvalidArg("names", "must not contain blank entries")
		}
	}
	out := make(map[string]*ResolvedEntity, len(names))
	for _, name := range names {
		cands, err := l.gw.FindDrugsByName(ctx, strings.TrimSpace(name))
		if err != nil {
			return nil, wrapUpstream(err)
		}
		best := bestCandidate(cands)
		if best != nil && best.MatchSource == "substring" {
			best.Confidence = 0.8
		}
		out[name] = best
	}
	return out, nil
}

// ResolveGenesFn resolves gene symbols or nomenclature ids.
func (l *Library) ResolveGenesFn(ctx context.Context, symbols []string) (map[string]*ResolvedEntity, error) {
	if err := requireNonEmpty("symbols", symbols); err != nil {
		return nil, err
	}
	for _, sym := range symbols {
		if strings.TrimSpace(sym) == "" {
			return nil, toolerrorsInvalidArg("symbols", "must not contain blank entries")
		}
	}
	out := make(map[string]*ResolvedEntity, len(symbols))
	for _, sym := range symbols {
		cands, err := l.gw.FindGenesBySymbol(ctx, strings.TrimSpace(sym))
		if err != nil {
			return nil, wrapUpstream(err)
		}
		out[sym] = bestCandidate(cands)
	}
	return out, nil
}

// ResolveDiseasesFn resolves disease labels or ontology ids.
func (l *Library) ResolveDiseasesFn(ctx context.Context, terms []string) (map[string]*ResolvedEntity, error) {
	if err := requireNonEmpty("terms", terms); err != nil {
		return nil, err
	}
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			return nil, toolerrorsInvalidArg("terms", "must not contain blank entries")
		}
	}
	out := make(map[string]*ResolvedEntity, len(terms))
	for _, term := range terms {
		cands, err := l.gw.FindDiseasesByTerm(ctx, strings.TrimSpace(term))
		if err != nil {
			return nil, wrapUpstream(err)
		}
		out[term] = bestCandidate(cands)
	}
	return out, nil
}

// ResolveAdverseEventsFn resolves adverse event labels or ontology codes.
func (l *Library) ResolveAdverseEventsFn(ctx context.Context, terms []string) (map[string]*ResolvedEntity, error) {
	if err := requireNonEmpty("terms", terms); err != nil {
		return nil, err
	}
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			return nil, toolerrorsInvalidArg("terms", "must not contain blank entries")
		}
	}
	out := make(map[string]*ResolvedEntity, len(terms))
	for _, term := range terms {
		cands, err := l.gw.FindAdverseEventsByTerm(ctx, strings.TrimSpace(term))
		if err != nil {
			return nil, wrapUpstream(err)
		}
		out[term] = bestCandidate(cands)
	}
	return out, nil
}
