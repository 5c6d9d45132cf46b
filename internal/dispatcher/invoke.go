package dispatcher

import (
	"context"

	"github.com/pvkg/pvqa/internal/graphstore"
	"github.com/pvkg/pvqa/internal/tools"
)

// invokeFn calls one tool against the library after its arguments have been
// coerced from the planner's untyped map. Errors returned here are either
// argError (dispatcher-level coercion failures) or *toolerrors.ToolError
// (library-level failures) — both are normalized by classifyError.
type invokeFn func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error)

var invokeTable = map[tools.Name]invokeFn{
	tools.ResolveDrugs: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		names, err := argStringSlice(args, "names")
		if err != nil {
			return nil, err
		}
		return lib.ResolveDrugsFn(ctx, names)
	},
	tools.ResolveGenes: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		symbols, err := argStringSlice(args, "symbols")
		if err != nil {
			return nil, err
		}
		return lib.ResolveGenesFn(ctx, symbols)
	},
	tools.ResolveDiseases: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		terms, err := argStringSlice(args, "terms")
		if err != nil {
			return nil, err
		}
		return lib.ResolveDiseasesFn(ctx, terms)
	},
	tools.ResolveAdverseEvents: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		terms, err := argStringSlice(args, "terms")
		if err != nil {
			return nil, err
		}
		return lib.ResolveAdverseEventsFn(ctx, terms)
	},
	tools.GetDrugTargets: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "drug_key")
		if err != nil {
			return nil, err
		}
		return lib.GetDrugTargetsFn(ctx, key)
	},
	tools.GetGenePathways: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "gene_key")
		if err != nil {
			return nil, err
		}
		return lib.GetGenePathwaysFn(ctx, key)
	},
	tools.GetGeneDiseases: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "gene_key")
		if err != nil {
			return nil, err
		}
		return lib.GetGeneDiseasesFn(ctx, key, argOptFloat64(args, "min_score", 0))
	},
	tools.GetDiseaseGenes: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "disease_key")
		if err != nil {
			return nil, err
		}
		sources := argOptStringSlice(args, "sources")
		return lib.GetDiseaseGenesFn(ctx, key, sources, argOptFloat64(args, "min_score", 0), argOptInt(args, "limit", 0))
	},
	tools.GetGeneInteractors: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "gene_key")
		if err != nil {
			return nil, err
		}
		return lib.GetGeneInteractorsFn(ctx, key, argOptFloat64(args, "min_score", 0), argOptInt(args, "limit", 0))
	},
	tools.ExpandMechanism: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "drug_key")
		if err != nil {
			return nil, err
		}
		return lib.ExpandMechanismFn(ctx, key)
	},
	tools.ExpandGeneContext: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		keys := argOptInt64Slice(args, "gene_keys")
		return lib.ExpandGeneContextFn(ctx, keys, argOptFloat64(args, "min_disease_score", 0))
	},
	tools.GetDrugAdverseEvents: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "drug_key")
		if err != nil {
			return nil, err
		}
		return lib.GetDrugAdverseEventsFn(ctx, key, argOptFloat64(args, "min_frequency", 0), argOptInt(args, "limit", 0))
	},
	tools.GetDrugLabelSections: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "drug_key")
		if err != nil {
			return nil, err
		}
		return lib.GetDrugLabelSectionsFn(ctx, key, argOptStringSlice(args, "sections"))
	},
	tools.GetDrugFAERSSignals: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "drug_key")
		if err != nil {
			return nil, err
		}
		return lib.GetDrugFAERSSignalsFn(ctx, key, argOptInt(args, "top_k", 0), argOptInt(args, "min_count", 0), argOptFloat64(args, "min_prr", 0))
	},
	tools.GetDrugProfile: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "drug_key")
		if err != nil {
			return nil, err
		}
		return lib.GetDrugProfileFn(ctx, key)
	},
	tools.GetClaimEvidence: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "claim_key")
		if err != nil {
			return nil, err
		}
		return lib.GetClaimEvidenceFn(ctx, key)
	},
	tools.GetEntityClaims: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		kind, err := argString(args, "entity_kind")
		if err != nil {
			return nil, err
		}
		key, err := argInt64(args, "entity_key")
		if err != nil {
			return nil, err
		}
		return lib.GetEntityClaimsFn(ctx, kind, key, argOptStringSlice(args, "claim_types"), argOptInt(args, "limit", 0))
	},
	tools.FindDrugToAEPaths: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "drug_key")
		if err != nil {
			return nil, err
		}
		return lib.FindDrugToAEPathsFn(ctx, key, argOptInt64Ptr(args, "ae_key"), argOptInt(args, "max_paths", 0))
	},
	tools.ExplainPaths: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		key, err := argInt64(args, "drug_key")
		if err != nil {
			return nil, err
		}
		return lib.ExplainPathsFn(ctx, key, argOptInt64Ptr(args, "ae_key"), argOptInt64Slice(args, "condition_keys"), argOptInt(args, "top_k", 0))
	},
	tools.BuildSubgraph: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		keys := argOptInt64Slice(args, "drug_keys")
		return lib.BuildSubgraphFn(ctx, tools.BuildSubgraphRequest{
			DrugKeys:        keys,
			IncludeTargets:  argOptBool(args, "include_targets", true),
			IncludePathways: argOptBool(args, "include_pathways", true),
			IncludeDiseases: argOptBool(args, "include_diseases", true),
			IncludeAEs:      argOptBool(args, "include_adverse_events", true),
			MaxTargets:      argOptInt(args, "max_targets", 0),
			MaxPathways:     argOptInt(args, "max_pathways", 0),
			MaxDiseases:     argOptInt(args, "max_diseases", 0),
			MaxAEs:          argOptInt(args, "max_adverse_events", 0),
			MinDiseaseScore: argOptFloat64(args, "min_disease_score", 0),
		})
	},
	tools.ScoreEdges: func(ctx context.Context, lib *tools.Library, args map[string]any) (any, error) {
		sg, ok := args["subgraph"].(graphstore.Subgraph)
		if !ok {
			return nil, wrongType("subgraph", "a previously built subgraph", args["subgraph"])
		}
		overrides := map[string]float64{}
		if raw, ok := args["weights"].(map[string]float64); ok {
			overrides = raw
		}
		return lib.ScoreEdgesFn(sg, overrides), nil
	},
}
