// Package pvqa wires the graph store, tool library, LLM roles, and
// orchestrator engine into a single public call surface: Service.RunQuery.
package pvqa

import (
	"context"
	"fmt"
	"time"

	"github.com/pvkg/pvqa/internal/config"
	"github.com/pvkg/pvqa/internal/graphstore"
	"github.com/pvkg/pvqa/internal/llm"
	"github.com/pvkg/pvqa/internal/llm/anthropic"
	"github.com/pvkg/pvqa/internal/llm/bedrock"
	"github.com/pvkg/pvqa/internal/llm/openai"
	"github.com/pvkg/pvqa/internal/orchestrator"
	"github.com/pvkg/pvqa/internal/scoring"
	"github.com/pvkg/pvqa/internal/telemetry"
	"github.com/pvkg/pvqa/internal/tools"
	"github.com/pvkg/pvqa/internal/tracestore"
	"github.com/pvkg/pvqa/internal/tracestore/inmem"
	tracemongo "github.com/pvkg/pvqa/internal/tracestore/mongo"
	tracemongoclient "github.com/pvkg/pvqa/internal/tracestore/mongo/clients/mongo"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/google/uuid"
	oai "github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	mongooptions "go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Service is the embeddable engine: one Service is constructed at process
// start from a config.Config and reused across concurrent RunQuery calls.
type Service struct {
	engine        orchestrator.Engine
	sink          tracestore.Sink
	logger        telemetry.Logger
	maxIterations int
}

// New builds a Service: opens the graph store pool, probes its schema,
// constructs the tool library and scoring policy, selects and configures
// the LLM provider, and builds the three roles. It always assembles the
// in-process engine and does not consult cfg.Engine; nothing in cmd/pvqa
// registers or starts the workflow in internal/orchestrator/temporal.
func New(ctx context.Context, cfg config.Config, logger telemetry.Logger) (*Service, error) {
	gw, err := graphstore.Open(ctx, cfg.GraphDSN, cfg.GraphPoolSize)
	if err != nil {
		return nil, fmt.Errorf("pvqa: open graph store: %w", err)
	}
	if err := gw.Probe(ctx); err != nil {
		return nil, fmt.Errorf("pvqa: graph store schema probe: %w", err)
	}

	policy := scoring.NewDefaultPolicy()
	if len(cfg.SourceWeights) > 0 {
		policy.SourceWeights = cfg.SourceWeights
	}
	if len(cfg.EdgeWeights) > 0 {
		policy.EdgeWeights = cfg.EdgeWeights
	}
	policy.ApplySourceWeights = cfg.ApplySourceWeights

	lib := tools.New(gw, policy)

	client, err := buildClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("pvqa: build llm client: %w", err)
	}
	planner, observer, narrator := orchestrator.NewRoles(client)

	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}

	sink, err := buildSink(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pvqa: build trace sink: %w", err)
	}

	return &Service{
		engine: orchestrator.Engine{
			Planner:  planner,
			Observer: observer,
			Narrator: narrator,
			Library:  lib,
			Logger:   logger,
		},
		sink:          sink,
		logger:        logger,
		maxIterations: cfg.MaxIterations,
	}, nil
}

// RunQuery is the public entry point: one query in, one completed
// Result out, with cancellation honored cooperatively via ctx. The
// completed run is persisted to the configured trace sink on a best-effort
// basis; a sink failure is logged but never changes the returned Result.
func (s *Service) RunQuery(ctx context.Context, queryText string, maxIterations int) orchestrator.Result {
	queryID := uuid.NewString()
	if maxIterations <= 0 {
		maxIterations = s.maxIterations
	}
	result := s.engine.Run(ctx, orchestrator.Query{Text: queryText, MaxIterations: maxIterations})
	completedAt := time.Now()
	rec := tracestore.FromResult(queryID, queryText, completedAt, result)
	if err := s.sink.Append(context.WithoutCancel(ctx), rec); err != nil {
		s.logger.Warn(ctx, "trace sink append failed", "query_id", queryID, "error", err.Error())
	}
	return result
}

func buildSink(ctx context.Context, cfg config.Config) (tracestore.Sink, error) {
	if cfg.TraceSink != config.TraceSinkMongo {
		return inmem.New(), nil
	}
	mc, err := mongodriver.Connect(mongooptions.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := mc.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return tracemongo.NewStoreFromMongo(tracemongoclient.Options{Client: mc, Database: cfg.MongoDB})
}

func buildClient(cfg config.Config) (llm.Client, error) {
	models := map[llm.Role]string{
		llm.RolePlanner:  cfg.Planner.Model,
		llm.RoleObserver: cfg.Observer.Model,
		llm.RoleNarrator: cfg.Narrator.Model,
	}
	switch cfg.Provider {
	case config.ProviderOpenAI:
		c := oai.NewClient(oaioption.WithAPIKey(cfg.OpenAIAPIKey))
		return openai.New(&c.Chat.Completions, openai.Options{Models: models})
	case config.ProviderBedrock:
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.BedrockRegion))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		rt := bedrockruntime.NewFromConfig(awsCfg)
		return bedrock.New(rt, bedrock.Options{Models: models, MaxTokens: cfg.Planner.MaxTokens})
	default:
		ac := sdk.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
		return anthropic.New(&ac.Messages, anthropic.Options{Models: models, MaxTokens: cfg.Planner.MaxTokens})
	}
}
