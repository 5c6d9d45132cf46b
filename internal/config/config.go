// Package config loads the single immutable configuration record the engine
// is constructed from. Configuration is read once at process start from
// environment variables, an optional .env file, and an optional YAML
// overrides file; no global mutable state exists anywhere else in the
// module.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Provider identifies which LLM provider backs the planner/observer/narrator
// roles.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderBedrock   Provider = "bedrock"
)

// Engine identifies which orchestration engine runs the ReAct state machine.
type Engine string

const (
	EngineInMemory Engine = "inmemory"
	EngineTemporal Engine = "temporal"
)

// TraceSink identifies where iteration trace logs are persisted.
type TraceSink string

const (
	TraceSinkMemory TraceSink = "memory"
	TraceSinkMongo  TraceSink = "mongo"
)

// RoleConfig configures a single LLM role (planner, observer, narrator).
type RoleConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Config is the single configuration record threaded through every
// constructor in the module. It is built once at startup and shared by
// reference (read-only) across all concurrent queries.
type Config struct {
	// Graph store connection.
	GraphDSN      string
	GraphPoolSize int

	// LLM provider selection and credentials.
	Provider        Provider
	AnthropicAPIKey string
	OpenAIAPIKey    string
	BedrockRegion   string

	Planner  RoleConfig
	Observer RoleConfig
	Narrator RoleConfig

	// Orchestrator.
	Engine        Engine
	MaxIterations int
	TemporalHost  string
	TemporalQueue string

	// Tool dispatcher.
	ToolTimeout    time.Duration
	TruncationCap  int
	ApplySourceWeights bool
	SourceWeights  map[string]float64
	EdgeWeights    map[string]float64

	// Trace persistence.
	TraceSink TraceSink
	MongoURI  string
	MongoDB   string

	// HTTP server.
	HTTPAddr string
}

// Default returns a Config populated with the engine's documented defaults.
func Default() Config {
	return Config{
		GraphPoolSize: 10,
		Provider:      ProviderAnthropic,
		Planner:       RoleConfig{Temperature: 0.1, MaxTokens: 4096, Timeout: 60 * time.Second},
		Observer:      RoleConfig{Temperature: 0.1, MaxTokens: 1024, Timeout: 60 * time.Second},
		Narrator:      RoleConfig{Temperature: 0.4, MaxTokens: 8192, Timeout: 60 * time.Second},
		Engine:        EngineInMemory,
		MaxIterations: 3,
		TemporalQueue: "pvqa-react",
		ToolTimeout:   30 * time.Second,
		TruncationCap: 30,
		TraceSink:     TraceSinkMemory,
		HTTPAddr:      ":8080",
	}
}

// Load builds a Config from the process environment, optionally loading a
// .env file first (dotenvPath may be empty to skip) and an optional YAML
// overrides file (yamlPath may be empty to skip, used for source/edge
// weight overrides).
func Load(dotenvPath, yamlPath string) (Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: load dotenv: %w", err)
		}
	}

	cfg := Default()
	cfg.GraphDSN = getEnv("PVQA_GRAPH_DSN", cfg.GraphDSN)
	cfg.GraphPoolSize = getEnvInt("PVQA_GRAPH_POOL_SIZE", cfg.GraphPoolSize)

	cfg.Provider = Provider(getEnv("PVQA_LLM_PROVIDER", string(cfg.Provider)))
	cfg.AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", "")
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", "")
	cfg.BedrockRegion = getEnv("AWS_REGION", "us-east-1")

	cfg.Planner.Model = getEnv("PVQA_PLANNER_MODEL", "")
	cfg.Planner.Temperature = getEnvFloat("PVQA_PLANNER_TEMPERATURE", cfg.Planner.Temperature)
	cfg.Observer.Model = getEnv("PVQA_OBSERVER_MODEL", "")
	cfg.Observer.Temperature = getEnvFloat("PVQA_OBSERVER_TEMPERATURE", cfg.Observer.Temperature)
	cfg.Narrator.Model = getEnv("PVQA_NARRATOR_MODEL", "")
	cfg.Narrator.Temperature = getEnvFloat("PVQA_NARRATOR_TEMPERATURE", cfg.Narrator.Temperature)

	cfg.Engine = Engine(getEnv("PVQA_ENGINE", string(cfg.Engine)))
	cfg.MaxIterations = clampIterations(getEnvInt("PVQA_MAX_ITERATIONS", cfg.MaxIterations))
	cfg.TemporalHost = getEnv("PVQA_TEMPORAL_HOST", "")

	cfg.ToolTimeout = getEnvDuration("PVQA_TOOL_TIMEOUT", cfg.ToolTimeout)
	cfg.TruncationCap = getEnvInt("PVQA_TRUNCATION_CAP", cfg.TruncationCap)
	cfg.ApplySourceWeights = getEnvBool("PVQA_APPLY_SOURCE_WEIGHTS", cfg.ApplySourceWeights)

	cfg.TraceSink = TraceSink(getEnv("PVQA_TRACE_SINK", string(cfg.TraceSink)))
	cfg.MongoURI = getEnv("PVQA_MONGO_URI", "")
	cfg.MongoDB = getEnv("PVQA_MONGO_DB", "pvqa")

	cfg.HTTPAddr = getEnv("PVQA_HTTP_ADDR", cfg.HTTPAddr)

	if yamlPath != "" {
		if err := applyYAMLOverrides(&cfg, yamlPath); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// weightsOverrideFile is the subset of the YAML overrides file this package
// understands; unrecognized keys are ignored so the file can carry other
// deployment metadata without breaking decoding.
type weightsOverrideFile struct {
	SourceWeights map[string]float64 `yaml:"source_weights"`
	EdgeWeights   map[string]float64 `yaml:"edge_weights"`
}

func applyYAMLOverrides(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read overrides: %w", err)
	}
	var overrides weightsOverrideFile
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("config: parse overrides: %w", err)
	}
	if len(overrides.SourceWeights) > 0 {
		cfg.SourceWeights = overrides.SourceWeights
	}
	if len(overrides.EdgeWeights) > 0 {
		cfg.EdgeWeights = overrides.EdgeWeights
	}
	return nil
}

func clampIterations(n int) int {
	switch {
	case n < 1:
		return 1
	case n > 10:
		return 10
	default:
		return n
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvBool(key string, def bool) bool {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
