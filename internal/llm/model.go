// Package llm provides the provider-agnostic request/response types shared
// by the planner, observer, and narrator roles, plus the structured-output
// contract (jsonschema-validated ToolPlan/SufficiencyVerdict) every provider
// adapter must honor.
package llm

import "context"

// Role identifies which of the three roles a request is issued for. The
// provider adapters pick a model id per role (internal/config.RoleConfig's
// Model) even though all three may share one provider endpoint; the
// Temperature and Timeout fields of RoleConfig are not applied to requests.
type Role string

const (
	RolePlanner  Role = "planner"
	RoleObserver Role = "observer"
	RoleNarrator Role = "narrator"
)

// Part is a single content block within a Message. TextPart is the only
// part kind this engine ever sends or receives — the tool catalog and
// observations are rendered as text by the Prompt Catalog rather than
// passed as native tool-use blocks, so a single provider adapter shape
// covers all three roles.
type Part struct {
	Text string
}

// ConversationRole is the role of a Message within a request's transcript.
type ConversationRole string

const (
	ConversationSystem    ConversationRole = "system"
	ConversationUser      ConversationRole = "user"
	ConversationAssistant ConversationRole = "assistant"
)

// Message is one turn in the conversation sent to the model.
type Message struct {
	Role  ConversationRole
	Parts []Part
}

// Request is a typed, provider-agnostic completion request.
type Request struct {
	Role        Role
	System      string
	Messages    []Message
	Model       string
	Temperature float64
	MaxTokens   int
	// JSONSchema, when non-empty, is the schema the response text must
	// validate against. Client.Complete does not check it; CompletePlan and
	// CompleteVerdict validate with one repair retry before surfacing
	// llm.malformed_plan/llm.malformed_verdict.
	JSONSchema []byte
}

// Response is a provider-agnostic completion result.
type Response struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Client is implemented by each provider adapter (anthropic, openai,
// bedrock). All three roles (planner/observer/narrator) go through the same
// method; the adapters use Request.Role to choose the model id.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
