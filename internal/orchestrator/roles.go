package orchestrator

import (
	"context"
	"fmt"

	"github.com/pvkg/pvqa/internal/llm"
	"github.com/pvkg/pvqa/internal/prompts"
)

// Planner produces the next ToolPlan given the query and the accumulated
// trace digest.
type Planner interface {
	Plan(ctx context.Context, queryText, digest string) (llm.ToolPlanDTO, error)
}

// Observer judges whether the accumulated evidence is sufficient.
type Observer interface {
	Observe(ctx context.Context, queryText, digest string) (llm.SufficiencyVerdictDTO, error)
}

// Narrator renders the final natural-language summary.
type Narrator interface {
	Narrate(ctx context.Context, queryText, digest string, bestEffort bool) (string, error)
}

const (
	plannerMaxTokens  = 4096
	narratorMaxTokens = 8192
	observerMaxTokens = 1024
)

// clientRoles wraps one llm.Client to implement Planner, Observer, and
// Narrator — three roles sharing one provider endpoint, each with its own
// system prompt and token budget.
type clientRoles struct {
	client llm.Client
}

// NewRoles builds the Planner/Observer/Narrator triple backed by a single
// llm.Client.
func NewRoles(client llm.Client) (Planner, Observer, Narrator) {
	r := &clientRoles{client: client}
	return r, r, r
}

func (r *clientRoles) Plan(ctx context.Context, queryText, digest string) (llm.ToolPlanDTO, error) {
	req := llm.Request{
		Role:       llm.RolePlanner,
		System:     prompts.PlannerSystem(),
		Messages:   []llm.Message{userMessage(queryText, digest)},
		MaxTokens:  plannerMaxTokens,
		JSONSchema: llm.PlanSchema,
	}
	return llm.CompletePlan(ctx, r.client, req)
}

func (r *clientRoles) Observe(ctx context.Context, queryText, digest string) (llm.SufficiencyVerdictDTO, error) {
	req := llm.Request{
		Role:       llm.RoleObserver,
		System:     prompts.ObserverSystem(),
		Messages:   []llm.Message{userMessage(queryText, digest)},
		MaxTokens:  observerMaxTokens,
		JSONSchema: llm.VerdictSchema,
	}
	return llm.CompleteVerdict(ctx, r.client, req)
}

func (r *clientRoles) Narrate(ctx context.Context, queryText, digest string, bestEffort bool) (string, error) {
	req := llm.Request{
		Role:      llm.RoleNarrator,
		System:    prompts.NarratorSystem(bestEffort),
		Messages:  []llm.Message{userMessage(queryText, digest)},
		MaxTokens: narratorMaxTokens,
	}
	resp, err := r.client.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func userMessage(queryText, digest string) llm.Message {
	text := fmt.Sprintf("Question: %s\n\nEvidence so far:\n%s", queryText, digest)
	return llm.Message{Role: llm.ConversationUser, Parts: []llm.Part{{Text: text}}}
}
