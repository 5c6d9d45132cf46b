// Package anthropic provides an llm.Client implementation backed by the
// Anthropic Claude Messages API via github.com/anthropics/anthropic-sdk-go.
// It is deliberately text-only: requests carry no native tool-use blocks
// since the planner/observer/narrator roles exchange plain JSON-in-text
// (see internal/llm.Request), so this adapter only has to translate
// System/Messages/Model/Temperature/MaxTokens and read back the first text
// block of the response.
package anthropic

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pvkg/pvqa/internal/llm"
)

// MessagesClient captures the subset of the Anthropic SDK used by the
// adapter, letting callers substitute a fake in tests.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Options configures the Anthropic adapter's per-role model defaults.
type Options struct {
	// Models maps an llm.Role to the Claude model identifier used when the
	// Request does not set Model explicitly.
	Models map[llm.Role]string
	// MaxTokens is the completion cap used when Request.MaxTokens is zero.
	MaxTokens int
}

// Client implements llm.Client on top of Anthropic Claude Messages.
type Client struct {
	msg       MessagesClient
	models    map[llm.Role]string
	maxTokens int
}

// New builds an Anthropic-backed llm.Client.
func New(msg MessagesClient, opts Options) (*Client, error) {
	if msg == nil {
		return nil, errors.New("anthropic: messages client is required")
	}
	if len(opts.Models) == 0 {
		return nil, errors.New("anthropic: at least one role model mapping is required")
	}
	return &Client{msg: msg, models: opts.Models, maxTokens: opts.MaxTokens}, nil
}

// NewFromAPIKey constructs a client using the SDK's default HTTP client,
// reading ANTHROPIC_API_KEY conventions via option.WithAPIKey.
func NewFromAPIKey(apiKey string, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	ac := sdk.NewClient(option.WithAPIKey(apiKey))
	return New(&ac.Messages, opts)
}

// Complete issues a single-turn Messages.New request and returns the first
// text block of the reply.
func (c *Client) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	if len(req.Messages) == 0 {
		return llm.Response{}, errors.New("anthropic: at least one message is required")
	}
	modelID := req.Model
	if modelID == "" {
		modelID = c.models[req.Role]
	}
	if modelID == "" {
		return llm.Response{}, fmt.Errorf("anthropic: no model configured for role %q", req.Role)
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}
	if maxTokens <= 0 {
		return llm.Response{}, errors.New("anthropic: max_tokens must be positive")
	}

	msgs := make([]sdk.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		text := joinParts(m.Parts)
		if text == "" {
			continue
		}
		switch m.Role {
		case llm.ConversationUser:
			msgs = append(msgs, sdk.NewUserMessage(sdk.NewTextBlock(text)))
		case llm.ConversationAssistant:
			msgs = append(msgs, sdk.NewAssistantMessage(sdk.NewTextBlock(text)))
		}
	}
	if len(msgs) == 0 {
		return llm.Response{}, errors.New("anthropic: no non-empty user/assistant messages")
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(modelID),
		MaxTokens: int64(maxTokens),
		Messages:  msgs,
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = sdk.Float(req.Temperature)
	}

	msg, err := c.msg.New(ctx, params)
	if err != nil {
		return llm.Response{}, fmt.Errorf("anthropic messages.new: %w", err)
	}
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			text = block.Text
			break
		}
	}
	return llm.Response{
		Text:         text,
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
	}, nil
}

func joinParts(parts []llm.Part) string {
	var out string
	for _, p := range parts {
		out += p.Text
	}
	return out
}
