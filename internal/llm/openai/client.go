// Package openai provides an llm.Client implementation backed by the OpenAI
// Chat Completions API via github.com/openai/openai-go. Like the anthropic
// adapter, it is text-only: no function-calling blocks are encoded since
// structured output is enforced by internal/llm's schema-validated repair
// loop rather than native tool use.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pvkg/pvqa/internal/llm"
)

// ChatClient captures the subset of the openai-go client used by the
// adapter, letting callers substitute a fake in tests.
type ChatClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Options configures the OpenAI adapter's per-role model defaults.
type Options struct {
	Models map[llm.Role]string
}

// Client implements llm.Client on top of OpenAI Chat Completions.
type Client struct {
	chat   ChatClient
	models map[llm.Role]string
}

// New builds an OpenAI-backed llm.Client.
func New(chat ChatClient, opts Options) (*Client, error) {
	if chat == nil {
		return nil, errors.New("openai: chat client is required")
	}
	if len(opts.Models) == 0 {
		return nil, errors.New("openai: at least one role model mapping is required")
	}
	return &Client{chat: chat, models: opts.Models}, nil
}

// NewFromAPIKey constructs a client using the SDK's default HTTP client.
func NewFromAPIKey(apiKey string, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openai: api key is required")
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return New(&c.Chat.Completions, opts)
}

// Complete issues a Chat Completions request and returns the first choice's
// message content.
func (c *Client) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	if len(req.Messages) == 0 {
		return llm.Response{}, errors.New("openai: at least one message is required")
	}
	modelID := req.Model
	if modelID == "" {
		modelID = c.models[req.Role]
	}
	if modelID == "" {
		return llm.Response{}, fmt.Errorf("openai: no model configured for role %q", req.Role)
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		text := joinParts(m.Parts)
		if text == "" {
			continue
		}
		switch m.Role {
		case llm.ConversationUser:
			msgs = append(msgs, openai.UserMessage(text))
		case llm.ConversationAssistant:
			msgs = append(msgs, openai.AssistantMessage(text))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    modelID,
		Messages: msgs,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.chat.New(ctx, params)
	if err != nil {
		return llm.Response{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return llm.Response{}, errors.New("openai: response had no choices")
	}
	return llm.Response{
		Text:         resp.Choices[0].Message.Content,
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
	}, nil
}

func joinParts(parts []llm.Part) string {
	var out string
	for _, p := range parts {
		out += p.Text
	}
	return out
}
