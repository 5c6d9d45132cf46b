// Package bedrock provides an llm.Client implementation backed by the AWS
// Bedrock Converse API via github.com/aws/aws-sdk-go-v2/service/bedrockruntime.
// Like the other adapters it is text-only: it encodes System/Messages as
// Converse content blocks and reads back the first text block of the reply.
package bedrock

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/pvkg/pvqa/internal/llm"
)

// RuntimeClient captures the subset of the Bedrock runtime client used by
// the adapter, matching *bedrockruntime.Client so callers can pass either
// the real client or a fake in tests.
type RuntimeClient interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Options configures the Bedrock adapter's per-role model defaults.
type Options struct {
	Models    map[llm.Role]string
	MaxTokens int
}

// Client implements llm.Client on top of AWS Bedrock Converse.
type Client struct {
	runtime   RuntimeClient
	models    map[llm.Role]string
	maxTokens int
}

// New builds a Bedrock-backed llm.Client.
func New(runtime RuntimeClient, opts Options) (*Client, error) {
	if runtime == nil {
		return nil, errors.New("bedrock: runtime client is required")
	}
	if len(opts.Models) == 0 {
		return nil, errors.New("bedrock: at least one role model mapping is required")
	}
	return &Client{runtime: runtime, models: opts.Models, maxTokens: opts.MaxTokens}, nil
}

// Complete issues a Converse request and returns the first text block of
// the reply message.
func (c *Client) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	if len(req.Messages) == 0 {
		return llm.Response{}, errors.New("bedrock: at least one message is required")
	}
	modelID := req.Model
	if modelID == "" {
		modelID = c.models[req.Role]
	}
	if modelID == "" {
		return llm.Response{}, fmt.Errorf("bedrock: no model configured for role %q", req.Role)
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	msgs := make([]brtypes.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		text := joinParts(m.Parts)
		if text == "" {
			continue
		}
		var role brtypes.ConversationRole
		switch m.Role {
		case llm.ConversationUser:
			role = brtypes.ConversationRoleUser
		case llm.ConversationAssistant:
			role = brtypes.ConversationRoleAssistant
		default:
			continue
		}
		msgs = append(msgs, brtypes.Message{
			Role:    role,
			Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: text}},
		})
	}
	if len(msgs) == 0 {
		return llm.Response{}, errors.New("bedrock: no non-empty user/assistant messages")
	}

	input := &bedrockruntime.ConverseInput{
		ModelId:  aws.String(modelID),
		Messages: msgs,
	}
	if req.System != "" {
		input.System = []brtypes.SystemContentBlock{&brtypes.SystemContentBlockMemberText{Value: req.System}}
	}
	var cfg brtypes.InferenceConfiguration
	hasCfg := false
	if req.Temperature > 0 {
		t := float32(req.Temperature)
		cfg.Temperature = &t
		hasCfg = true
	}
	if maxTokens > 0 {
		mt := int32(maxTokens)
		cfg.MaxTokens = &mt
		hasCfg = true
	}
	if hasCfg {
		input.InferenceConfig = &cfg
	}

	out, err := c.runtime.Converse(ctx, input)
	if err != nil {
		return llm.Response{}, fmt.Errorf("bedrock converse: %w", err)
	}
	output, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return llm.Response{}, errors.New("bedrock: response had no message output")
	}
	var text string
	for _, block := range output.Value.Content {
		if tb, ok := block.(*brtypes.ContentBlockMemberText); ok && tb.Value != "" {
			text = tb.Value
			break
		}
	}
	resp := llm.Response{Text: text}
	if out.Usage != nil {
		resp.InputTokens = int(aws.ToInt32(out.Usage.InputTokens))
		resp.OutputTokens = int(aws.ToInt32(out.Usage.OutputTokens))
	}
	return resp, nil
}

func joinParts(parts []llm.Part) string {
	var out string
	for _, p := range parts {
		out += p.Text
	}
	return out
}
