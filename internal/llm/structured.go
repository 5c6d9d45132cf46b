package llm

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache lazily caches compiled JSON schemas by their raw bytes
// identity (schemas are small, fixed, package-level constants, so a map
// keyed by the schema text is sufficient — there is no per-query schema
// variation). schemaMu guards it, since concurrent queries share it.
var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*jsonschema.Schema{}
)

func compile(schemaJSON []byte) (*jsonschema.Schema, error) {
	key := string(schemaJSON)
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if sch, ok := schemaCache[key]; ok {
		return sch, nil
	}
	c := jsonschema.NewCompiler()
	const resourceURL = "mem://structured-schema.json"
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, err
	}
	if err := c.AddResource(resourceURL, doc); err != nil {
		return nil, err
	}
	sch, err := c.Compile(resourceURL)
	if err != nil {
		return nil, err
	}
	schemaCache[key] = sch
	return sch, nil
}

// validate parses raw as JSON and checks it against schemaJSON, returning
// the parsed value on success.
func validate(schemaJSON []byte, raw string) (any, error) {
	sch, err := compile(schemaJSON)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &v); err != nil {
		return nil, err
	}
	if err := sch.Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

// extractJSON strips a fenced ```json ... ``` code block if the model wrapped
// its response in one, otherwise returns raw unchanged. Planners trained on
// chat-style output routinely do this even when told not to.
func extractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}

// CompletePlan issues req (expected to carry PlanSchema in req.JSONSchema)
// and validates the result, retrying once with a repair instruction appended
// to the conversation on the first validation failure. A second failure
// surfaces as KindMalformedPlan.
func CompletePlan(ctx context.Context, client Client, req Request) (ToolPlanDTO, error) {
	var plan ToolPlanDTO
	resp, err := client.Complete(ctx, req)
	if err != nil {
		return plan, err
	}
	v, verr := validate(req.JSONSchema, resp.Text)
	if verr != nil {
		repaired, rerr := repair(ctx, client, req, resp.Text, verr)
		if rerr != nil {
			return plan, malformedPlan("planner response failed schema validation twice", rerr)
		}
		v = repaired
	}
	b, _ := json.Marshal(v)
	if err := json.Unmarshal(b, &plan); err != nil {
		return plan, malformedPlan("planner JSON did not decode into ToolPlanDTO", err)
	}
	return plan, nil
}

// CompleteVerdict issues req (expected to carry VerdictSchema) and validates
// the result with the same one-retry repair contract as CompletePlan.
func CompleteVerdict(ctx context.Context, client Client, req Request) (SufficiencyVerdictDTO, error) {
	var verdict SufficiencyVerdictDTO
	resp, err := client.Complete(ctx, req)
	if err != nil {
		return verdict, err
	}
	v, verr := validate(req.JSONSchema, resp.Text)
	if verr != nil {
		repaired, rerr := repair(ctx, client, req, resp.Text, verr)
		if rerr != nil {
			return verdict, malformedVerdict("observer response failed schema validation twice", rerr)
		}
		v = repaired
	}
	b, _ := json.Marshal(v)
	if err := json.Unmarshal(b, &verdict); err != nil {
		return verdict, malformedVerdict("observer JSON did not decode into SufficiencyVerdictDTO", err)
	}
	return verdict, nil
}

// repair re-issues the request with the invalid response and the validation
// error appended as a correction instruction, then validates once more.
func repair(ctx context.Context, client Client, req Request, badText string, verr error) (any, error) {
	retryReq := req
	retryReq.Messages = append(append([]Message{}, req.Messages...), Message{
		Role: ConversationAssistant,
		Parts: []Part{{Text: badText}},
	}, Message{
		Role: ConversationUser,
		Parts: []Part{{Text: "Your previous response did not validate against the required JSON schema (" + verr.Error() + "). Reply again with ONLY a single JSON object matching the schema, no surrounding prose or code fences."}},
	})
	resp, err := client.Complete(ctx, retryReq)
	if err != nil {
		return nil, err
	}
	return validate(req.JSONSchema, resp.Text)
}
