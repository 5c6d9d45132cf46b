package llm

// ToolCallDTO is the wire shape of one planned tool invocation inside a
// planner response, decoded from JSON and later converted into
// dispatcher.ToolCallRequest by the orchestrator.
type ToolCallDTO struct {
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args"`
	Reason string         `json:"reason,omitempty"`
}

// ToolPlanDTO is the planner role's structured response: either a batch of
// tool calls to dispatch next, or a stop signal when the planner believes
// the accumulated evidence already answers the query.
type ToolPlanDTO struct {
	Calls []ToolCallDTO `json:"calls"`
	Stop  bool          `json:"stop"`
}

// SufficiencyVerdictDTO is the observer role's structured response,
// judging whether the evidence accumulated so far is sufficient to answer
// the original query or whether another planning iteration is warranted.
type SufficiencyVerdictDTO struct {
	Sufficient bool     `json:"sufficient"`
	Reason     string   `json:"reason"`
	Gaps       []string `json:"gaps,omitempty"`
}

// PlanSchema is the JSON Schema every planner Request must carry in
// Request.JSONSchema.
var PlanSchema = []byte(`{
  "type": "object",
  "required": ["calls", "stop"],
  "additionalProperties": false,
  "properties": {
    "calls": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["tool", "args"],
        "additionalProperties": false,
        "properties": {
          "tool": {"type": "string"},
          "args": {"type": "object"},
          "reason": {"type": "string"}
        }
      }
    },
    "stop": {"type": "boolean"}
  }
}`)

// VerdictSchema is the JSON Schema every observer Request must carry in
// Request.JSONSchema.
var VerdictSchema = []byte(`{
  "type": "object",
  "required": ["sufficient", "reason"],
  "additionalProperties": false,
  "properties": {
    "sufficient": {"type": "boolean"},
    "reason": {"type": "string"},
    "gaps": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`)
