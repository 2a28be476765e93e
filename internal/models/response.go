package models

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// AgentStep is one transcript mutation observed during an agent run,
// in the order it happened: model text, tool request, tool result, final answer.
type AgentStep struct {
	Type    string         `json:"type"` // "model_text" | "tool_request" | "tool_result" | "final_answer"
	Round   int            `json:"round"`
	Tool    string         `json:"tool,omitempty"`
	Args    map[string]any `json:"args,omitempty"`
	Content string         `json:"content,omitempty"`
	IsError bool           `json:"is_error,omitempty"`
}

// AskResponse is returned by POST /api/v1/ask
type AskResponse struct {
	Status    string         `json:"status"`
	Question  string         `json:"question"`
	Answer    string         `json:"answer"`
	ToolsUsed []string       `json:"tools_used"`
	Rounds    int            `json:"rounds"`
	Steps     []AgentStep    `json:"steps,omitempty"`
	Metadata  map[string]any `json:"metadata"`
}

// CalculateResponse is returned by POST /api/v1/calculate
type CalculateResponse struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

// ToolInfo describes one registered tool for GET /api/v1/tools
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}
