// Package core defines the types shared by tools, the engine and the transports.
package core

import (
	"context"
	"encoding/json"
)

// ToolDefinition is the static description of a tool: its name, what it does
// and the JSON Schema of its input.
type ToolDefinition struct {
	ToolName        string                 `json:"name"`
	ToolDescription string                 `json:"description"`
	InputSchema     map[string]interface{} `json:"input_schema"`
}

// Tool is a named operation callable by an agent.
type Tool interface {
	Name() string
	Description() string
	Schema() map[string]interface{}

	// Execute runs the tool. Domain failures are reported through
	// ToolResult.Success; a non-nil error means the tool could not run at all.
	Execute(ctx context.Context, params *ToolParams) (*ToolResult, error)
}

// ToolParams carries the input of one tool invocation.
type ToolParams struct {
	// UserID identifies the caller when the transport knows it.
	UserID string

	// Input is the raw JSON argument object.
	Input json.RawMessage

	// RequestID correlates log and audit lines for one invocation.
	RequestID string
}

// ToolResult is the outcome of a tool invocation.
type ToolResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Text returns the result as display text: Data when it is a string, its
// JSON encoding otherwise, and Error for failures.
func (r *ToolResult) Text() string {
	if r == nil {
		return ""
	}
	if !r.Success {
		return r.Error
	}
	if s, ok := r.Data.(string); ok {
		return s
	}
	b, err := json.Marshal(r.Data)
	if err != nil {
		return ""
	}
	return string(b)
}

// ToolExecution records one tool call made during an agent run.
type ToolExecution struct {
	Tool       string      `json:"tool"`
	Input      interface{} `json:"input,omitempty"`
	Result     interface{} `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
	DurationMs int64       `json:"duration_ms"`
}
