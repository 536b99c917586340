package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/google/uuid"

	"github.com/mybambu/transfer-tools/core"
	"github.com/mybambu/transfer-tools/tools"
)

// ErrUnknownTool is returned by Execute for names that are not registered.
var ErrUnknownTool = errors.New("unknown tool")

// ToolRegistry holds the tools available to every transport and routes
// invocations to them by name.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]core.Tool
	order []string
	audit AuditLogger
}

// RegistryOption configures a ToolRegistry.
type RegistryOption func(*ToolRegistry)

// WithRegistryAudit records every executed tool call.
func WithRegistryAudit(a AuditLogger) RegistryOption {
	return func(r *ToolRegistry) {
		r.audit = a
	}
}

// NewToolRegistry creates an empty registry.
func NewToolRegistry(opts ...RegistryOption) *ToolRegistry {
	r := &ToolRegistry{tools: make(map[string]core.Tool)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds tools. A tool with an existing name replaces the earlier one
// and keeps its position.
func (r *ToolRegistry) Register(ts ...core.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range ts {
		if _, exists := r.tools[t.Name()]; !exists {
			r.order = append(r.order, t.Name())
		}
		r.tools[t.Name()] = t
	}
}

// Get returns the tool registered under name.
func (r *ToolRegistry) Get(name string) (core.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns the registered tools in registration order.
func (r *ToolRegistry) List() []core.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Tool, len(r.order))
	for i, name := range r.order {
		out[i] = r.tools[name]
	}
	return out
}

// Definitions returns the static definition of every registered tool.
func (r *ToolRegistry) Definitions() []core.ToolDefinition {
	list := r.List()
	defs := make([]core.ToolDefinition, len(list))
	for i, t := range list {
		defs[i] = tools.Definition(t)
	}
	return defs
}

// Execute runs the named tool and audits the call.
func (r *ToolRegistry) Execute(ctx context.Context, name string, params *core.ToolParams) (*core.ToolResult, error) {
	t, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if params == nil {
		params = &core.ToolParams{}
	}
	if params.RequestID == "" {
		params.RequestID = uuid.New().String()
	}

	start := time.Now()
	result, err := t.Execute(ctx, params)
	duration := time.Since(start).Milliseconds()

	if r.audit != nil {
		r.audit.Log(ctx, newAuditEntry(name, params, result, err, start, duration))
	}
	return result, err
}

// Dispatch runs the named tool and folds every failure into the result, so
// transports only deal with one shape.
func (r *ToolRegistry) Dispatch(ctx context.Context, name string, params *core.ToolParams) *core.ToolResult {
	result, err := r.Execute(ctx, name, params)
	switch {
	case errors.Is(err, ErrUnknownTool):
		log.Printf("[TOOL] unknown tool requested: %s", name)
		return &core.ToolResult{Success: false, Error: "Unknown tool: " + name}
	case err != nil:
		log.Printf("[TOOL] %s failed: %v", name, err)
		return &core.ToolResult{Success: false, Error: err.Error()}
	case result == nil:
		return &core.ToolResult{Success: false, Error: fmt.Sprintf("tool %s returned no result", name)}
	}
	return result
}

// ToAPITools converts the registered tools to Claude tool declarations. Each
// schema gains an optional "thought" property for the agent's reasoning.
func (r *ToolRegistry) ToAPITools() []anthropic.ToolUnionParam {
	list := r.List()
	out := make([]anthropic.ToolUnionParam, 0, len(list))
	for _, t := range list {
		schema := tools.WithThought(t.Schema())
		inputSchema := anthropic.ToolInputSchemaParam{
			Properties: schema["properties"],
		}
		if required, ok := schema["required"].([]string); ok {
			inputSchema.Required = required
		}
		out = append(out, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name(),
				Description: anthropic.String(t.Description()),
				InputSchema: inputSchema,
			},
		})
	}
	return out
}

func newAuditEntry(name string, params *core.ToolParams, result *core.ToolResult, err error, start time.Time, durationMs int64) *AuditEntry {
	entry := &AuditEntry{
		ID:         uuid.New().String(),
		UserID:     params.UserID,
		RequestID:  params.RequestID,
		ToolName:   name,
		ToolInput:  params.Input,
		DurationMs: durationMs,
		Timestamp:  start.Unix(),
	}
	if result != nil {
		entry.Success = result.Success
		entry.ToolOutput, _ = json.Marshal(result.Data)
		if result.Error != "" {
			msg := result.Error
			entry.Error = &msg
		}
	}
	if err != nil {
		msg := err.Error()
		entry.Error = &msg
		entry.Success = false
	}
	return entry
}
