package tools

import (
	"context"
	"fmt"

	"github.com/mybambu/transfer-tools/core"
)

// HandlerFunc executes a tool invocation.
type HandlerFunc func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error)

// Builder assembles a core.Tool.
//
//	tool := tools.New("get_supported_countries").
//		Description("Get list of countries where we can send money").
//		Schema(tools.ObjectSchema(map[string]interface{}{})).
//		Handler(handler).
//		Build()
type Builder struct {
	def     core.ToolDefinition
	handler HandlerFunc
}

// New starts a tool named name.
func New(name string) *Builder {
	return &Builder{def: core.ToolDefinition{ToolName: name}}
}

func (b *Builder) Description(description string) *Builder {
	b.def.ToolDescription = description
	return b
}

func (b *Builder) Schema(schema map[string]interface{}) *Builder {
	b.def.InputSchema = schema
	return b
}

func (b *Builder) Handler(h HandlerFunc) *Builder {
	b.handler = h
	return b
}

// Build returns the tool. A missing schema defaults to an empty object.
func (b *Builder) Build() core.Tool {
	def := b.def
	if def.InputSchema == nil {
		def.InputSchema = ObjectSchema(map[string]interface{}{})
	}
	return &funcTool{def: def, handler: b.handler}
}

type funcTool struct {
	def     core.ToolDefinition
	handler HandlerFunc
}

func (t *funcTool) Name() string                   { return t.def.ToolName }
func (t *funcTool) Description() string            { return t.def.ToolDescription }
func (t *funcTool) Schema() map[string]interface{} { return t.def.InputSchema }

func (t *funcTool) Execute(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
	if t.handler == nil {
		return nil, fmt.Errorf("tool %s has no handler", t.def.ToolName)
	}
	return t.handler(ctx, params)
}

// Definition returns the static definition of t.
func Definition(t core.Tool) core.ToolDefinition {
	return core.ToolDefinition{
		ToolName:        t.Name(),
		ToolDescription: t.Description(),
		InputSchema:     t.Schema(),
	}
}
