// Package mcpserver exposes the tool registry as an MCP server.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mybambu/transfer-tools/core"
	"github.com/mybambu/transfer-tools/engine"
)

// New creates an MCP server with one MCP tool per registered tool. Schemas
// are passed through unchanged.
func New(registry *engine.ToolRegistry, name, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(false))

	for _, t := range registry.List() {
		schema, err := json.Marshal(t.Schema())
		if err != nil {
			return nil, err
		}
		s.AddTool(mcp.NewToolWithRawSchema(t.Name(), t.Description(), schema), Handler(registry))
	}
	return s, nil
}

// Handler returns an MCP tool handler that dispatches through registry.
// Failed results become MCP error results with an "Error: " prefix.
func Handler(registry *engine.ToolRegistry) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if args == nil {
			args = map[string]any{}
		}
		if err := checkBankDetails(args); err != nil {
			log.Printf("[MCP] %s rejected: %v", req.Params.Name, err)
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}
		input, err := json.Marshal(args)
		if err != nil {
			return mcp.NewToolResultError("Error: invalid arguments: " + err.Error()), nil
		}

		result := registry.Dispatch(ctx, req.Params.Name, &core.ToolParams{Input: input})
		if !result.Success {
			log.Printf("[MCP] %s failed: %s", req.Params.Name, result.Error)
			return mcp.NewToolResultError("Error: " + result.Error), nil
		}
		return mcp.NewToolResultText(result.Text()), nil
	}
}

// maxExactInteger is the largest magnitude a float64 holds without rounding.
const maxExactInteger = 1 << 53

// checkBankDetails rejects numeric bank details that arrived already rounded.
// Arguments are decoded into float64 before the handler runs, so an account
// number beyond 2^53 cannot be recovered.
func checkBankDetails(args map[string]any) error {
	details, ok := args["bank_details"].(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if f, ok := details[k].(float64); ok && math.Abs(f) >= maxExactInteger {
			return fmt.Errorf("bank detail %s must be a string", k)
		}
	}
	return nil
}

// ServeStdio serves s over stdin/stdout until stdin closes.
func ServeStdio(s *server.MCPServer) error {
	log.Printf("[MCP] server running on stdio")
	return server.ServeStdio(s)
}
