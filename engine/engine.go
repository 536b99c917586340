package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/mybambu/transfer-tools/core"
)

// DefaultModel is the Claude model used when none is configured.
const DefaultModel = "claude-sonnet-4-20250514"

// Engine is the agent runner that executes tools and manages Claude API interactions.
type Engine struct {
	client       *anthropic.Client
	registry     *ToolRegistry
	model        string
	maxTokens    int64
	maxTurns     int
	systemPrompt string
}

// Option configures the engine.
type Option func(*Engine)

// WithModel sets the Claude model.
func WithModel(model string) Option {
	return func(e *Engine) {
		if model != "" {
			e.model = model
		}
	}
}

// WithMaxTokens sets the response token limit per API call.
func WithMaxTokens(n int64) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// WithMaxTurns bounds the number of API calls in one run.
func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTurns = n
		}
	}
}

// WithSystemPrompt replaces DefaultSystemPrompt.
func WithSystemPrompt(prompt string) Option {
	return func(e *Engine) {
		if prompt != "" {
			e.systemPrompt = prompt
		}
	}
}

// NewEngine creates a new engine with the given Anthropic client and registry.
func NewEngine(client *anthropic.Client, registry *ToolRegistry, opts ...Option) *Engine {
	e := &Engine{
		client:       client,
		registry:     registry,
		model:        DefaultModel,
		maxTokens:    4096,
		maxTurns:     10,
		systemPrompt: DefaultSystemPrompt,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's tool registry.
func (e *Engine) Registry() *ToolRegistry {
	return e.registry
}

// Input represents the input to an agent run.
type Input struct {
	// UserMessage is the user's message to process.
	UserMessage string

	// UserID is forwarded to tools and audit entries.
	UserID string

	// History contains previous messages in the conversation.
	History []anthropic.MessageParam
}

// Output represents the output from an agent run.
type Output struct {
	// Text is the agent's final text response.
	Text string

	// ToolsUsed records all tools invoked during this run.
	ToolsUsed []core.ToolExecution

	// History is the conversation including this run, for the next Input.
	History []anthropic.MessageParam

	// TokensUsed tracks Claude API token consumption for this run.
	TokensUsed TokenUsage
}

// TokenUsage counts Claude API tokens.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Run executes the agent loop until Claude answers without calling a tool.
func (e *Engine) Run(ctx context.Context, input *Input) (*Output, error) {
	session := NewSession(input.UserID)
	session.RestoreHistory(input.History)
	if input.UserMessage != "" {
		session.AddUserMessage(input.UserMessage)
	}

	apiTools := e.registry.ToAPITools()
	var totalTokens TokenUsage
	var toolsUsed []core.ToolExecution

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("agent run cancelled: %w", err)
		}
		if session.TurnCount >= e.maxTurns {
			return nil, fmt.Errorf("exceeded maximum turns (%d)", e.maxTurns)
		}
		session.IncrementTurnCount()

		params := anthropic.MessageNewParams{
			Model:     anthropic.Model(e.model),
			MaxTokens: e.maxTokens,
			Messages:  session.Messages(),
			System: []anthropic.TextBlockParam{
				{Text: e.systemPrompt},
			},
		}
		if len(apiTools) > 0 {
			params.Tools = apiTools
		}

		resp, err := e.client.Messages.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("claude API error: %w", err)
		}
		totalTokens.InputTokens += int(resp.Usage.InputTokens)
		totalTokens.OutputTokens += int(resp.Usage.OutputTokens)

		var toolResults []anthropic.ContentBlockParamUnion
		var textResponse string

		for _, block := range resp.Content {
			switch block.Type {
			case "text":
				textResponse += block.Text

			case "tool_use":
				execution, result := e.runTool(ctx, session, block.Name, block.Input)
				toolsUsed = append(toolsUsed, execution)
				toolResults = append(toolResults, anthropic.NewToolResultBlock(
					block.ID, observation(result), !result.Success))
			}
		}

		session.AddAssistantResponse(resp)

		if len(toolResults) == 0 {
			return &Output{
				Text:       textResponse,
				ToolsUsed:  toolsUsed,
				History:    session.Messages(),
				TokensUsed: totalTokens,
			}, nil
		}

		session.AddToolResults(toolResults)
	}
}

// runTool dispatches one tool_use block through the registry.
func (e *Engine) runTool(ctx context.Context, session *Session, name string, input json.RawMessage) (core.ToolExecution, *core.ToolResult) {
	var base core.BaseInput
	if err := json.Unmarshal(input, &base); err != nil {
		log.Printf("[ENGINE] tool=%s: could not read thought: %v", name, err)
	}

	start := time.Now()
	result := e.registry.Dispatch(ctx, name, &core.ToolParams{
		UserID:    session.UserID,
		Input:     input,
		RequestID: session.ID,
	})
	execution := core.ToolExecution{
		Tool:       name,
		Input:      input,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if result.Success {
		execution.Result = result.Data
	} else {
		execution.Error = result.Error
	}

	log.Printf("[ENGINE] turn=%d tool=%s success=%t thought=%q",
		session.TurnCount, name, result.Success, strings.TrimSpace(base.Thought))
	return execution, result
}

// observation is the tool_result content Claude sees.
func observation(result *core.ToolResult) string {
	if !result.Success {
		return "Error: " + result.Error
	}
	return result.Text()
}

// DefaultSystemPrompt is the default system prompt for the agent.
const DefaultSystemPrompt = `You are MyBambu's money transfer assistant. You help people in the US send money to family and friends abroad.

GUIDELINES:
- Be conversational, warm and brief
- Use get_supported_countries when the user asks where they can send money
- Use get_exchange_rate to answer rate questions before a transfer
- Only call send_money once you know the amount in USD, the destination country and the recipient's full name
- If send_money asks for bank details, ask the user for exactly those fields, then call send_money again WITH bank_details
- Never invent bank details
- Relay amounts, fees and delivery estimates exactly as the tool reports them
- Say clearly when a transfer was simulated and no real money was sent

REASONING PATTERN:
When using tools, include a "thought" field explaining what you've verified and why you're taking this action.`
