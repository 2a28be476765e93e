package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/almanacai/almanac/internal/tools"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// StepType identifies a transcript mutation surfaced through RunStream.
type StepType string

const (
	StepModelText   StepType = "model_text"
	StepToolRequest StepType = "tool_request"
	StepToolResult  StepType = "tool_result"
	StepFinalAnswer StepType = "final_answer"
)

// Step is one observed transcript mutation.
type Step struct {
	Type    StepType
	Round   int
	Tool    string
	Args    map[string]interface{}
	Content string
	IsError bool
}

// StepFunc receives each Step as it happens. Callbacks run synchronously
// on the loop goroutine, so transcript order is preserved.
type StepFunc func(Step)

// BudgetExceededError is returned when the model keeps requesting tools
// past the configured round budget.
type BudgetExceededError struct {
	Rounds int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("agent loop exceeded max rounds (%d)", e.Rounds)
}

// ToolCall represents a tool invocation request from the LLM
type ToolCall struct {
	ID    string
	Name  string
	Input map[string]interface{}
}

// AlmanacAgent wraps the Anthropic SDK for a multi-turn tool-calling loop.
// One Run owns one transcript; nothing persists across runs.
type AlmanacAgent struct {
	client      *anthropic.Client
	model       string
	maxTokens   int
	temperature float64
	maxRounds   int
}

// NewAlmanacAgent creates an agent backed by Anthropic Claude or a
// compatible provider behind baseURL.
func NewAlmanacAgent(apiKey, model, baseURL string, maxTokens int, temperature float64, maxRounds int) *AlmanacAgent {
	if model == "" {
		model = "claude-sonnet-4-6"
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	if maxRounds <= 0 {
		maxRounds = 10
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)
	return &AlmanacAgent{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		maxRounds:   maxRounds,
	}
}

// MaxRounds returns the configured round budget.
func (a *AlmanacAgent) MaxRounds() int { return a.maxRounds }

// Run executes the agent loop until the model answers without requesting
// tools. Returns (finalText, toolsUsed, rounds, error).
func (a *AlmanacAgent) Run(ctx context.Context, systemPrompt, question string, agentTools []tools.Tool) (string, []string, int, error) {
	return a.RunStream(ctx, systemPrompt, question, agentTools, nil)
}

// RunStream is Run with an observer: every transcript mutation (model text,
// tool request, tool result, final answer) is reported through onStep in
// the order it is appended. onStep may be nil.
func (a *AlmanacAgent) RunStream(ctx context.Context, systemPrompt, question string, agentTools []tools.Tool, onStep StepFunc) (string, []string, int, error) {
	emit := func(s Step) {
		if onStep != nil {
			onStep(s)
		}
	}

	anthToolParams := make([]anthropic.ToolUnionUnionParam, len(agentTools))
	for i, t := range agentTools {
		var propsRaw interface{}
		if props, ok := t.InputSchema["properties"]; ok {
			propsRaw = props
		}

		schema := map[string]interface{}{
			"type":       "object",
			"properties": propsRaw,
		}
		if required, ok := t.InputSchema["required"]; ok {
			schema["required"] = required
		}
		anthToolParams[i] = anthropic.ToolParam{
			Name:        anthropic.String(t.Name),
			Description: anthropic.String(t.Description),
			InputSchema: anthropic.F[interface{}](schema),
		}
	}

	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(question)),
	}

	var toolsUsed []string

	for round := 0; round < a.maxRounds; round++ {
		params := anthropic.MessageNewParams{
			Model:       anthropic.F(anthropic.Model(a.model)),
			MaxTokens:   anthropic.F(int64(a.maxTokens)),
			Temperature: anthropic.F(a.temperature),
			Messages:    anthropic.F(messages),
			Tools:       anthropic.F(anthToolParams),
		}
		if systemPrompt != "" {
			params.System = anthropic.F([]anthropic.TextBlockParam{
				anthropic.NewTextBlock(systemPrompt),
			})
		}

		resp, err := a.client.Messages.New(ctx, params)
		if err != nil {
			return "", toolsUsed, round, fmt.Errorf("LLM call failed: %w", err)
		}

		var textContent string
		var pendingToolCalls []ToolCall

		for _, block := range resp.Content {
			switch b := block.AsUnion().(type) {
			case anthropic.TextBlock:
				textContent += b.Text
			case anthropic.ToolUseBlock:
				var input map[string]interface{}
				if err := json.Unmarshal(b.Input, &input); err != nil {
					log.Warn().Err(err).Str("tool", b.Name).Msg("failed to parse tool input")
					input = map[string]interface{}{}
				}
				pendingToolCalls = append(pendingToolCalls, ToolCall{
					ID:    b.ID,
					Name:  b.Name,
					Input: input,
				})
			}
		}

		log.Debug().
			Int("round", round).
			Str("stop_reason", string(resp.StopReason)).
			Int("tool_calls", len(pendingToolCalls)).
			Msg("agent round")

		if textContent != "" {
			emit(Step{Type: StepModelText, Round: round, Content: textContent})
		}

		// Deciding -> terminal: the response carries no tool requests.
		isDone := resp.StopReason == "end_turn" ||
			resp.StopReason == "stop" ||
			resp.StopReason == "stop_sequence" ||
			resp.StopReason == "max_tokens" ||
			len(pendingToolCalls) == 0
		if isDone {
			emit(Step{Type: StepFinalAnswer, Round: round, Content: textContent})
			return textContent, toolsUsed, round + 1, nil
		}

		// Deciding -> Executing: append the model response, then run every
		// requested tool and append one result per request.
		messages = append(messages, resp.ToParam())

		for _, tc := range pendingToolCalls {
			toolsUsed = append(toolsUsed, tc.Name)
			emit(Step{Type: StepToolRequest, Round: round, Tool: tc.Name, Args: tc.Input})
		}

		results := a.executeAll(ctx, pendingToolCalls, agentTools)

		// Results go into the transcript in request order even though
		// sibling calls ran concurrently.
		var toolResults []anthropic.ContentBlockParamUnion
		for i, tc := range pendingToolCalls {
			res := results[i]
			emit(Step{Type: StepToolResult, Round: round, Tool: tc.Name, Content: res.content, IsError: res.isError})
			toolResults = append(toolResults, anthropic.NewToolResultBlock(tc.ID, res.content, res.isError))
		}

		// One round before the budget runs out, tell the model to wrap up.
		if round == a.maxRounds-2 {
			toolResults = append(toolResults, anthropic.NewTextBlock(
				"You have enough data. Please provide your final answer now without calling any more tools.",
			))
		}
		messages = append(messages, anthropic.NewUserMessage(toolResults...))
	}

	return "", toolsUsed, a.maxRounds, &BudgetExceededError{Rounds: a.maxRounds}
}

type toolExecResult struct {
	content string
	isError bool
}

// executeAll runs sibling tool calls concurrently. Tools catch their own
// upstream failures, so an error here means a broken contract (unknown
// tool, marshalling bug) and is reported as an error result block.
func (a *AlmanacAgent) executeAll(ctx context.Context, calls []ToolCall, agentTools []tools.Tool) []toolExecResult {
	results := make([]toolExecResult, len(calls))
	g, gctx := errgroup.WithContext(ctx)
	for i, tc := range calls {
		i, tc := i, tc
		g.Go(func() error {
			content, err := executeTool(gctx, tc, agentTools)
			if err != nil {
				log.Warn().Err(err).Str("tool", tc.Name).Msg("tool execution error")
				results[i] = toolExecResult{content: fmt.Sprintf("error: %v", err), isError: true}
				return nil
			}
			results[i] = toolExecResult{content: content}
			return nil
		})
	}
	g.Wait()
	return results
}

func executeTool(ctx context.Context, tc ToolCall, agentTools []tools.Tool) (string, error) {
	for _, t := range agentTools {
		if t.Name == tc.Name {
			return t.Execute(ctx, tc.Input)
		}
	}
	return "", fmt.Errorf("unknown tool: %s", tc.Name)
}
