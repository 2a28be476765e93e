package agent

import (
	"context"
	"errors"
	"time"

	"github.com/almanacai/almanac/internal/models"
	"github.com/almanacai/almanac/internal/security"
	"github.com/almanacai/almanac/internal/service"
	"github.com/almanacai/almanac/internal/tools"
	"github.com/rs/zerolog/log"
)

const baseSystemPrompt = `You are Almanac, a helpful assistant that answers questions using a small set of lookup tools.

RULES:
1. For weather questions, first resolve the city with get_coordinates_from_city, then call get_current_weather with the returned coordinates
2. For factual or encyclopedic questions, use search_wikipedia
3. For arithmetic, use calculate rather than computing yourself
4. If a tool returns an {"error": ...} payload, do not retry the same call; explain the failure to the user and name what was asked for
5. Answer in plain language and include the concrete numbers the tools returned`

var intentEmphasis = map[service.Intent]string{
	service.IntentWeather:   "\n\nThe question looks weather-related. Remember to geocode the city before fetching conditions.",
	service.IntentKnowledge: "\n\nThe question looks encyclopedic. Prefer search_wikipedia over answering from memory.",
	service.IntentMath:      "\n\nThe question looks arithmetic. Use the calculate tool for the numeric part.",
}

// QueryHandler orchestrates one agent run: validation, intent routing,
// the tool loop itself and the audit record.
type QueryHandler struct {
	agent       *AlmanacAgent
	toolSet     []tools.Tool
	router      *service.IntentRouter
	validator   *security.QuestionValidator
	auditLogger *security.AuditLogger
}

func NewQueryHandler(
	agent *AlmanacAgent,
	toolSet []tools.Tool,
	router *service.IntentRouter,
	validator *security.QuestionValidator,
	auditLogger *security.AuditLogger,
) *QueryHandler {
	return &QueryHandler{
		agent:       agent,
		toolSet:     toolSet,
		router:      router,
		validator:   validator,
		auditLogger: auditLogger,
	}
}

// Tools returns the registered tool set.
func (h *QueryHandler) Tools() []tools.Tool {
	return h.toolSet
}

// Handle runs the agent for one question and assembles the API response.
func (h *QueryHandler) Handle(ctx context.Context, req *models.AskRequest, apiKey string) (*models.AskResponse, error) {
	if err := h.validator.Validate(req.Question); err != nil {
		return nil, err
	}

	routing := h.router.Route(req.Question)
	systemPrompt := baseSystemPrompt
	if extra, ok := intentEmphasis[routing.Intent]; ok {
		systemPrompt += extra
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(req.Timeout)*time.Second)
	defer cancel()

	var steps []models.AgentStep
	var onStep StepFunc
	if req.Trace {
		onStep = func(s Step) {
			steps = append(steps, models.AgentStep{
				Type:    string(s.Type),
				Round:   s.Round,
				Tool:    s.Tool,
				Args:    s.Args,
				Content: s.Content,
				IsError: s.IsError,
			})
		}
	}

	start := time.Now()
	answer, toolsUsed, rounds, err := h.agent.RunStream(runCtx, systemPrompt, req.Question, h.toolSet, onStep)
	elapsed := time.Since(start)

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	h.auditLogger.LogAgentRun(req.Question, apiKey, toolsUsed, rounds, elapsed.Milliseconds(), err == nil, errMsg)

	resp := &models.AskResponse{
		Status:    "success",
		Question:  req.Question,
		Answer:    answer,
		ToolsUsed: toolsUsed,
		Rounds:    rounds,
		Steps:     steps,
		Metadata: map[string]any{
			"intent":             string(routing.Intent),
			"routing_confidence": routing.Confidence,
			"routing_reasoning":  routing.Reasoning,
			"execution_time_ms":  elapsed.Milliseconds(),
		},
	}

	if err != nil {
		resp.Status = "error"
		var budget *BudgetExceededError
		if errors.As(err, &budget) {
			log.Warn().Int("rounds", budget.Rounds).Msg("agent run exceeded round budget")
		}
		return resp, err
	}

	log.Info().
		Str("intent", string(routing.Intent)).
		Strs("tools_used", toolsUsed).
		Int("rounds", rounds).
		Dur("elapsed", elapsed).
		Msg("agent run complete")

	return resp, nil
}
