package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/almanacai/almanac/internal/agent"
	"github.com/almanacai/almanac/internal/models"
)

// AskHandler handles POST /api/v1/ask
type AskHandler struct {
	query *agent.QueryHandler
}

func NewAskHandler(query *agent.QueryHandler) *AskHandler {
	return &AskHandler{query: query}
}

// Ask handles POST /api/v1/ask
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.SetDefaults()

	if req.Question == "" {
		models.WriteError(w, http.StatusBadRequest, "question is required")
		return
	}

	if h.query == nil {
		models.WriteError(w, http.StatusServiceUnavailable, "agent is not configured")
		return
	}

	apiKey := r.Header.Get("X-API-Key")

	resp, err := h.query.Handle(r.Context(), &req, apiKey)
	if err != nil {
		var budget *agent.BudgetExceededError
		switch {
		case errors.As(err, &budget):
			// The partial response still carries routing metadata and rounds.
			models.WriteJSON(w, http.StatusUnprocessableEntity, resp)
		case resp != nil:
			models.WriteJSON(w, http.StatusBadGateway, resp)
		default:
			models.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	models.WriteJSON(w, http.StatusOK, resp)
}
