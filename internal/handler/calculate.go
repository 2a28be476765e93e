package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/almanacai/almanac/internal/calc"
	"github.com/almanacai/almanac/internal/models"
)

// CalculateHandler handles POST /api/v1/calculate
type CalculateHandler struct{}

func NewCalculateHandler() *CalculateHandler {
	return &CalculateHandler{}
}

// Calculate evaluates an arithmetic expression through the restricted grammar.
func (h *CalculateHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req models.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Expression == "" {
		models.WriteError(w, http.StatusBadRequest, "expression is required")
		return
	}

	result, err := calc.Evaluate(req.Expression)
	if err != nil {
		var symErr *calc.SymbolError
		if errors.As(err, &symErr) {
			models.WriteError(w, http.StatusBadRequest, "undefined symbol in expression: "+symErr.Symbol)
			return
		}
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	models.WriteJSON(w, http.StatusOK, models.CalculateResponse{
		Expression: req.Expression,
		Result:     calc.Format(result),
	})
}
