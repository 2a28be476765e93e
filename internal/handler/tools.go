package handler

import (
	"net/http"

	"github.com/almanacai/almanac/internal/models"
	"github.com/almanacai/almanac/internal/tools"
)

// ToolsHandler handles GET /api/v1/tools
type ToolsHandler struct {
	toolSet []tools.Tool
}

func NewToolsHandler(toolSet []tools.Tool) *ToolsHandler {
	return &ToolsHandler{toolSet: toolSet}
}

// List returns the registered tool descriptors, the same contract the
// model sees.
func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	infos := make([]models.ToolInfo, 0, len(h.toolSet))
	for _, t := range h.toolSet {
		infos = append(infos, models.ToolInfo{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	models.WriteJSON(w, http.StatusOK, map[string]any{
		"tools": infos,
		"count": len(infos),
	})
}
