package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"topocanvas/application/history"
	"topocanvas/application/queries"
	querybus "topocanvas/application/queries/bus"
	"topocanvas/pkg/common"
)

// HistoryHandler exposes the undo/redo stacks over HTTP. Undo and redo
// talk to the manager directly: an empty stack is not an error, the
// response just reports that nothing was applied.
type HistoryHandler struct {
	history  *history.Manager
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(hist *history.Manager, queryBus *querybus.QueryBus, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		history:  hist,
		queryBus: queryBus,
		logger:   logger,
	}
}

// List handles GET /history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractPaginationParams(r)
	result, err := h.queryBus.Ask(r.Context(), queries.GetHistoryQuery{
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		h.logger.Error("history query failed", zap.Error(err))
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// Undo handles POST /history/undo
func (h *HistoryHandler) Undo(w http.ResponseWriter, r *http.Request) {
	applied := h.history.Undo(r.Context())
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"applied":  applied,
		"can_undo": h.history.CanUndo(),
		"can_redo": h.history.CanRedo(),
	})
}

// Redo handles POST /history/redo
func (h *HistoryHandler) Redo(w http.ResponseWriter, r *http.Request) {
	applied := h.history.Redo(r.Context())
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"applied":  applied,
		"can_undo": h.history.CanUndo(),
		"can_redo": h.history.CanRedo(),
	})
}
