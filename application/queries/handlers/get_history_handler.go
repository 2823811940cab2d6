package handlers

import (
	"context"

	"go.uber.org/zap"

	"topocanvas/application/history"
	"topocanvas/application/queries"
	"topocanvas/pkg/common"
)

// GetHistoryHandler lists the undo/redo stacks. Pagination walks the
// undo stack from the most recent entry backwards; the redo stack is
// small and returned whole.
type GetHistoryHandler struct {
	history *history.Manager
	logger  *zap.Logger
}

// NewGetHistoryHandler creates the handler
func NewGetHistoryHandler(hist *history.Manager, logger *zap.Logger) *GetHistoryHandler {
	return &GetHistoryHandler{
		history: hist,
		logger:  logger,
	}
}

// Handle executes the history query
func (h *GetHistoryHandler) Handle(ctx context.Context, query queries.GetHistoryQuery) (*queries.GetHistoryResult, error) {
	undo := h.history.UndoEntries()
	redo := h.history.RedoEntries()

	result := &queries.GetHistoryResult{
		Undo:    undo,
		Redo:    redo,
		CanUndo: len(undo) > 0,
		CanRedo: len(redo) > 0,
	}

	if query.PageSize > 0 {
		page := query.Page
		if page < 1 {
			page = 1
		}
		// most recent first
		reversed := make([]history.ActionInfo, len(undo))
		for i, a := range undo {
			reversed[len(undo)-1-i] = a
		}
		start := (page - 1) * query.PageSize
		if start > len(reversed) {
			start = len(reversed)
		}
		end := start + query.PageSize
		if end > len(reversed) {
			end = len(reversed)
		}
		result.Undo = reversed[start:end]
		result.Pagination = common.BuildPaginationMeta(page, query.PageSize, len(undo))
	}

	return result, nil
}
