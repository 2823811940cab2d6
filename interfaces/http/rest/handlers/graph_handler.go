package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"topocanvas/application/queries"
	querybus "topocanvas/application/queries/bus"
	"topocanvas/pkg/common"
)

// GraphHandler exposes the read side of the document
type GraphHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetGraphData handles GET /graph
func (h *GraphHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetGraphDataQuery{})
	if err != nil {
		h.logger.Error("graph data query failed", zap.Error(err))
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetAnnotations handles GET /annotations
func (h *GraphHandler) GetAnnotations(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetAnnotationsQuery{})
	if err != nil {
		h.logger.Error("annotations query failed", zap.Error(err))
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
