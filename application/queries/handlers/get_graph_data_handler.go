package handlers

import (
	"context"

	"go.uber.org/zap"

	"topocanvas/application/ports"
	"topocanvas/application/queries"
	"topocanvas/domain/core/entities"
)

// GetGraphDataHandler returns the full document with summary stats
type GetGraphDataHandler struct {
	store  ports.GraphStore
	logger *zap.Logger
}

// NewGetGraphDataHandler creates the handler
func NewGetGraphDataHandler(store ports.GraphStore, logger *zap.Logger) *GetGraphDataHandler {
	return &GetGraphDataHandler{
		store:  store,
		logger: logger,
	}
}

// Handle executes the graph data query
func (h *GetGraphDataHandler) Handle(ctx context.Context, query queries.GetGraphDataQuery) (*queries.GetGraphDataResult, error) {
	nodes := h.store.GetNodes()
	edges := h.store.GetEdges()

	stats := queries.GraphStats{
		NodeCount: len(nodes),
		EdgeCount: len(edges),
	}
	for _, n := range nodes {
		switch n.Kind {
		case entities.KindGroup:
			stats.GroupCount++
			stats.AnnotationCount++
		case entities.KindText, entities.KindShape:
			stats.AnnotationCount++
		}
	}

	return &queries.GetGraphDataResult{
		Nodes: nodes,
		Edges: edges,
		Stats: stats,
	}, nil
}
