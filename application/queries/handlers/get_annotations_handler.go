package handlers

import (
	"context"

	"go.uber.org/zap"

	"topocanvas/application/ports"
	"topocanvas/application/queries"
	"topocanvas/domain/services"
)

// GetAnnotationsHandler projects the current node set into the typed
// annotation views
type GetAnnotationsHandler struct {
	store     ports.GraphStore
	projector services.AnnotationProjector
	logger    *zap.Logger
}

// NewGetAnnotationsHandler creates the handler
func NewGetAnnotationsHandler(store ports.GraphStore, projector services.AnnotationProjector, logger *zap.Logger) *GetAnnotationsHandler {
	return &GetAnnotationsHandler{
		store:     store,
		projector: projector,
		logger:    logger,
	}
}

// Handle executes the annotations query
func (h *GetAnnotationsHandler) Handle(ctx context.Context, query queries.GetAnnotationsQuery) (services.AnnotationSet, error) {
	return h.projector.Project(h.store.GetNodes()), nil
}
