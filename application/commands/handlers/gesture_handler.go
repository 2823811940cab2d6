package handlers

import (
	"context"

	"go.uber.org/zap"

	"topocanvas/application/commands"
	"topocanvas/application/history"
	"topocanvas/application/ports"
	"topocanvas/domain/core/entities"
	"topocanvas/pkg/errors"
)

// GestureHandler drives start/end edits such as drags, resizes and
// rotations. Begin stashes a snapshot, frames mutate the store
// directly, and only End commits, so the whole gesture is one undo
// entry. A gesture abandoned without End never commits; its stash is
// overwritten by the next Begin.
type GestureHandler struct {
	store   ports.GraphStore
	history *history.Manager
	logger  *zap.Logger
}

// NewGestureHandler creates the facade
func NewGestureHandler(store ports.GraphStore, hist *history.Manager, logger *zap.Logger) *GestureHandler {
	return &GestureHandler{
		store:   store,
		history: hist,
		logger:  logger,
	}
}

// BeginGesture captures and stashes before state for the gesture
func (h *GestureHandler) BeginGesture(ctx context.Context, cmd commands.BeginGestureCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	h.history.BeginGesture(cmd.GestureID, cmd.NodeIDs...)
	h.logger.Debug("gesture started",
		zap.String("gesture_id", cmd.GestureID),
		zap.Int("nodes", len(cmd.NodeIDs)))
	return nil
}

// ApplyFrame applies one intermediate frame straight to the store.
// Frames are high-frequency and must not each produce an undo entry.
func (h *GestureHandler) ApplyFrame(ctx context.Context, cmd commands.GestureFrameCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	if _, ok := h.store.GetNode(cmd.NodeID); !ok {
		return errors.NewNotFoundError("node " + cmd.NodeID)
	}

	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		for i := range nodes {
			if nodes[i].ID != cmd.NodeID {
				continue
			}
			if cmd.X != nil {
				nodes[i].Position.X = *cmd.X
			}
			if cmd.Y != nil {
				nodes[i].Position.Y = *cmd.Y
			}
			if cmd.Width != nil {
				nodes[i].Width = *cmd.Width
			}
			if cmd.Height != nil {
				nodes[i].Height = *cmd.Height
			}
			if cmd.Rotation != nil {
				nodes[i].Style.Rotation = *cmd.Rotation
			}
		}
		return nodes
	})
	return nil
}

// EndGesture commits the stashed snapshot against the live final state
func (h *GestureHandler) EndGesture(ctx context.Context, cmd commands.EndGestureCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	if !h.history.EndGesture(ctx, cmd.GestureID, cmd.Label) {
		// begin never ran or the stash was overwritten; nothing to commit
		h.logger.Debug("gesture end without stash", zap.String("gesture_id", cmd.GestureID))
	}
	return nil
}
