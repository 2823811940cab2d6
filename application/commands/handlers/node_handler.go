package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"topocanvas/application/commands"
	"topocanvas/application/history"
	"topocanvas/application/ports"
	"topocanvas/domain/core/entities"
	"topocanvas/domain/core/validators"
	"topocanvas/domain/core/valueobjects"
	"topocanvas/domain/services"
	"topocanvas/pkg/errors"
)

// NodeHandler is the mutation facade for moves of any record kind,
// including drop-to-group reparenting on release.
type NodeHandler struct {
	store     ports.GraphStore
	history   *history.Manager
	projector services.AnnotationProjector
	resolver  services.MembershipResolver
	validator *validators.AnnotationValidator
	logger    *zap.Logger
}

// NewNodeHandler creates the facade
func NewNodeHandler(
	store ports.GraphStore,
	hist *history.Manager,
	projector services.AnnotationProjector,
	resolver services.MembershipResolver,
	validator *validators.AnnotationValidator,
	logger *zap.Logger,
) *NodeHandler {
	return &NodeHandler{
		store:     store,
		history:   hist,
		projector: projector,
		resolver:  resolver,
		validator: validator,
		logger:    logger,
	}
}

// MoveNode moves a record to a new position as one undoable action.
// With Reparent set, the record is adopted by the deepest group
// containing the target point; no containing group means root.
func (h *NodeHandler) MoveNode(ctx context.Context, cmd commands.MoveNodeCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	node, ok := h.store.GetNode(cmd.NodeID)
	if !ok {
		return errors.NewNotFoundError("node " + cmd.NodeID)
	}

	pos, err := valueobjects.NewPosition(cmd.X, cmd.Y)
	if err != nil {
		return err
	}

	oldParent := node.ParentID
	newParent := oldParent
	if cmd.Reparent {
		groups := h.projector.Groups(h.store.GetNodes())
		if node.Kind == entities.KindGroup {
			groups = excludeGroup(groups, node.ID)
		}
		newParent = ""
		if g := h.resolver.DeepestGroupAt(pos, groups); g != nil {
			newParent = g.ID
		}
		if err := h.validator.ValidateMembership(h.store.GetNodes(), cmd.NodeID, newParent); err != nil {
			return err
		}
	}

	captureIDs := []string{cmd.NodeID}
	if oldParent != "" && oldParent != newParent {
		captureIDs = append(captureIDs, oldParent)
	}
	if newParent != "" && newParent != oldParent {
		captureIDs = append(captureIDs, newParent)
	}
	snap := h.history.Capture(captureIDs...)

	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		for i := range nodes {
			switch nodes[i].ID {
			case cmd.NodeID:
				nodes[i].Position = pos
				nodes[i].ParentID = newParent
			case oldParent:
				if oldParent != newParent {
					nodes[i].Members = removeMember(nodes[i].Members, cmd.NodeID)
				}
			case newParent:
				if oldParent != newParent {
					nodes[i].Members = appendMember(nodes[i].Members, cmd.NodeID)
				}
			}
		}
		return nodes
	})

	h.history.Commit(ctx, snap, fmt.Sprintf("Move %s", displayName(node.Label, node.ID)))

	if oldParent != newParent {
		h.logger.Debug("node reparented",
			zap.String("node_id", cmd.NodeID),
			zap.String("from", oldParent),
			zap.String("to", newParent))
	}
	return nil
}

func excludeGroup(groups []entities.Group, id string) []entities.Group {
	out := groups[:0]
	for _, g := range groups {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return out
}
