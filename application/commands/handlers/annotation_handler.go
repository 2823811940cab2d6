package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"topocanvas/application/commands"
	"topocanvas/application/history"
	"topocanvas/application/ports"
	"topocanvas/domain/core/entities"
	"topocanvas/domain/core/validators"
	"topocanvas/domain/core/valueobjects"
	"topocanvas/domain/events"
	"topocanvas/domain/services"
	"topocanvas/pkg/errors"
	"topocanvas/pkg/extensions"
)

// AnnotationHandler is the mutation facade for free text and free
// shape annotations. It also owns orphan migration: when a group is
// deleted, the group facade calls MigrateOrphans through a callback
// injected in the wiring step.
type AnnotationHandler struct {
	store     ports.GraphStore
	history   *history.Manager
	projector services.AnnotationProjector
	resolver  services.MembershipResolver
	validator *validators.AnnotationValidator
	hooks     *extensions.HookManager
	logger    *zap.Logger
}

// NewAnnotationHandler creates the facade
func NewAnnotationHandler(
	store ports.GraphStore,
	hist *history.Manager,
	projector services.AnnotationProjector,
	resolver services.MembershipResolver,
	validator *validators.AnnotationValidator,
	hooks *extensions.HookManager,
	logger *zap.Logger,
) *AnnotationHandler {
	return &AnnotationHandler{
		store:     store,
		history:   hist,
		projector: projector,
		resolver:  resolver,
		validator: validator,
		hooks:     hooks,
		logger:    logger,
	}
}

// MigrateOrphans reassigns text and shape annotations parented to
// fromGroupID onto toParentID. It records no history: during a normal
// group delete the caller has already captured the children, and
// during undo/redo replay the snapshot itself restores them, so the
// whole call is skipped.
func (h *AnnotationHandler) MigrateOrphans(ctx context.Context, fromGroupID, toParentID string) []string {
	if h.history.Applying() {
		return nil
	}

	var migrated []string
	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		for i := range nodes {
			if nodes[i].ParentID != fromGroupID {
				continue
			}
			if nodes[i].Kind != entities.KindText && nodes[i].Kind != entities.KindShape {
				continue
			}
			nodes[i].ParentID = toParentID
			migrated = append(migrated, nodes[i].ID)
		}
		return nodes
	})

	if len(migrated) > 0 {
		h.logger.Debug("annotations migrated",
			zap.String("from", fromGroupID),
			zap.String("to", toParentID),
			zap.Int("count", len(migrated)))
	}
	return migrated
}

// AddText inserts a free text annotation. Without an explicit group it
// lands in the deepest group containing its position.
func (h *AnnotationHandler) AddText(ctx context.Context, cmd commands.AddTextCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	if _, exists := h.store.GetNode(cmd.TextID); exists {
		return errors.ErrAnnotationExists(cmd.TextID)
	}

	pos, err := valueobjects.NewPosition(cmd.X, cmd.Y)
	if err != nil {
		return err
	}

	text := entities.FreeText{
		ID:       cmd.TextID,
		Text:     cmd.Text,
		Position: pos,
		FontSize: cmd.FontSize,
		Color:    cmd.Color,
		GroupID:  cmd.GroupID,
	}
	if err := h.validator.ValidateText(text); err != nil {
		return err
	}

	nodes := h.store.GetNodes()
	if text.GroupID == "" {
		if g := h.resolver.DeepestGroupAt(pos, h.projector.Groups(nodes)); g != nil {
			text.GroupID = g.ID
		}
	} else if _, ok := h.store.GetNode(text.GroupID); !ok {
		return errors.ErrMemberNotFound(text.GroupID)
	}

	captureIDs := []string{text.ID}
	if text.GroupID != "" {
		captureIDs = append(captureIDs, text.GroupID)
	}
	snap := h.history.Capture(captureIDs...)

	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		if text.GroupID != "" {
			for i := range nodes {
				if nodes[i].ID == text.GroupID {
					nodes[i].Members = appendMember(nodes[i].Members, text.ID)
				}
			}
		}
		return upsertNode(nodes, text.ToNode())
	})

	h.history.Commit(ctx, snap, "Add text")
	h.executeHook(ctx, extensions.HookAfterCommit, events.NewAnnotationCreated(text.ID, string(entities.KindText), time.Now()))
	return nil
}

// UpdateText changes a text annotation's content or style
func (h *AnnotationHandler) UpdateText(ctx context.Context, cmd commands.UpdateTextCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	node, ok := h.store.GetNode(cmd.TextID)
	if !ok || node.Kind != entities.KindText {
		return errors.NewNotFoundError("text " + cmd.TextID)
	}

	if cmd.Text != nil {
		node.Text = *cmd.Text
	}
	if cmd.FontSize != nil {
		node.Style.FontSize = *cmd.FontSize
	}
	if cmd.Color != nil {
		node.Style.Color = *cmd.Color
	}
	text, _ := entities.FreeTextFromNode(node)
	if err := h.validator.ValidateText(text); err != nil {
		return err
	}

	snap := h.history.Capture(cmd.TextID)
	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		return upsertNode(nodes, node)
	})
	h.history.Commit(ctx, snap, "Update text")
	return nil
}

// DeleteText removes a text annotation
func (h *AnnotationHandler) DeleteText(ctx context.Context, cmd commands.DeleteTextCommand) error {
	return h.deleteAnnotation(ctx, cmd.TextID, entities.KindText, "Delete text")
}

// AddShape inserts a free shape annotation
func (h *AnnotationHandler) AddShape(ctx context.Context, cmd commands.AddShapeCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	if _, exists := h.store.GetNode(cmd.ShapeID); exists {
		return errors.ErrAnnotationExists(cmd.ShapeID)
	}

	pos, err := valueobjects.NewPosition(cmd.X, cmd.Y)
	if err != nil {
		return err
	}

	shape := entities.FreeShape{
		ID:       cmd.ShapeID,
		Shape:    entities.ShapeKind(cmd.Shape),
		Position: pos,
		Width:    cmd.Width,
		Height:   cmd.Height,
		GroupID:  cmd.GroupID,
		Style:    entities.Style{Color: cmd.Color},
	}
	if cmd.EndX != nil && cmd.EndY != nil {
		end, err := valueobjects.NewPosition(*cmd.EndX, *cmd.EndY)
		if err != nil {
			return err
		}
		shape.EndPosition = &end
	}
	if err := h.validator.ValidateShape(shape); err != nil {
		return err
	}

	nodes := h.store.GetNodes()
	if shape.GroupID == "" {
		if g := h.resolver.DeepestGroupAt(pos, h.projector.Groups(nodes)); g != nil {
			shape.GroupID = g.ID
		}
	} else if _, ok := h.store.GetNode(shape.GroupID); !ok {
		return errors.ErrMemberNotFound(shape.GroupID)
	}

	captureIDs := []string{shape.ID}
	if shape.GroupID != "" {
		captureIDs = append(captureIDs, shape.GroupID)
	}
	snap := h.history.Capture(captureIDs...)

	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		if shape.GroupID != "" {
			for i := range nodes {
				if nodes[i].ID == shape.GroupID {
					nodes[i].Members = appendMember(nodes[i].Members, shape.ID)
				}
			}
		}
		return upsertNode(nodes, shape.ToNode())
	})

	h.history.Commit(ctx, snap, fmt.Sprintf("Add %s", cmd.Shape))
	h.executeHook(ctx, extensions.HookAfterCommit, events.NewAnnotationCreated(shape.ID, string(entities.KindShape), time.Now()))
	return nil
}

// UpdateShape changes a shape's geometry or style
func (h *AnnotationHandler) UpdateShape(ctx context.Context, cmd commands.UpdateShapeCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	node, ok := h.store.GetNode(cmd.ShapeID)
	if !ok || node.Kind != entities.KindShape {
		return errors.NewNotFoundError("shape " + cmd.ShapeID)
	}

	if cmd.X != nil || cmd.Y != nil {
		x, y := node.Position.X, node.Position.Y
		if cmd.X != nil {
			x = *cmd.X
		}
		if cmd.Y != nil {
			y = *cmd.Y
		}
		pos, err := valueobjects.NewPosition(x, y)
		if err != nil {
			return err
		}
		node.Position = pos
	}
	if cmd.Width != nil {
		node.Width = *cmd.Width
	}
	if cmd.Height != nil {
		node.Height = *cmd.Height
	}
	if cmd.EndX != nil || cmd.EndY != nil {
		if node.EndPosition == nil {
			node.EndPosition = &valueobjects.Position{}
		}
		if cmd.EndX != nil {
			node.EndPosition.X = *cmd.EndX
		}
		if cmd.EndY != nil {
			node.EndPosition.Y = *cmd.EndY
		}
	}
	if cmd.Color != nil {
		node.Style.Color = *cmd.Color
	}
	shape, _ := entities.FreeShapeFromNode(node)
	if err := h.validator.ValidateShape(shape); err != nil {
		return err
	}

	snap := h.history.Capture(cmd.ShapeID)
	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		return upsertNode(nodes, node)
	})
	h.history.Commit(ctx, snap, fmt.Sprintf("Update %s", node.Shape))
	return nil
}

// DeleteShape removes a shape annotation
func (h *AnnotationHandler) DeleteShape(ctx context.Context, cmd commands.DeleteShapeCommand) error {
	return h.deleteAnnotation(ctx, cmd.ShapeID, entities.KindShape, "Delete shape")
}

func (h *AnnotationHandler) deleteAnnotation(ctx context.Context, id string, kind entities.NodeKind, label string) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	node, ok := h.store.GetNode(id)
	if !ok || node.Kind != kind {
		return errors.NewNotFoundError(string(kind) + " " + id)
	}

	captureIDs := []string{id}
	if node.ParentID != "" {
		captureIDs = append(captureIDs, node.ParentID)
	}
	snap := h.history.Capture(captureIDs...)

	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		nodes = removeNode(nodes, id)
		for i := range nodes {
			if nodes[i].ID == node.ParentID {
				nodes[i].Members = removeMember(nodes[i].Members, id)
			}
		}
		return nodes
	})

	h.history.Commit(ctx, snap, label)
	h.executeHook(ctx, extensions.HookAfterCommit, events.NewAnnotationDeleted(id, string(kind), time.Now()))
	return nil
}

func (h *AnnotationHandler) executeHook(ctx context.Context, point extensions.HookPoint, data interface{}) {
	if err := h.hooks.Execute(ctx, point, data); err != nil {
		h.logger.Warn("hook failed", zap.String("point", string(point)), zap.Error(err))
	}
}
