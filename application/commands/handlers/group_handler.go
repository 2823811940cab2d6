package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"topocanvas/application/commands"
	"topocanvas/application/history"
	"topocanvas/application/ports"
	"topocanvas/domain/config"
	"topocanvas/domain/core/entities"
	"topocanvas/domain/core/validators"
	"topocanvas/domain/core/valueobjects"
	"topocanvas/domain/events"
	"topocanvas/domain/services"
	"topocanvas/pkg/errors"
	"topocanvas/pkg/extensions"
)

// MigrationFunc reassigns text and shape annotations orphaned by a
// group deletion to the group's former parent. It returns the migrated
// ids and records no history of its own; the deleting handler has
// already captured the children.
type MigrationFunc func(ctx context.Context, fromGroupID, toParentID string) []string

// GroupHandler is the mutation facade for group annotations. Every
// operation captures before state, mutates the store, and commits a
// single labeled undo action.
//
// The migration callback is injected in a separate wiring step after
// all facades exist, because the annotation facade that owns texts and
// shapes is constructed independently of this one.
type GroupHandler struct {
	store     ports.GraphStore
	history   *history.Manager
	projector services.AnnotationProjector
	resolver  services.MembershipResolver
	validator *validators.AnnotationValidator
	hooks     *extensions.HookManager
	cfg       *config.DomainConfig
	logger    *zap.Logger

	migrate MigrationFunc
}

// NewGroupHandler creates the facade with no cross-facade references
func NewGroupHandler(
	store ports.GraphStore,
	hist *history.Manager,
	projector services.AnnotationProjector,
	resolver services.MembershipResolver,
	validator *validators.AnnotationValidator,
	hooks *extensions.HookManager,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *GroupHandler {
	return &GroupHandler{
		store:     store,
		history:   hist,
		projector: projector,
		resolver:  resolver,
		validator: validator,
		hooks:     hooks,
		cfg:       cfg,
		logger:    logger,
	}
}

// LinkMigration injects the orphan-migration callback. Must be called
// before the first DeleteGroup; the wiring layer does this right after
// construction.
func (h *GroupHandler) LinkMigration(fn MigrationFunc) {
	h.migrate = fn
}

// AddGroup inserts a group record and adopts its members as one
// undoable action. When no parent is given the group auto-nests inside
// the smallest existing group that fully contains its bounds.
func (h *GroupHandler) AddGroup(ctx context.Context, cmd commands.AddGroupCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	if _, exists := h.store.GetNode(cmd.GroupID); exists {
		return errors.ErrAnnotationExists(cmd.GroupID)
	}

	pos, err := valueobjects.NewPosition(cmd.X, cmd.Y)
	if err != nil {
		return err
	}

	width, height := cmd.Width, cmd.Height
	if width == 0 {
		width = h.cfg.DefaultWidth
	}
	if height == 0 {
		height = h.cfg.DefaultHeight
	}

	group := entities.Group{
		ID:       cmd.GroupID,
		Label:    cmd.Label,
		Position: pos,
		Width:    width,
		Height:   height,
		ParentID: cmd.ParentID,
		Members:  append([]string(nil), cmd.Members...),
		Style:    entities.Style{Color: cmd.Color},
	}
	if err := h.validator.ValidateGroup(group); err != nil {
		return err
	}

	nodes := h.store.GetNodes()
	for _, m := range group.Members {
		if _, ok := h.store.GetNode(m); !ok {
			return errors.ErrMemberNotFound(m)
		}
	}

	if group.ParentID == "" {
		if parent := h.resolver.ParentGroupForBounds(group.Bounds(), h.projector.Groups(nodes), group.ID); parent != nil {
			group.ParentID = parent.ID
			group.Level = parent.Level + 1
		}
	}
	if err := h.validator.ValidateMembership(nodes, group.ID, group.ParentID); err != nil {
		return err
	}

	captureIDs := append([]string{group.ID}, group.Members...)
	if group.ParentID != "" {
		captureIDs = append(captureIDs, group.ParentID)
	}
	snap := h.history.Capture(captureIDs...)

	if err := h.hooks.Execute(ctx, extensions.HookBeforeMutation, cmd); err != nil {
		h.logger.Warn("before-mutation hook failed", zap.Error(err))
	}

	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		for i := range nodes {
			for _, m := range group.Members {
				if nodes[i].ID == m {
					nodes[i].ParentID = group.ID
				}
			}
			if group.ParentID != "" && nodes[i].ID == group.ParentID {
				nodes[i].Members = appendMember(nodes[i].Members, group.ID)
			}
		}
		return upsertNode(nodes, group.ToNode())
	})

	h.history.Commit(ctx, snap, fmt.Sprintf("Add group %s", displayName(group.Label, group.ID)))
	return nil
}

// UpdateGroup changes the group's label or color
func (h *GroupHandler) UpdateGroup(ctx context.Context, cmd commands.UpdateGroupCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	node, ok := h.store.GetNode(cmd.GroupID)
	if !ok || node.Kind != entities.KindGroup {
		return errors.NewNotFoundError("group " + cmd.GroupID)
	}

	if cmd.Label != nil {
		node.Label = *cmd.Label
	}
	if cmd.Color != nil {
		node.Style.Color = *cmd.Color
	}
	group, _ := entities.GroupFromNode(node)
	if err := h.validator.ValidateGroup(group); err != nil {
		return err
	}

	snap := h.history.Capture(cmd.GroupID)
	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		return upsertNode(nodes, node)
	})
	h.history.Commit(ctx, snap, fmt.Sprintf("Update group %s", displayName(node.Label, node.ID)))
	return nil
}

// UpdateGroupSize resizes the group as a single undoable action
func (h *GroupHandler) UpdateGroupSize(ctx context.Context, cmd commands.UpdateGroupSizeCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	node, ok := h.store.GetNode(cmd.GroupID)
	if !ok || node.Kind != entities.KindGroup {
		return errors.NewNotFoundError("group " + cmd.GroupID)
	}

	node.Width = cmd.Width
	node.Height = cmd.Height
	group, _ := entities.GroupFromNode(node)
	if err := h.validator.ValidateGroup(group); err != nil {
		return err
	}

	snap := h.history.Capture(cmd.GroupID)
	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		return upsertNode(nodes, node)
	})
	h.history.Commit(ctx, snap, fmt.Sprintf("Resize group %s", displayName(node.Label, node.ID)))
	return nil
}

// UpdateGroupPosition moves the group as a single undoable action
func (h *GroupHandler) UpdateGroupPosition(ctx context.Context, cmd commands.UpdateGroupPositionCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	node, ok := h.store.GetNode(cmd.GroupID)
	if !ok || node.Kind != entities.KindGroup {
		return errors.NewNotFoundError("group " + cmd.GroupID)
	}

	pos, err := valueobjects.NewPosition(cmd.X, cmd.Y)
	if err != nil {
		return err
	}
	node.Position = pos

	snap := h.history.Capture(cmd.GroupID)
	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		return upsertNode(nodes, node)
	})
	h.history.Commit(ctx, snap, fmt.Sprintf("Move group %s", displayName(node.Label, node.ID)))
	return nil
}

// DeleteGroup removes the group and migrates every child to the
// group's former parent (or the root when it had none) in one commit.
// Children are never deleted with their group.
func (h *GroupHandler) DeleteGroup(ctx context.Context, cmd commands.DeleteGroupCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	node, ok := h.store.GetNode(cmd.GroupID)
	if !ok || node.Kind != entities.KindGroup {
		return errors.NewNotFoundError("group " + cmd.GroupID)
	}
	formerParent := node.ParentID

	var childIDs []string
	for _, n := range h.store.GetNodes() {
		if n.ParentID == cmd.GroupID {
			childIDs = append(childIDs, n.ID)
		}
	}

	captureIDs := append([]string{cmd.GroupID}, childIDs...)
	if formerParent != "" {
		captureIDs = append(captureIDs, formerParent)
	}
	snap := h.history.Capture(captureIDs...)

	if err := h.hooks.Execute(ctx, extensions.HookBeforeMutation, cmd); err != nil {
		h.logger.Warn("before-mutation hook failed", zap.Error(err))
	}

	// Remove the record and reparent topology and group children; text
	// and shape children belong to the annotation facade and move via
	// the linked callback below.
	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		nodes = removeNode(nodes, cmd.GroupID)
		for i := range nodes {
			if nodes[i].ID == formerParent {
				nodes[i].Members = removeMember(nodes[i].Members, cmd.GroupID)
				for _, child := range childIDs {
					nodes[i].Members = appendMember(nodes[i].Members, child)
				}
			}
			if nodes[i].ParentID != cmd.GroupID {
				continue
			}
			if nodes[i].Kind == entities.KindTopology || nodes[i].Kind == entities.KindGroup {
				nodes[i].ParentID = formerParent
			}
		}
		return nodes
	})

	var migrated []string
	if h.migrate != nil {
		migrated = h.migrate(ctx, cmd.GroupID, formerParent)
	}

	h.history.Commit(ctx, snap, fmt.Sprintf("Delete group %s", displayName(node.Label, node.ID)))

	event := events.NewGroupDeleted(cmd.GroupID, formerParent, childIDs, time.Now())
	if err := h.hooks.Execute(ctx, extensions.HookAfterGroupDelete, event); err != nil {
		h.logger.Warn("after-group-delete hook failed", zap.Error(err))
	}
	if len(migrated) > 0 {
		if err := h.hooks.Execute(ctx, extensions.HookAfterMigration, event); err != nil {
			h.logger.Warn("after-migration hook failed", zap.Error(err))
		}
	}

	h.logger.Info("group deleted",
		zap.String("group_id", cmd.GroupID),
		zap.String("migrated_to", formerParent),
		zap.Int("children", len(childIDs)))
	return nil
}

// ChangeMembership reparents a node or annotation, keeping the member
// lists of the affected groups in sync
func (h *GroupHandler) ChangeMembership(ctx context.Context, cmd commands.ChangeMembershipCommand) error {
	if h.history.Applying() {
		return errors.ErrReplayInProgress
	}
	child, ok := h.store.GetNode(cmd.ChildID)
	if !ok {
		return errors.NewNotFoundError("node " + cmd.ChildID)
	}
	oldParent := child.ParentID
	if oldParent == cmd.NewParentID {
		return nil
	}

	nodes := h.store.GetNodes()
	if err := h.validator.ValidateMembership(nodes, cmd.ChildID, cmd.NewParentID); err != nil {
		return err
	}

	captureIDs := []string{cmd.ChildID}
	if oldParent != "" {
		captureIDs = append(captureIDs, oldParent)
	}
	if cmd.NewParentID != "" {
		captureIDs = append(captureIDs, cmd.NewParentID)
	}
	snap := h.history.Capture(captureIDs...)

	h.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		for i := range nodes {
			switch nodes[i].ID {
			case cmd.ChildID:
				nodes[i].ParentID = cmd.NewParentID
			case oldParent:
				nodes[i].Members = removeMember(nodes[i].Members, cmd.ChildID)
			case cmd.NewParentID:
				nodes[i].Members = appendMember(nodes[i].Members, cmd.ChildID)
			}
		}
		return nodes
	})

	h.history.Commit(ctx, snap, fmt.Sprintf("Change membership of %s", displayName(child.Label, child.ID)))

	if err := h.hooks.Execute(ctx, extensions.HookAfterMigration, events.NewMembershipChanged(cmd.ChildID, oldParent, cmd.NewParentID, time.Now())); err != nil {
		h.logger.Warn("membership hook failed", zap.Error(err))
	}
	return nil
}
