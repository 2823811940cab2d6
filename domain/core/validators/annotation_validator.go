package validators

import (
	"fmt"
	"strings"

	"topocanvas/domain/config"
	"topocanvas/domain/core/entities"
	"topocanvas/pkg/errors"
)

// AnnotationValidator validates annotation-related domain rules: label
// and text lengths, geometry, member resolution, and the forest shape
// of the group hierarchy.
type AnnotationValidator struct {
	cfg *config.DomainConfig
}

// NewAnnotationValidator creates a validator bound to the domain limits
func NewAnnotationValidator(cfg *config.DomainConfig) *AnnotationValidator {
	return &AnnotationValidator{cfg: cfg}
}

// ValidateGroup validates a group's label, geometry and member count
func (v *AnnotationValidator) ValidateGroup(g entities.Group) error {
	if err := v.validateLabel(g.Label); err != nil {
		return err
	}
	if !g.Bounds().IsValid() {
		return errors.ErrInvalidGeometry(g.ID)
	}
	if g.Width < v.cfg.MinGroupWidth || g.Height < v.cfg.MinGroupHeight {
		return errors.NewValidationError(
			fmt.Sprintf("group extents below minimum %gx%g", v.cfg.MinGroupWidth, v.cfg.MinGroupHeight),
		).WithCode("GROUP_TOO_SMALL")
	}
	if len(g.Members) > v.cfg.MaxMembersPerGroup {
		return errors.NewValidationError(
			fmt.Sprintf("group cannot hold more than %d members", v.cfg.MaxMembersPerGroup),
		).WithCode("TOO_MANY_MEMBERS")
	}
	return nil
}

// ValidateText validates a free text annotation
func (v *AnnotationValidator) ValidateText(t entities.FreeText) error {
	if strings.TrimSpace(t.Text) == "" && !v.cfg.AllowEmptyLabels {
		return errors.NewValidationError("text content is required").WithCode("TEXT_REQUIRED")
	}
	if len(t.Text) > v.cfg.MaxTextLength {
		return errors.NewValidationError(
			fmt.Sprintf("text exceeds maximum length of %d characters", v.cfg.MaxTextLength),
		).WithCode("TEXT_TOO_LONG")
	}
	if !t.Position.IsValid() {
		return errors.ErrInvalidGeometry(t.ID)
	}
	return nil
}

// ValidateShape validates a free shape annotation. Lines carry an end
// position; rectangles and circles carry extents.
func (v *AnnotationValidator) ValidateShape(s entities.FreeShape) error {
	if !s.Shape.Valid() {
		return errors.ErrUnknownKind(string(s.Shape))
	}
	if !s.Position.IsValid() {
		return errors.ErrInvalidGeometry(s.ID)
	}
	if s.Shape == entities.ShapeLine {
		if s.EndPosition == nil || !s.EndPosition.IsValid() {
			return errors.ErrInvalidGeometry(s.ID)
		}
		return nil
	}
	if s.Width < 0 || s.Height < 0 {
		return errors.ErrInvalidGeometry(s.ID)
	}
	return nil
}

// ValidateMembership checks that reparenting childID under newParentID
// keeps the group hierarchy a forest. An empty newParentID moves the
// child to the root and is always allowed.
func (v *AnnotationValidator) ValidateMembership(nodes []entities.Node, childID, newParentID string) error {
	if newParentID == "" {
		return nil
	}
	if !v.cfg.AllowNestedGroups {
		if n, ok := findNode(nodes, childID); ok && n.Kind == entities.KindGroup {
			return errors.NewValidationError("nested groups are disabled").WithCode("NESTING_DISABLED")
		}
	}

	byID := indexNodes(nodes)
	if _, ok := byID[newParentID]; !ok {
		return errors.ErrMemberNotFound(newParentID)
	}

	// Walk the parent chain from the proposed parent upward. Hitting
	// the child means the move would close a cycle.
	depth := 0
	for id := newParentID; id != ""; {
		if id == childID {
			return errors.ErrGroupCycle
		}
		depth++
		if depth > v.cfg.MaxGroupNesting {
			return errors.NewValidationError(
				fmt.Sprintf("group nesting exceeds maximum depth of %d", v.cfg.MaxGroupNesting),
			).WithCode("NESTING_TOO_DEEP")
		}
		n, ok := byID[id]
		if !ok {
			break
		}
		id = n.ParentID
	}

	return nil
}

// ValidateMembers checks that every member id of the group resolves to
// an existing node
func (v *AnnotationValidator) ValidateMembers(nodes []entities.Node, g entities.Group) error {
	byID := indexNodes(nodes)
	for _, id := range g.Members {
		if _, ok := byID[id]; !ok {
			return errors.ErrMemberNotFound(id)
		}
	}
	return nil
}

// ValidateForest checks the whole document: every parent reference
// resolves, every group member resolves, and no parent chain loops
// back on itself. Run after bulk loads and before persistence.
func (v *AnnotationValidator) ValidateForest(nodes []entities.Node) error {
	byID := indexNodes(nodes)

	for _, n := range nodes {
		if n.ParentID == "" {
			continue
		}
		if _, ok := byID[n.ParentID]; !ok {
			return errors.ErrMemberNotFound(n.ParentID)
		}

		seen := map[string]bool{n.ID: true}
		for id := n.ParentID; id != ""; {
			if seen[id] {
				return errors.ErrGroupCycle
			}
			seen[id] = true
			p, ok := byID[id]
			if !ok {
				break
			}
			id = p.ParentID
		}
	}

	for _, n := range nodes {
		if n.Kind != entities.KindGroup {
			continue
		}
		for _, id := range n.Members {
			if _, ok := byID[id]; !ok {
				return errors.ErrMemberNotFound(id)
			}
		}
	}

	return nil
}

func (v *AnnotationValidator) validateLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" && !v.cfg.AllowEmptyLabels {
		return errors.NewValidationError("label is required").WithCode("LABEL_REQUIRED")
	}
	if len(label) > v.cfg.MaxLabelLength {
		return errors.NewValidationError(
			fmt.Sprintf("label exceeds maximum length of %d characters", v.cfg.MaxLabelLength),
		).WithCode("LABEL_TOO_LONG")
	}
	return nil
}

func indexNodes(nodes []entities.Node) map[string]entities.Node {
	byID := make(map[string]entities.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	return byID
}

func findNode(nodes []entities.Node, id string) (entities.Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return entities.Node{}, false
}
