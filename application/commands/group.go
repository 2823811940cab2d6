package commands

import (
	"errors"
)

// AddGroupCommand creates a group annotation and adopts its members
type AddGroupCommand struct {
	GroupID  string   `json:"group_id" validate:"required"`
	Label    string   `json:"label" validate:"max=200"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width" validate:"gte=0"`
	Height   float64  `json:"height" validate:"gte=0"`
	ParentID string   `json:"parent_id,omitempty"`
	Members  []string `json:"members,omitempty" validate:"max=500"`
	Color    string   `json:"color,omitempty"`
}

// Validate checks the command fields
func (c AddGroupCommand) Validate() error {
	if c.GroupID == "" {
		return errors.New("group_id is required")
	}
	for _, m := range c.Members {
		if m == "" {
			return errors.New("member ids must be non-empty")
		}
		if m == c.GroupID {
			return errors.New("group cannot be its own member")
		}
	}
	return nil
}

// UpdateGroupCommand changes a group's label or style
type UpdateGroupCommand struct {
	GroupID string  `json:"group_id" validate:"required"`
	Label   *string `json:"label,omitempty"`
	Color   *string `json:"color,omitempty"`
}

// Validate checks the command fields
func (c UpdateGroupCommand) Validate() error {
	if c.GroupID == "" {
		return errors.New("group_id is required")
	}
	if c.Label == nil && c.Color == nil {
		return errors.New("nothing to update")
	}
	return nil
}

// UpdateGroupSizeCommand resizes a group
type UpdateGroupSizeCommand struct {
	GroupID string  `json:"group_id" validate:"required"`
	Width   float64 `json:"width" validate:"gt=0"`
	Height  float64 `json:"height" validate:"gt=0"`
}

// Validate checks the command fields
func (c UpdateGroupSizeCommand) Validate() error {
	if c.GroupID == "" {
		return errors.New("group_id is required")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("width and height must be positive")
	}
	return nil
}

// UpdateGroupPositionCommand moves a group
type UpdateGroupPositionCommand struct {
	GroupID string  `json:"group_id" validate:"required"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Validate checks the command fields
func (c UpdateGroupPositionCommand) Validate() error {
	if c.GroupID == "" {
		return errors.New("group_id is required")
	}
	return nil
}

// DeleteGroupCommand removes a group. Children are migrated to the
// group's former parent, never deleted with it.
type DeleteGroupCommand struct {
	GroupID string `json:"group_id" validate:"required"`
}

// Validate checks the command fields
func (c DeleteGroupCommand) Validate() error {
	if c.GroupID == "" {
		return errors.New("group_id is required")
	}
	return nil
}

// ChangeMembershipCommand reparents a node or annotation. An empty
// NewParentID moves it to the root.
type ChangeMembershipCommand struct {
	ChildID     string `json:"child_id" validate:"required"`
	NewParentID string `json:"new_parent_id,omitempty"`
}

// Validate checks the command fields
func (c ChangeMembershipCommand) Validate() error {
	if c.ChildID == "" {
		return errors.New("child_id is required")
	}
	if c.ChildID == c.NewParentID {
		return errors.New("child cannot be its own parent")
	}
	return nil
}
