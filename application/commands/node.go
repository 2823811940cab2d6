package commands

import (
	"errors"
)

// MoveNodeCommand moves any node or annotation to a new position as a
// single undoable action. With Reparent set, the node is also adopted
// by the deepest group containing the target point (drop-to-group).
type MoveNodeCommand struct {
	NodeID   string  `json:"node_id" validate:"required"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Reparent bool    `json:"reparent,omitempty"`
}

// Validate checks the command fields
func (c MoveNodeCommand) Validate() error {
	if c.NodeID == "" {
		return errors.New("node_id is required")
	}
	return nil
}
