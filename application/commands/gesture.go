package commands

import (
	"errors"
)

// BeginGestureCommand stashes a snapshot at the start of a drag, resize
// or rotation gesture. Intermediate frames never touch history.
type BeginGestureCommand struct {
	GestureID string   `json:"gesture_id" validate:"required"`
	NodeIDs   []string `json:"node_ids" validate:"required,min=1"`
}

// Validate checks the command fields
func (c BeginGestureCommand) Validate() error {
	if c.GestureID == "" {
		return errors.New("gesture_id is required")
	}
	if len(c.NodeIDs) == 0 {
		return errors.New("node_ids is required")
	}
	return nil
}

// GestureFrameCommand applies one intermediate gesture frame directly
// to the store, bypassing history
type GestureFrameCommand struct {
	NodeID   string   `json:"node_id" validate:"required"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
}

// Validate checks the command fields
func (c GestureFrameCommand) Validate() error {
	if c.NodeID == "" {
		return errors.New("node_id is required")
	}
	return nil
}

// EndGestureCommand commits the stashed gesture snapshot against the
// live final state, producing a single undo entry
type EndGestureCommand struct {
	GestureID string `json:"gesture_id" validate:"required"`
	Label     string `json:"label" validate:"required,max=200"`
}

// Validate checks the command fields
func (c EndGestureCommand) Validate() error {
	if c.GestureID == "" {
		return errors.New("gesture_id is required")
	}
	if c.Label == "" {
		return errors.New("label is required")
	}
	return nil
}
