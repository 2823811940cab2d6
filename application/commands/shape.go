package commands

import (
	"errors"
)

// AddShapeCommand creates a free shape annotation. Lines carry an end
// point; rectangles and circles carry extents.
type AddShapeCommand struct {
	ShapeID string   `json:"shape_id" validate:"required"`
	Shape   string   `json:"shape" validate:"required,oneof=rectangle circle line"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Width   float64  `json:"width,omitempty" validate:"gte=0"`
	Height  float64  `json:"height,omitempty" validate:"gte=0"`
	EndX    *float64 `json:"end_x,omitempty"`
	EndY    *float64 `json:"end_y,omitempty"`
	GroupID string   `json:"group_id,omitempty"`
	Color   string   `json:"color,omitempty"`
}

// Validate checks the command fields
func (c AddShapeCommand) Validate() error {
	if c.ShapeID == "" {
		return errors.New("shape_id is required")
	}
	switch c.Shape {
	case "rectangle", "circle":
		if c.EndX != nil || c.EndY != nil {
			return errors.New("end point is only valid for lines")
		}
	case "line":
		if c.EndX == nil || c.EndY == nil {
			return errors.New("lines require an end point")
		}
	default:
		return errors.New("shape must be rectangle, circle or line")
	}
	return nil
}

// UpdateShapeCommand changes a shape's geometry or style
type UpdateShapeCommand struct {
	ShapeID string   `json:"shape_id" validate:"required"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
	EndX    *float64 `json:"end_x,omitempty"`
	EndY    *float64 `json:"end_y,omitempty"`
	Color   *string  `json:"color,omitempty"`
}

// Validate checks the command fields
func (c UpdateShapeCommand) Validate() error {
	if c.ShapeID == "" {
		return errors.New("shape_id is required")
	}
	if c.X == nil && c.Y == nil && c.Width == nil && c.Height == nil &&
		c.EndX == nil && c.EndY == nil && c.Color == nil {
		return errors.New("nothing to update")
	}
	return nil
}

// DeleteShapeCommand removes a shape annotation
type DeleteShapeCommand struct {
	ShapeID string `json:"shape_id" validate:"required"`
}

// Validate checks the command fields
func (c DeleteShapeCommand) Validate() error {
	if c.ShapeID == "" {
		return errors.New("shape_id is required")
	}
	return nil
}
