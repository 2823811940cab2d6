package entities

import (
	"topocanvas/domain/core/valueobjects"
)

// ShapeKind enumerates the supported free shape geometries
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapeLine      ShapeKind = "line"
)

// Valid reports whether the shape kind is supported
func (k ShapeKind) Valid() bool {
	switch k {
	case ShapeRectangle, ShapeCircle, ShapeLine:
		return true
	default:
		return false
	}
}

// FreeShape is the typed view of a free shape annotation record.
// Rectangles and circles carry Width/Height; lines carry EndPosition
// instead.
type FreeShape struct {
	ID          string                 `json:"id" yaml:"id"`
	Shape       ShapeKind              `json:"shape" yaml:"shape"`
	Position    valueobjects.Position  `json:"position" yaml:"position"`
	Width       float64                `json:"width,omitempty" yaml:"width,omitempty"`
	Height      float64                `json:"height,omitempty" yaml:"height,omitempty"`
	EndPosition *valueobjects.Position `json:"endPosition,omitempty" yaml:"endPosition,omitempty"`
	GroupID     string                 `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	Style       Style                  `json:"style,omitempty" yaml:"style,omitempty"`
}

// ToNode converts the shape annotation back into a graph record
func (s FreeShape) ToNode() Node {
	var end *valueobjects.Position
	if s.EndPosition != nil {
		e := *s.EndPosition
		end = &e
	}
	return Node{
		ID:          s.ID,
		Kind:        KindShape,
		Position:    s.Position,
		Width:       s.Width,
		Height:      s.Height,
		EndPosition: end,
		ParentID:    s.GroupID,
		Shape:       s.Shape,
		Style:       s.Style,
	}
}

// FreeShapeFromNode projects a graph record into its shape view.
// Returns false when the record is not a free shape annotation.
func FreeShapeFromNode(n Node) (FreeShape, bool) {
	if n.Kind != KindShape {
		return FreeShape{}, false
	}
	var end *valueobjects.Position
	if n.EndPosition != nil {
		e := *n.EndPosition
		end = &e
	}
	return FreeShape{
		ID:          n.ID,
		Shape:       n.Shape,
		Position:    n.Position,
		Width:       n.Width,
		Height:      n.Height,
		EndPosition: end,
		GroupID:     n.ParentID,
		Style:       n.Style,
	}, true
}
