package entities

import (
	"topocanvas/domain/core/valueobjects"
)

// NodeKind discriminates the record types stored in the graph.
// Annotation projection matches on this exhaustively; there is no
// id-prefix sniffing anywhere.
type NodeKind string

const (
	// KindTopology is an ordinary topology node (router, host, ...)
	KindTopology NodeKind = "topology"
	// KindGroup is a resizable, nestable group annotation
	KindGroup NodeKind = "group"
	// KindText is a free text annotation
	KindText NodeKind = "text"
	// KindShape is a free shape annotation
	KindShape NodeKind = "shape"
)

// Valid reports whether the kind is one of the supported record types
func (k NodeKind) Valid() bool {
	switch k {
	case KindTopology, KindGroup, KindText, KindShape:
		return true
	default:
		return false
	}
}

// Style holds the presentation fields shared by all record kinds
type Style struct {
	Color      string  `json:"color,omitempty" yaml:"color,omitempty"`
	Background string  `json:"background,omitempty" yaml:"background,omitempty"`
	Border     string  `json:"border,omitempty" yaml:"border,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Rotation   float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

// Node is the canonical graph record. Topology nodes and all three
// annotation kinds share this shape; the typed views in group.go,
// free_text.go and free_shape.go are projections of it.
type Node struct {
	ID       string                `json:"id" yaml:"id"`
	Kind     NodeKind              `json:"kind" yaml:"kind"`
	Label    string                `json:"label,omitempty" yaml:"label,omitempty"`
	Position valueobjects.Position `json:"position" yaml:"position"`

	// Extents; zero when the kind has none (texts, line shapes)
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`

	// EndPosition is set for line shapes instead of Width/Height
	EndPosition *valueobjects.Position `json:"endPosition,omitempty" yaml:"endPosition,omitempty"`

	// ParentID is the containing group's id, empty at root
	ParentID string `json:"parentId,omitempty" yaml:"parentId,omitempty"`

	// Members lists child ids; populated for group records only
	Members []string `json:"members,omitempty" yaml:"members,omitempty"`

	// Level is the group nesting level hint used by the renderer
	Level int `json:"level,omitempty" yaml:"level,omitempty"`

	// Shape is set for shape records only
	Shape ShapeKind `json:"shape,omitempty" yaml:"shape,omitempty"`

	// Text is the content of free text records
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Geo holds optional map-layer coordinates
	Geo *valueobjects.LatLng `json:"geo,omitempty" yaml:"geo,omitempty"`

	Style Style `json:"style,omitempty" yaml:"style,omitempty"`
}

// Clone returns a deep copy of the record. The store and the history
// engine only ever hand out and accept clones; records are never
// mutated in place across component boundaries.
func (n Node) Clone() Node {
	c := n
	if n.Members != nil {
		c.Members = make([]string, len(n.Members))
		copy(c.Members, n.Members)
	}
	if n.EndPosition != nil {
		end := *n.EndPosition
		c.EndPosition = &end
	}
	if n.Geo != nil {
		geo := *n.Geo
		c.Geo = &geo
	}
	return c
}

// Bounds returns the record's rectangle, centered on its position
func (n Node) Bounds() valueobjects.Bounds {
	return valueobjects.Bounds{Center: n.Position, Width: n.Width, Height: n.Height}
}
