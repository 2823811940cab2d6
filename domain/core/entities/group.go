package entities

import (
	"topocanvas/domain/core/valueobjects"
)

// Group is the typed view of a group annotation record. Groups are
// resizable rectangles that own members and may nest inside each other
// through ParentID.
type Group struct {
	ID       string                `json:"id" yaml:"id"`
	Label    string                `json:"label,omitempty" yaml:"label,omitempty"`
	Position valueobjects.Position `json:"position" yaml:"position"`
	Width    float64               `json:"width" yaml:"width"`
	Height   float64               `json:"height" yaml:"height"`
	Level    int                   `json:"level,omitempty" yaml:"level,omitempty"`
	ParentID string                `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Members  []string              `json:"members,omitempty" yaml:"members,omitempty"`
	Style    Style                 `json:"style,omitempty" yaml:"style,omitempty"`
}

// Bounds returns the group's rectangle, centered on its position
func (g Group) Bounds() valueobjects.Bounds {
	return valueobjects.Bounds{Center: g.Position, Width: g.Width, Height: g.Height}
}

// ToNode converts the group back into a graph record. Projection and
// ToNode round-trip: GroupFromNode(g.ToNode()) yields g for all
// supported fields.
func (g Group) ToNode() Node {
	var members []string
	if g.Members != nil {
		members = make([]string, len(g.Members))
		copy(members, g.Members)
	}
	return Node{
		ID:       g.ID,
		Kind:     KindGroup,
		Label:    g.Label,
		Position: g.Position,
		Width:    g.Width,
		Height:   g.Height,
		ParentID: g.ParentID,
		Members:  members,
		Level:    g.Level,
		Style:    g.Style,
	}
}

// GroupFromNode projects a graph record into its group view.
// Returns false when the record is not a group.
func GroupFromNode(n Node) (Group, bool) {
	if n.Kind != KindGroup {
		return Group{}, false
	}
	var members []string
	if n.Members != nil {
		members = make([]string, len(n.Members))
		copy(members, n.Members)
	}
	return Group{
		ID:       n.ID,
		Label:    n.Label,
		Position: n.Position,
		Width:    n.Width,
		Height:   n.Height,
		Level:    n.Level,
		ParentID: n.ParentID,
		Members:  members,
		Style:    n.Style,
	}, true
}
