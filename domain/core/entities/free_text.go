package entities

import (
	"topocanvas/domain/core/valueobjects"
)

// FreeText is the typed view of a free text annotation record
type FreeText struct {
	ID       string                `json:"id" yaml:"id"`
	Text     string                `json:"text" yaml:"text"`
	Position valueobjects.Position `json:"position" yaml:"position"`
	FontSize float64               `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Color    string                `json:"color,omitempty" yaml:"color,omitempty"`
	GroupID  string                `json:"groupId,omitempty" yaml:"groupId,omitempty"`
}

// ToNode converts the text annotation back into a graph record
func (t FreeText) ToNode() Node {
	return Node{
		ID:       t.ID,
		Kind:     KindText,
		Position: t.Position,
		ParentID: t.GroupID,
		Text:     t.Text,
		Style: Style{
			FontSize: t.FontSize,
			Color:    t.Color,
		},
	}
}

// FreeTextFromNode projects a graph record into its text view.
// Returns false when the record is not a free text annotation.
func FreeTextFromNode(n Node) (FreeText, bool) {
	if n.Kind != KindText {
		return FreeText{}, false
	}
	return FreeText{
		ID:       n.ID,
		Text:     n.Text,
		Position: n.Position,
		FontSize: n.Style.FontSize,
		Color:    n.Style.Color,
		GroupID:  n.ParentID,
	}, true
}
