package commands

import (
	"errors"
)

// AddTextCommand creates a free text annotation. When GroupID is empty
// the text is placed in the deepest group containing its position, or
// at the root when none contains it.
type AddTextCommand struct {
	TextID   string  `json:"text_id" validate:"required"`
	Text     string  `json:"text" validate:"required,max=10000"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"font_size,omitempty" validate:"gte=0"`
	Color    string  `json:"color,omitempty"`
	GroupID  string  `json:"group_id,omitempty"`
}

// Validate checks the command fields
func (c AddTextCommand) Validate() error {
	if c.TextID == "" {
		return errors.New("text_id is required")
	}
	if c.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

// UpdateTextCommand changes a text annotation's content or style
type UpdateTextCommand struct {
	TextID   string   `json:"text_id" validate:"required"`
	Text     *string  `json:"text,omitempty"`
	FontSize *float64 `json:"font_size,omitempty"`
	Color    *string  `json:"color,omitempty"`
}

// Validate checks the command fields
func (c UpdateTextCommand) Validate() error {
	if c.TextID == "" {
		return errors.New("text_id is required")
	}
	if c.Text == nil && c.FontSize == nil && c.Color == nil {
		return errors.New("nothing to update")
	}
	return nil
}

// DeleteTextCommand removes a text annotation
type DeleteTextCommand struct {
	TextID string `json:"text_id" validate:"required"`
}

// Validate checks the command fields
func (c DeleteTextCommand) Validate() error {
	if c.TextID == "" {
		return errors.New("text_id is required")
	}
	return nil
}
