package entities

// Edge is the canonical link record between two topology nodes
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
	Style  Style  `json:"style,omitempty" yaml:"style,omitempty"`
}

// Clone returns a copy of the edge record
func (e Edge) Clone() Edge {
	return e
}
