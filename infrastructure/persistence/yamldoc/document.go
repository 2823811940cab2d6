package yamldoc

import (
	"topocanvas/domain/core/entities"
)

// TopologyDocument is the YAML shape of the topology input file the
// host hands us: plain nodes and edges, no annotations.
type TopologyDocument struct {
	Version int             `yaml:"version,omitempty"`
	Nodes   []TopologyNode  `yaml:"nodes"`
	Edges   []entities.Edge `yaml:"edges,omitempty"`
}

// TopologyNode is one topology record in the input file
type TopologyNode struct {
	ID    string   `yaml:"id"`
	Label string   `yaml:"label,omitempty"`
	X     float64  `yaml:"x"`
	Y     float64  `yaml:"y"`
	Lat   *float64 `yaml:"lat,omitempty"`
	Lng   *float64 `yaml:"lng,omitempty"`
}

// SidecarDocument is the YAML shape of the annotations sidecar: the
// projected annotation views plus a schema version for evolution.
type SidecarDocument struct {
	Version int                  `yaml:"version"`
	Groups  []entities.Group     `yaml:"groups,omitempty"`
	Texts   []entities.FreeText  `yaml:"texts,omitempty"`
	Shapes  []entities.FreeShape `yaml:"shapes,omitempty"`
}
