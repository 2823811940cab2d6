package yamldoc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"topocanvas/domain/core/entities"
	"topocanvas/domain/core/valueobjects"
	"topocanvas/infrastructure/persistence/schema"
	"topocanvas/pkg/errors"
)

// Loader reads the topology input file and the annotations sidecar and
// merges them into a single node set for the store. Sidecar documents
// written by older builds run through schema evolution first.
type Loader struct {
	evolution *schema.Evolution
}

// NewLoader creates a loader with the known migration chain
func NewLoader() *Loader {
	return &Loader{evolution: schema.NewEvolution()}
}

// LoadTopology reads the topology file into node and edge records. A
// missing path yields an empty document, not an error; the editor can
// start on a blank canvas.
func (l *Loader) LoadTopology(path string) ([]entities.Node, []entities.Edge, error) {
	if path == "" {
		return nil, nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, errors.NewPersistenceError("read topology", err)
	}

	var doc TopologyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, errors.NewPersistenceError("parse topology", err)
	}

	nodes := make([]entities.Node, 0, len(doc.Nodes))
	for _, tn := range doc.Nodes {
		if tn.ID == "" {
			return nil, nil, errors.NewValidationError("topology node without id")
		}
		n := entities.Node{
			ID:       tn.ID,
			Kind:     entities.KindTopology,
			Label:    tn.Label,
			Position: valueobjects.Position{X: tn.X, Y: tn.Y},
		}
		if tn.Lat != nil && tn.Lng != nil {
			geo, err := valueobjects.NewLatLng(*tn.Lat, *tn.Lng)
			if err != nil {
				return nil, nil, fmt.Errorf("node %s: %w", tn.ID, err)
			}
			n.Geo = &geo
		}
		nodes = append(nodes, n)
	}

	return nodes, doc.Edges, nil
}

// LoadSidecar reads the annotations sidecar into node records ready to
// append to the store. A missing file is an empty annotation set.
func (l *Loader) LoadSidecar(path string) ([]entities.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("read sidecar", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var raw schema.Doc
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewPersistenceError("parse sidecar", err)
	}
	evolved, err := l.evolution.Evolve(raw)
	if err != nil {
		return nil, errors.NewPersistenceError("evolve sidecar", err)
	}
	normalized, err := yaml.Marshal(evolved)
	if err != nil {
		return nil, errors.NewPersistenceError("normalize sidecar", err)
	}

	var doc SidecarDocument
	if err := yaml.Unmarshal(normalized, &doc); err != nil {
		return nil, errors.NewPersistenceError("decode sidecar", err)
	}

	nodes := make([]entities.Node, 0, len(doc.Groups)+len(doc.Texts)+len(doc.Shapes))
	for _, g := range doc.Groups {
		nodes = append(nodes, g.ToNode())
	}
	for _, t := range doc.Texts {
		nodes = append(nodes, t.ToNode())
	}
	for _, s := range doc.Shapes {
		nodes = append(nodes, s.ToNode())
	}
	return nodes, nil
}
