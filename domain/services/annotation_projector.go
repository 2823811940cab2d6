package services

import (
	"topocanvas/domain/core/entities"
)

// AnnotationSet holds the three typed annotation views derived from the
// node records
type AnnotationSet struct {
	Groups []entities.Group     `json:"groups"`
	Texts  []entities.FreeText  `json:"texts"`
	Shapes []entities.FreeShape `json:"shapes"`
}

// AnnotationProjector derives typed annotation views from the raw node
// records. Projection is a pure single pass over the input; it never
// mutates the records and is safe to run on every read.
type AnnotationProjector struct{}

// NewAnnotationProjector creates a projector
func NewAnnotationProjector() AnnotationProjector {
	return AnnotationProjector{}
}

// Project partitions the node records into the typed annotation views
func (AnnotationProjector) Project(nodes []entities.Node) AnnotationSet {
	set := AnnotationSet{
		Groups: []entities.Group{},
		Texts:  []entities.FreeText{},
		Shapes: []entities.FreeShape{},
	}

	for _, n := range nodes {
		switch n.Kind {
		case entities.KindGroup:
			if g, ok := entities.GroupFromNode(n); ok {
				set.Groups = append(set.Groups, g)
			}
		case entities.KindText:
			if t, ok := entities.FreeTextFromNode(n); ok {
				set.Texts = append(set.Texts, t)
			}
		case entities.KindShape:
			if s, ok := entities.FreeShapeFromNode(n); ok {
				set.Shapes = append(set.Shapes, s)
			}
		case entities.KindTopology:
			// not an annotation
		default:
			// unknown kinds never reach the store; skip defensively here
			// because projection must not fail on a single bad record
		}
	}

	return set
}

// Groups is a convenience projection returning only the group view
func (p AnnotationProjector) Groups(nodes []entities.Node) []entities.Group {
	return p.Project(nodes).Groups
}
