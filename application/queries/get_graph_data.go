package queries

import (
	"topocanvas/domain/core/entities"
)

// GetGraphDataQuery asks for the full document: nodes, edges and
// summary statistics
type GetGraphDataQuery struct{}

// Validate validates the query
func (q GetGraphDataQuery) Validate() error {
	return nil
}

// GetGraphDataResult is the complete document for rendering
type GetGraphDataResult struct {
	Nodes []entities.Node `json:"nodes"`
	Edges []entities.Edge `json:"edges"`
	Stats GraphStats      `json:"stats"`
}

// GraphStats summarizes the document
type GraphStats struct {
	NodeCount       int `json:"node_count"`
	EdgeCount       int `json:"edge_count"`
	GroupCount      int `json:"group_count"`
	AnnotationCount int `json:"annotation_count"`
}
