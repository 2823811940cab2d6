package ports

import (
	"topocanvas/domain/core/entities"
)

// NodeUpdater transforms the current node set into the next one. The
// store calls it with a private copy; the updater may mutate and return
// that slice freely.
type NodeUpdater func(nodes []entities.Node) []entities.Node

// EdgeUpdater transforms the current edge set into the next one
type EdgeUpdater func(edges []entities.Edge) []entities.Edge

// Change describes a store mutation delivered to subscribers. Slices
// are copies; listeners may read them without holding store locks.
type Change struct {
	Nodes []entities.Node
	Edges []entities.Edge
}

// ChangeListener receives store change notifications. Listeners run
// synchronously on the mutating goroutine, after the new state is
// visible to reads.
type ChangeListener func(Change)

// GraphStore is the port for the document state: the node and edge
// records every other component reads and mutates. Implementations are
// synchronous; a read issued after SetNodes returns observes the new
// state. All returned slices are deep copies.
type GraphStore interface {
	// GetNodes returns a copy of all node records
	GetNodes() []entities.Node

	// GetEdges returns a copy of all edge records
	GetEdges() []entities.Edge

	// GetNode returns a copy of a single record by id
	GetNode(id string) (entities.Node, bool)

	// SetNodes applies the updater atomically and notifies subscribers
	SetNodes(update NodeUpdater)

	// SetEdges applies the updater atomically and notifies subscribers
	SetEdges(update EdgeUpdater)

	// Subscribe registers a listener and returns its remover
	Subscribe(listener ChangeListener) (unsubscribe func())
}
