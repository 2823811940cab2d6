package memory

import (
	"sync"

	"topocanvas/application/ports"
	"topocanvas/domain/core/entities"
)

// GraphStore is the synchronous in-memory document state. It owns the
// canonical ordered node and edge lists; a read issued after a setter
// returns observes the new state. All slices crossing the boundary are
// deep copies, so callers never mutate shared records in place.
type GraphStore struct {
	mu        sync.RWMutex
	nodes     []entities.Node
	edges     []entities.Edge
	listeners map[int]ports.ChangeListener
	nextSub   int
}

// NewGraphStore creates an empty store
func NewGraphStore() *GraphStore {
	return &GraphStore{
		listeners: make(map[int]ports.ChangeListener),
	}
}

// NewGraphStoreWith creates a store seeded with the given records
func NewGraphStoreWith(nodes []entities.Node, edges []entities.Edge) *GraphStore {
	s := NewGraphStore()
	s.nodes = cloneNodes(nodes)
	s.edges = cloneEdges(edges)
	return s
}

// GetNodes returns a copy of all node records in canonical order
func (s *GraphStore) GetNodes() []entities.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNodes(s.nodes)
}

// GetEdges returns a copy of all edge records
func (s *GraphStore) GetEdges() []entities.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEdges(s.edges)
}

// GetNode returns a copy of one record by id
func (s *GraphStore) GetNode(id string) (entities.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.nodes {
		if s.nodes[i].ID == id {
			return s.nodes[i].Clone(), true
		}
	}
	return entities.Node{}, false
}

// SetNodes applies the updater to a private copy of the node list and
// installs the result atomically. Listeners run synchronously on the
// calling goroutine after the new state is readable.
func (s *GraphStore) SetNodes(update ports.NodeUpdater) {
	s.mu.Lock()
	next := update(cloneNodes(s.nodes))
	s.nodes = cloneNodes(next)
	change := ports.Change{Nodes: cloneNodes(s.nodes), Edges: cloneEdges(s.edges)}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l(change)
	}
}

// SetEdges applies the updater to a private copy of the edge list
func (s *GraphStore) SetEdges(update ports.EdgeUpdater) {
	s.mu.Lock()
	next := update(cloneEdges(s.edges))
	s.edges = cloneEdges(next)
	change := ports.Change{Nodes: cloneNodes(s.nodes), Edges: cloneEdges(s.edges)}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l(change)
	}
}

// Subscribe registers a change listener and returns its remover
func (s *GraphStore) Subscribe(listener ports.ChangeListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = listener
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *GraphStore) snapshotListeners() []ports.ChangeListener {
	out := make([]ports.ChangeListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

func cloneNodes(nodes []entities.Node) []entities.Node {
	if nodes == nil {
		return []entities.Node{}
	}
	out := make([]entities.Node, len(nodes))
	for i := range nodes {
		out[i] = nodes[i].Clone()
	}
	return out
}

func cloneEdges(edges []entities.Edge) []entities.Edge {
	if edges == nil {
		return []entities.Edge{}
	}
	out := make([]entities.Edge, len(edges))
	for i := range edges {
		out[i] = edges[i].Clone()
	}
	return out
}
