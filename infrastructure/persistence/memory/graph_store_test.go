package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topocanvas/application/ports"
	"topocanvas/domain/core/entities"
)

func TestSetNodesIsSynchronous(t *testing.T) {
	store := NewGraphStore()

	store.SetNodes(func(nodes []entities.Node) []entities.Node {
		return append(nodes, entities.Node{ID: "n1", Kind: entities.KindTopology})
	})

	// read-after-write observes the new state immediately
	n1, ok := store.GetNode("n1")
	require.True(t, ok)
	assert.Equal(t, "n1", n1.ID)
	assert.Len(t, store.GetNodes(), 1)
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	store := NewGraphStoreWith([]entities.Node{
		{ID: "n1", Kind: entities.KindGroup, Members: []string{"a"}},
	}, nil)

	nodes := store.GetNodes()
	nodes[0].Label = "mutated"
	nodes[0].Members[0] = "mutated"

	fresh, _ := store.GetNode("n1")
	assert.Equal(t, "", fresh.Label)
	assert.Equal(t, []string{"a"}, fresh.Members)
}

func TestUpdaterReceivesPrivateCopy(t *testing.T) {
	store := NewGraphStoreWith([]entities.Node{
		{ID: "n1", Kind: entities.KindTopology},
	}, nil)

	var leaked []entities.Node
	store.SetNodes(func(nodes []entities.Node) []entities.Node {
		leaked = nodes
		return nodes
	})

	leaked[0].Label = "mutated"
	fresh, _ := store.GetNode("n1")
	assert.Equal(t, "", fresh.Label)
}

func TestListenersRunSynchronouslyWithNewState(t *testing.T) {
	store := NewGraphStore()

	var observed int
	unsubscribe := store.Subscribe(func(c ports.Change) {
		observed = len(c.Nodes)
	})

	store.SetNodes(func(nodes []entities.Node) []entities.Node {
		return append(nodes, entities.Node{ID: "n1", Kind: entities.KindTopology})
	})
	assert.Equal(t, 1, observed)

	unsubscribe()
	store.SetNodes(func(nodes []entities.Node) []entities.Node {
		return append(nodes, entities.Node{ID: "n2", Kind: entities.KindTopology})
	})
	assert.Equal(t, 1, observed)
}

func TestSetEdges(t *testing.T) {
	store := NewGraphStore()

	store.SetEdges(func(edges []entities.Edge) []entities.Edge {
		return append(edges, entities.Edge{ID: "e1", Source: "a", Target: "b"})
	})

	edges := store.GetEdges()
	require.Len(t, edges, 1)
	assert.Equal(t, "e1", edges[0].ID)
}
