package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"topocanvas/domain/core/entities"
	"topocanvas/infrastructure/persistence/memory"
	"topocanvas/infrastructure/persistence/yamldoc"
	"topocanvas/pkg/extensions"
	"topocanvas/pkg/observability"
)

func TestReloadReplacesTopologyAndPreservesAnnotations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topology.yaml")
	content := `
nodes:
  - id: r1
    label: router-1-renamed
    x: 100
    y: 100
  - id: r3
    label: router-3
    x: 50
    y: 50
edges:
  - id: e1
    source: r1
    target: r3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := memory.NewGraphStoreWith([]entities.Node{
		{ID: "r1", Kind: entities.KindTopology, Label: "router-1", ParentID: "g1"},
		{ID: "r2", Kind: entities.KindTopology, Label: "router-2", ParentID: "g1"},
		{ID: "g1", Kind: entities.KindGroup, Label: "dmz", Width: 200, Height: 200, Members: []string{"r1", "r2"}},
		{ID: "t1", Kind: entities.KindText, Text: "note", ParentID: "g1"},
	}, nil)

	w := NewTopologyWatcher(path, store, yamldoc.NewLoader(),
		extensions.NewHookManager(), observability.NewMetrics(), zap.NewNop())
	w.Reload(context.Background())

	// r1 took the new label and position but kept its membership
	r1, ok := store.GetNode("r1")
	require.True(t, ok)
	assert.Equal(t, "router-1-renamed", r1.Label)
	assert.Equal(t, 100.0, r1.Position.X)
	assert.Equal(t, "g1", r1.ParentID)

	// r2 disappeared from the file and from the group's member list
	_, ok = store.GetNode("r2")
	assert.False(t, ok)
	g1, _ := store.GetNode("g1")
	assert.Equal(t, []string{"r1"}, g1.Members)

	// r3 is new and ungrouped
	r3, ok := store.GetNode("r3")
	require.True(t, ok)
	assert.Equal(t, "", r3.ParentID)

	// annotations survive untouched
	t1, ok := store.GetNode("t1")
	require.True(t, ok)
	assert.Equal(t, "note", t1.Text)
	assert.Equal(t, "g1", t1.ParentID)

	edges := store.GetEdges()
	require.Len(t, edges, 1)
	assert.Equal(t, "e1", edges[0].ID)
}
