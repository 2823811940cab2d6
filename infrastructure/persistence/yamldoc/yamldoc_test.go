package yamldoc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"topocanvas/application/history"
	"topocanvas/domain/core/entities"
	"topocanvas/domain/core/valueobjects"
	"topocanvas/domain/services"
)

func TestSidecarFlushLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "annotations.yaml")
	writer := NewSidecarWriter(path, services.NewAnnotationProjector(), zap.NewNop())

	end := valueobjects.Position{X: 50, Y: 60}
	nodes := []entities.Node{
		{ID: "r1", Kind: entities.KindTopology, Label: "router"},
		{ID: "g1", Kind: entities.KindGroup, Label: "dmz", Position: valueobjects.Position{X: 10, Y: 20}, Width: 300, Height: 200, Members: []string{"r1"}},
		{ID: "t1", Kind: entities.KindText, Text: "note", ParentID: "g1", Style: entities.Style{FontSize: 12, Color: "#333"}},
		{ID: "s1", Kind: entities.KindShape, Shape: entities.ShapeLine, EndPosition: &end},
	}

	require.NoError(t, writer.Flush(context.Background(), history.DirectionCommit, nodes))

	loaded, err := NewLoader().LoadSidecar(path)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	byID := map[string]entities.Node{}
	for _, n := range loaded {
		byID[n.ID] = n
	}

	g1 := byID["g1"]
	assert.Equal(t, entities.KindGroup, g1.Kind)
	assert.Equal(t, "dmz", g1.Label)
	assert.Equal(t, []string{"r1"}, g1.Members)
	assert.Equal(t, 300.0, g1.Width)

	t1 := byID["t1"]
	assert.Equal(t, "note", t1.Text)
	assert.Equal(t, "g1", t1.ParentID)
	assert.Equal(t, 12.0, t1.Style.FontSize)

	s1 := byID["s1"]
	assert.Equal(t, entities.ShapeLine, s1.Shape)
	require.NotNil(t, s1.EndPosition)
	assert.Equal(t, end, *s1.EndPosition)
}

func TestLoadSidecarMissingFileIsEmpty(t *testing.T) {
	loaded, err := NewLoader().LoadSidecar(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoadSidecarRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 99\ngroups: []\n"), 0o644))

	_, err := NewLoader().LoadSidecar(path)
	assert.Error(t, err)
}

func TestLoadTopology(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topology.yaml")
	content := `
nodes:
  - id: r1
    label: router-1
    x: 10
    y: 20
  - id: r2
    label: router-2
    x: 30
    y: 40
    lat: 35.6
    lng: 139.7
edges:
  - id: e1
    source: r1
    target: r2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	nodes, edges, err := NewLoader().LoadTopology(path)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Len(t, edges, 1)

	assert.Equal(t, entities.KindTopology, nodes[0].Kind)
	assert.Equal(t, "router-1", nodes[0].Label)
	assert.Equal(t, 10.0, nodes[0].Position.X)
	require.NotNil(t, nodes[1].Geo)
	assert.Equal(t, 35.6, nodes[1].Geo.Lat)
	assert.Equal(t, "r1", edges[0].Source)
}

func TestLoadTopologyMissingFileIsEmpty(t *testing.T) {
	nodes, edges, err := NewLoader().LoadTopology(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, nodes)
	assert.Empty(t, edges)
}
