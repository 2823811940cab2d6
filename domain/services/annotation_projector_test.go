package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topocanvas/domain/core/entities"
	"topocanvas/domain/core/valueobjects"
)

func TestProjectPartitionsByKind(t *testing.T) {
	end := valueobjects.Position{X: 40, Y: 40}
	nodes := []entities.Node{
		{ID: "r1", Kind: entities.KindTopology, Label: "router-1"},
		{ID: "g1", Kind: entities.KindGroup, Label: "dmz", Width: 300, Height: 200, Members: []string{"r1"}},
		{ID: "t1", Kind: entities.KindText, Text: "note", Style: entities.Style{FontSize: 14}},
		{ID: "s1", Kind: entities.KindShape, Shape: entities.ShapeLine, EndPosition: &end},
	}

	set := NewAnnotationProjector().Project(nodes)

	require.Len(t, set.Groups, 1)
	require.Len(t, set.Texts, 1)
	require.Len(t, set.Shapes, 1)

	assert.Equal(t, "g1", set.Groups[0].ID)
	assert.Equal(t, []string{"r1"}, set.Groups[0].Members)
	assert.Equal(t, "note", set.Texts[0].Text)
	assert.Equal(t, 14.0, set.Texts[0].FontSize)
	assert.Equal(t, entities.ShapeLine, set.Shapes[0].Shape)
	require.NotNil(t, set.Shapes[0].EndPosition)
	assert.Equal(t, end, *set.Shapes[0].EndPosition)
}

func TestProjectEmptyAndTopologyOnly(t *testing.T) {
	tests := []struct {
		name  string
		nodes []entities.Node
	}{
		{name: "no nodes", nodes: nil},
		{name: "topology only", nodes: []entities.Node{
			{ID: "r1", Kind: entities.KindTopology},
			{ID: "r2", Kind: entities.KindTopology},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewAnnotationProjector().Project(tt.nodes)
			assert.Empty(t, set.Groups)
			assert.Empty(t, set.Texts)
			assert.Empty(t, set.Shapes)
			assert.NotNil(t, set.Groups)
		})
	}
}

func TestProjectSkipsUnknownKinds(t *testing.T) {
	nodes := []entities.Node{
		{ID: "x1", Kind: entities.NodeKind("sticker")},
		{ID: "g1", Kind: entities.KindGroup, Label: "core"},
	}

	set := NewAnnotationProjector().Project(nodes)

	require.Len(t, set.Groups, 1)
	assert.Equal(t, "g1", set.Groups[0].ID)
}

func TestProjectRoundTrip(t *testing.T) {
	original := entities.Node{
		ID:       "g1",
		Kind:     entities.KindGroup,
		Label:    "edge",
		Position: valueobjects.Position{X: 10, Y: 20},
		Width:    300,
		Height:   200,
		ParentID: "g0",
		Members:  []string{"a", "b"},
		Level:    2,
		Style:    entities.Style{Color: "#333", Background: "#eee"},
	}

	set := NewAnnotationProjector().Project([]entities.Node{original})
	require.Len(t, set.Groups, 1)

	back := set.Groups[0].ToNode()
	assert.Equal(t, original, back)
}

func TestProjectDoesNotAliasMembers(t *testing.T) {
	nodes := []entities.Node{
		{ID: "g1", Kind: entities.KindGroup, Members: []string{"a"}},
	}

	set := NewAnnotationProjector().Project(nodes)
	require.Len(t, set.Groups, 1)

	set.Groups[0].Members[0] = "mutated"
	assert.Equal(t, "a", nodes[0].Members[0])
}
