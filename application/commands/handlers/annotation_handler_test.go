package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topocanvas/application/commands"
	"topocanvas/domain/core/entities"
	"topocanvas/pkg/errors"
)

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func TestAddTextPlacesIntoDeepestGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.groups.AddGroup(ctx, commands.AddGroupCommand{
		GroupID: "outer", Label: "outer", X: 0, Y: 0, Width: 400, Height: 400,
	}))
	require.NoError(t, f.groups.AddGroup(ctx, commands.AddGroupCommand{
		GroupID: "inner", Label: "inner", X: 0, Y: 0, Width: 100, Height: 100,
	}))

	require.NoError(t, f.annotations.AddText(ctx, commands.AddTextCommand{
		TextID: "t1", Text: "note", X: 10, Y: 10, FontSize: 12,
	}))

	t1, ok := f.store.GetNode("t1")
	require.True(t, ok)
	assert.Equal(t, "inner", t1.ParentID)

	inner, _ := f.store.GetNode("inner")
	assert.Contains(t, inner.Members, "t1")

	// outside every group lands at the root
	require.NoError(t, f.annotations.AddText(ctx, commands.AddTextCommand{
		TextID: "t2", Text: "floating", X: 1000, Y: 1000,
	}))
	t2, _ := f.store.GetNode("t2")
	assert.Equal(t, "", t2.ParentID)
}

func TestUpdateAndDeleteText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.annotations.AddText(ctx, commands.AddTextCommand{
		TextID: "t1", Text: "before", X: 0, Y: 0,
	}))

	require.NoError(t, f.annotations.UpdateText(ctx, commands.UpdateTextCommand{
		TextID: "t1",
		Text:   strPtr("after"),
		Color:  strPtr("#f00"),
	}))
	t1, _ := f.store.GetNode("t1")
	assert.Equal(t, "after", t1.Text)
	assert.Equal(t, "#f00", t1.Style.Color)

	require.NoError(t, f.annotations.DeleteText(ctx, commands.DeleteTextCommand{TextID: "t1"}))
	_, ok := f.store.GetNode("t1")
	assert.False(t, ok)

	require.True(t, f.history.Undo(ctx))
	t1, ok = f.store.GetNode("t1")
	require.True(t, ok)
	assert.Equal(t, "after", t1.Text)
}

func TestUpdateTextRejectsWrongKind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.groups.AddGroup(ctx, commands.AddGroupCommand{
		GroupID: "g1", Label: "g1", Width: 100, Height: 100,
	}))

	err := f.annotations.UpdateText(ctx, commands.UpdateTextCommand{
		TextID: "g1",
		Text:   strPtr("oops"),
	})
	assert.True(t, errors.IsNotFound(err))
}

func TestAddLineShapeRequiresEndPoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.annotations.AddShape(ctx, commands.AddShapeCommand{
		ShapeID: "s1", Shape: "line", X: 0, Y: 0,
		EndX: floatPtr(50), EndY: floatPtr(60),
	}))

	s1, ok := f.store.GetNode("s1")
	require.True(t, ok)
	assert.Equal(t, entities.ShapeLine, s1.Shape)
	require.NotNil(t, s1.EndPosition)
	assert.Equal(t, 50.0, s1.EndPosition.X)
	assert.Equal(t, 60.0, s1.EndPosition.Y)

	err := f.annotations.AddShape(ctx, commands.AddShapeCommand{
		ShapeID: "s2", Shape: "line", X: 0, Y: 0,
	})
	assert.Error(t, err)
}

func TestUpdateShapeGeometry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.annotations.AddShape(ctx, commands.AddShapeCommand{
		ShapeID: "s1", Shape: "rectangle", X: 0, Y: 0, Width: 100, Height: 80,
	}))

	require.NoError(t, f.annotations.UpdateShape(ctx, commands.UpdateShapeCommand{
		ShapeID: "s1",
		Width:   floatPtr(150),
		Color:   strPtr("#00f"),
	}))

	s1, _ := f.store.GetNode("s1")
	assert.Equal(t, 150.0, s1.Width)
	assert.Equal(t, 80.0, s1.Height)
	assert.Equal(t, "#00f", s1.Style.Color)

	require.True(t, f.history.Undo(ctx))
	s1, _ = f.store.GetNode("s1")
	assert.Equal(t, 100.0, s1.Width)
}

func TestResizeGestureIsSingleUndoEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.annotations.AddShape(ctx, commands.AddShapeCommand{
		ShapeID: "s1", Shape: "rectangle", X: 100, Y: 100, Width: 100, Height: 100,
	}))
	before := len(f.history.UndoEntries())

	require.NoError(t, f.gestures.BeginGesture(ctx, commands.BeginGestureCommand{
		GestureID: "resize-s1", NodeIDs: []string{"s1"},
	}))
	for _, w := range []float64{110, 130, 150} {
		require.NoError(t, f.gestures.ApplyFrame(ctx, commands.GestureFrameCommand{
			NodeID: "s1", Width: floatPtr(w), Height: floatPtr(120),
		}))
	}
	require.NoError(t, f.gestures.EndGesture(ctx, commands.EndGestureCommand{
		GestureID: "resize-s1", Label: "Resize shape",
	}))

	assert.Equal(t, before+1, len(f.history.UndoEntries()))

	require.True(t, f.history.Undo(ctx))
	s1, _ := f.store.GetNode("s1")
	assert.Equal(t, 100.0, s1.Width)
	assert.Equal(t, 100.0, s1.Height)

	require.True(t, f.history.Redo(ctx))
	s1, _ = f.store.GetNode("s1")
	assert.Equal(t, 150.0, s1.Width)
	assert.Equal(t, 120.0, s1.Height)
}

func TestMoveNodeWithDropToGroup(t *testing.T) {
	f := newFixture(t)
	f.seedTopology("n1")
	ctx := context.Background()

	require.NoError(t, f.groups.AddGroup(ctx, commands.AddGroupCommand{
		GroupID: "g1", Label: "g1", X: 0, Y: 0, Width: 200, Height: 200,
	}))

	require.NoError(t, f.nodes.MoveNode(ctx, commands.MoveNodeCommand{
		NodeID: "n1", X: 10, Y: 10, Reparent: true,
	}))

	n1, _ := f.store.GetNode("n1")
	assert.Equal(t, "g1", n1.ParentID)
	g1, _ := f.store.GetNode("g1")
	assert.Contains(t, g1.Members, "n1")

	// moving out again drops the membership
	require.NoError(t, f.nodes.MoveNode(ctx, commands.MoveNodeCommand{
		NodeID: "n1", X: 1000, Y: 1000, Reparent: true,
	}))
	n1, _ = f.store.GetNode("n1")
	assert.Equal(t, "", n1.ParentID)
	g1, _ = f.store.GetNode("g1")
	assert.NotContains(t, g1.Members, "n1")
}
