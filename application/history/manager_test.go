package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"topocanvas/application/ports"
	"topocanvas/domain/config"
	"topocanvas/domain/core/entities"
	"topocanvas/infrastructure/persistence/memory"
	"topocanvas/pkg/extensions"
	"topocanvas/pkg/observability"
)

func newTestManager(t *testing.T, store ports.GraphStore, depth int) *Manager {
	t.Helper()
	cfg := config.DefaultDomainConfig()
	if depth > 0 {
		cfg.UndoStackDepth = depth
	}
	return NewManager(store, cfg, zap.NewNop(), observability.NewMetrics(), extensions.NewHookManager())
}

func upsert(store ports.GraphStore, n entities.Node) {
	store.SetNodes(func(nodes []entities.Node) []entities.Node {
		for i := range nodes {
			if nodes[i].ID == n.ID {
				nodes[i] = n
				return nodes
			}
		}
		return append(nodes, n)
	})
}

func remove(store ports.GraphStore, id string) {
	store.SetNodes(func(nodes []entities.Node) []entities.Node {
		out := nodes[:0]
		for _, n := range nodes {
			if n.ID != id {
				out = append(out, n)
			}
		}
		return out
	})
}

func TestCaptureRecordsAbsenceAsNil(t *testing.T) {
	store := memory.NewGraphStore()
	upsert(store, entities.Node{ID: "r1", Kind: entities.KindTopology, Label: "router"})
	m := newTestManager(t, store, 0)

	snap := m.Capture("r1", "ghost")

	require.NotNil(t, snap)
	require.Contains(t, snap.Entries, "r1")
	require.Contains(t, snap.Entries, "ghost")
	require.NotNil(t, snap.Entries["r1"])
	assert.Equal(t, "router", snap.Entries["r1"].Label)
	assert.Nil(t, snap.Entries["ghost"])
}

func TestCommitDerivesAfterFromStore(t *testing.T) {
	store := memory.NewGraphStore()
	m := newTestManager(t, store, 0)
	ctx := context.Background()

	snap := m.Capture("g1")
	upsert(store, entities.Node{ID: "g1", Kind: entities.KindGroup, Label: "dmz", Width: 100, Height: 100})
	m.Commit(ctx, snap, "Add group dmz")

	require.True(t, m.CanUndo())
	entries := m.UndoEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Add group dmz", entries[0].Label)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	store := memory.NewGraphStore()
	upsert(store, entities.Node{ID: "n1", Kind: entities.KindTopology, Label: "switch"})
	m := newTestManager(t, store, 0)
	ctx := context.Background()

	initial := store.GetNodes()

	// C1: create a group that adopts n1
	snap := m.Capture("g1", "n1")
	upsert(store, entities.Node{ID: "g1", Kind: entities.KindGroup, Label: "dmz", Width: 100, Height: 100, Members: []string{"n1"}})
	n1, _ := store.GetNode("n1")
	n1.ParentID = "g1"
	upsert(store, n1)
	m.Commit(ctx, snap, "Add group dmz")

	// C2: rename the group
	snap = m.Capture("g1")
	g1, _ := store.GetNode("g1")
	g1.Label = "edge"
	upsert(store, g1)
	m.Commit(ctx, snap, "Rename group")

	afterC2 := store.GetNodes()

	require.True(t, m.Undo(ctx))
	require.True(t, m.Undo(ctx))
	assert.Equal(t, initial, store.GetNodes())
	assert.False(t, m.Undo(ctx))

	require.True(t, m.Redo(ctx))
	require.True(t, m.Redo(ctx))
	assert.Equal(t, afterC2, store.GetNodes())
	assert.False(t, m.Redo(ctx))
}

func TestUndoRestoresDeletedRecordInOrder(t *testing.T) {
	store := memory.NewGraphStore()
	upsert(store, entities.Node{ID: "a", Kind: entities.KindTopology})
	upsert(store, entities.Node{ID: "b", Kind: entities.KindTopology})
	upsert(store, entities.Node{ID: "c", Kind: entities.KindTopology})
	m := newTestManager(t, store, 0)
	ctx := context.Background()

	snap := m.Capture("b")
	remove(store, "b")
	m.Commit(ctx, snap, "Delete b")

	require.True(t, m.Undo(ctx))
	nodes := store.GetNodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "b", nodes[2].ID)
}

func TestCommitClearsRedoStack(t *testing.T) {
	store := memory.NewGraphStore()
	m := newTestManager(t, store, 0)
	ctx := context.Background()

	snap := m.Capture("t1")
	upsert(store, entities.Node{ID: "t1", Kind: entities.KindText, Text: "one"})
	m.Commit(ctx, snap, "Add text")

	require.True(t, m.Undo(ctx))
	require.True(t, m.CanRedo())

	snap = m.Capture("t2")
	upsert(store, entities.Node{ID: "t2", Kind: entities.KindText, Text: "two"})
	m.Commit(ctx, snap, "Add another text")

	assert.False(t, m.CanRedo())
}

func TestStackDepthEvictsOldest(t *testing.T) {
	store := memory.NewGraphStore()
	m := newTestManager(t, store, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("t%d", i)
		snap := m.Capture(id)
		upsert(store, entities.Node{ID: id, Kind: entities.KindText, Text: id})
		m.Commit(ctx, snap, "Add "+id)
	}

	entries := m.UndoEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Add t2", entries[0].Label)
	assert.Equal(t, "Add t4", entries[2].Label)

	// only the retained actions can be undone
	assert.True(t, m.Undo(ctx))
	assert.True(t, m.Undo(ctx))
	assert.True(t, m.Undo(ctx))
	assert.False(t, m.Undo(ctx))

	// t0 and t1 survive because their actions were evicted
	_, ok := store.GetNode("t0")
	assert.True(t, ok)
	_, ok = store.GetNode("t4")
	assert.False(t, ok)
}

func TestCaptureReturnsNilDuringReplay(t *testing.T) {
	store := memory.NewGraphStore()
	m := newTestManager(t, store, 0)
	ctx := context.Background()

	var capturedDuringReplay []*Snapshot
	unsubscribe := store.Subscribe(func(ports.Change) {
		if m.Applying() {
			capturedDuringReplay = append(capturedDuringReplay, m.Capture("x"))
		}
	})
	defer unsubscribe()

	snap := m.Capture("t1")
	upsert(store, entities.Node{ID: "t1", Kind: entities.KindText, Text: "hello"})
	m.Commit(ctx, snap, "Add text")

	require.True(t, m.Undo(ctx))
	require.NotEmpty(t, capturedDuringReplay)
	for _, s := range capturedDuringReplay {
		assert.Nil(t, s)
	}

	// replay produced no extra history
	assert.Equal(t, 0, len(m.UndoEntries()))
	assert.Equal(t, 1, len(m.RedoEntries()))
}

func TestCommitNilSnapshotIsIgnored(t *testing.T) {
	store := memory.NewGraphStore()
	m := newTestManager(t, store, 0)

	m.Commit(context.Background(), nil, "nothing")

	assert.False(t, m.CanUndo())
}

func TestGestureProducesSingleEntry(t *testing.T) {
	store := memory.NewGraphStore()
	upsert(store, entities.Node{ID: "s1", Kind: entities.KindShape, Shape: entities.ShapeRectangle, Width: 100, Height: 100})
	m := newTestManager(t, store, 0)
	ctx := context.Background()

	m.BeginGesture("resize-s1", "s1")

	// intermediate frames hit the store directly
	for _, w := range []float64{110, 130, 150} {
		s1, _ := store.GetNode("s1")
		s1.Width = w
		s1.Height = 120
		upsert(store, s1)
	}

	require.True(t, m.EndGesture(ctx, "resize-s1", "Resize shape"))
	require.Len(t, m.UndoEntries(), 1)

	require.True(t, m.Undo(ctx))
	s1, ok := store.GetNode("s1")
	require.True(t, ok)
	assert.Equal(t, 100.0, s1.Width)
	assert.Equal(t, 100.0, s1.Height)

	require.True(t, m.Redo(ctx))
	s1, _ = store.GetNode("s1")
	assert.Equal(t, 150.0, s1.Width)
	assert.Equal(t, 120.0, s1.Height)
}

func TestAbandonedGestureNeverCommits(t *testing.T) {
	store := memory.NewGraphStore()
	upsert(store, entities.Node{ID: "s1", Kind: entities.KindShape, Shape: entities.ShapeCircle, Width: 50, Height: 50})
	m := newTestManager(t, store, 0)
	ctx := context.Background()

	m.BeginGesture("rotate-s1", "s1")
	// pointer left the canvas; a new gesture starts instead of end firing
	m.BeginGesture("resize-s1", "s1")

	assert.False(t, m.EndGesture(ctx, "rotate-s1", "Rotate shape"))
	assert.True(t, m.EndGesture(ctx, "resize-s1", "Resize shape"))
	assert.Len(t, m.UndoEntries(), 1)
}

func TestPersistenceHookReceivesEveryDirection(t *testing.T) {
	store := memory.NewGraphStore()
	m := newTestManager(t, store, 0)
	ctx := context.Background()

	var directions []Direction
	m.SetPersistenceHook(persistFunc(func(_ context.Context, d Direction, nodes []entities.Node) error {
		directions = append(directions, d)
		return nil
	}))

	snap := m.Capture("t1")
	upsert(store, entities.Node{ID: "t1", Kind: entities.KindText, Text: "x"})
	m.Commit(ctx, snap, "Add text")
	m.Undo(ctx)
	m.Redo(ctx)

	assert.Equal(t, []Direction{DirectionCommit, DirectionUndo, DirectionRedo}, directions)
}

type persistFunc func(ctx context.Context, d Direction, nodes []entities.Node) error

func (f persistFunc) Flush(ctx context.Context, d Direction, nodes []entities.Node) error {
	return f(ctx, d, nodes)
}
