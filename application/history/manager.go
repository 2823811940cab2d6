package history

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"topocanvas/application/ports"
	"topocanvas/domain/config"
	"topocanvas/domain/core/entities"
	"topocanvas/domain/events"
	"topocanvas/pkg/extensions"
	"topocanvas/pkg/observability"
)

// Direction tells the persistence hook which way the document moved
type Direction string

const (
	DirectionCommit Direction = "commit"
	DirectionUndo   Direction = "undo"
	DirectionRedo   Direction = "redo"
)

// PersistenceHook receives the full node set after every successful
// commit, undo or redo so the host can serialize the annotation layer
// to durable storage. The engine performs no file I/O itself. Declared
// here, on the consumer side, and injected after construction.
type PersistenceHook interface {
	Flush(ctx context.Context, direction Direction, nodes []entities.Node) error
}

// Manager is the undo/redo core. It captures per-id before state,
// derives after state by re-reading the store on commit, and maintains
// bounded LIFO undo/redo stacks of labeled multi-entity actions.
//
// The store is synchronous: a read issued after SetNodes observes the
// new state, so Commit re-reads the snapshot's ids instead of asking
// callers for expected post-mutation records.
type Manager struct {
	store   ports.GraphStore
	depth   int
	logger  *zap.Logger
	metrics *observability.Metrics
	hooks   *extensions.HookManager

	// applying is read by store listeners while the manager mutex is
	// held during replay, so it lives outside the mutex.
	applying atomic.Bool

	mu      sync.Mutex
	undo    []Action
	redo    []Action
	stashID string
	stash   *Snapshot
	persist PersistenceHook
}

// NewManager creates a history manager over the given store. The stack
// depth comes from the domain configuration; entries beyond it evict
// the oldest action.
func NewManager(store ports.GraphStore, cfg *config.DomainConfig, logger *zap.Logger, metrics *observability.Metrics, hooks *extensions.HookManager) *Manager {
	depth := cfg.UndoStackDepth
	if depth <= 0 {
		depth = config.DefaultDomainConfig().UndoStackDepth
	}
	return &Manager{
		store:   store,
		depth:   depth,
		logger:  logger,
		metrics: metrics,
		hooks:   hooks,
	}
}

// SetPersistenceHook injects the durable-storage bridge. Called in a
// separate wiring step after all components exist.
func (m *Manager) SetPersistenceHook(h PersistenceHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persist = h
}

// Applying reports whether an undo or redo replay is in progress.
// Store listeners and derived-mutation callbacks must check this before
// recording history of their own.
func (m *Manager) Applying() bool {
	return m.applying.Load()
}

// Capture deep-copies the current record for each id, recording nil for
// ids that do not exist yet. Call before mutating the store. Returns
// nil while a replay is in progress; callers treat that as "do not
// record this mutation".
func (m *Manager) Capture(ids ...string) *Snapshot {
	if m.applying.Load() {
		return nil
	}
	snap := NewSnapshot()
	for _, id := range ids {
		if _, seen := snap.Entries[id]; seen {
			continue
		}
		if n, ok := m.store.GetNode(id); ok {
			cp := n.Clone()
			snap.Entries[id] = &cp
		} else {
			snap.Entries[id] = nil
		}
	}
	return snap
}

// Commit finalizes a mutation into one undoable action. The after half
// is derived by re-reading the store for every id the snapshot tracks;
// an id that disappeared reads as deleted. The new action is pushed on
// the undo stack, the redo stack is cleared, and the oldest entry is
// evicted once the stack is full. A nil snapshot (capture during
// replay) is silently ignored. No-op edits are pushed as-is; the engine
// does not detect or suppress them.
func (m *Manager) Commit(ctx context.Context, before *Snapshot, label string) {
	if before == nil || m.applying.Load() {
		return
	}

	after := NewSnapshot()
	for id := range before.Entries {
		if n, ok := m.store.GetNode(id); ok {
			cp := n.Clone()
			after.Entries[id] = &cp
		} else {
			after.Entries[id] = nil
		}
	}

	action := Action{
		Label:  label,
		Before: before.Clone(),
		After:  after,
		At:     time.Now(),
	}

	m.mu.Lock()
	m.undo = append(m.undo, action)
	if len(m.undo) > m.depth {
		m.undo = m.undo[len(m.undo)-m.depth:]
	}
	m.redo = nil
	undoDepth, redoDepth := len(m.undo), len(m.redo)
	m.mu.Unlock()

	m.logger.Debug("change committed",
		zap.String("label", label),
		zap.Int("entities", len(before.Entries)),
		zap.Int("undo_depth", undoDepth))

	m.metrics.CommitsTotal.Inc()
	m.metrics.UndoStackDepth.Set(float64(undoDepth))
	m.metrics.RedoStackDepth.Set(float64(redoDepth))

	if err := m.hooks.Execute(ctx, extensions.HookAfterCommit, events.NewChangeCommitted(label, before.IDs(), action.At)); err != nil {
		m.logger.Warn("after-commit hook failed", zap.Error(err))
	}
	m.flush(ctx, DirectionCommit)
}

// Undo pops the most recent action and applies its before entries to
// the store, then moves the action to the redo stack. Returns false on
// an empty stack; that is a silent no-op, not an error.
func (m *Manager) Undo(ctx context.Context) bool {
	m.mu.Lock()
	if len(m.undo) == 0 {
		m.mu.Unlock()
		return false
	}
	action := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, action)
	undoDepth, redoDepth := len(m.undo), len(m.redo)

	m.applySnapshot(action.Before)
	m.mu.Unlock()

	m.logger.Debug("undo applied", zap.String("label", action.Label))
	m.metrics.UndoTotal.Inc()
	m.metrics.UndoStackDepth.Set(float64(undoDepth))
	m.metrics.RedoStackDepth.Set(float64(redoDepth))

	if err := m.hooks.Execute(ctx, extensions.HookAfterUndo, events.NewHistoryApplied(string(DirectionUndo), action.Label, time.Now())); err != nil {
		m.logger.Warn("after-undo hook failed", zap.Error(err))
	}
	m.flush(ctx, DirectionUndo)
	return true
}

// Redo pops the most recent undone action and applies its after
// entries, moving the action back to the undo stack. Returns false on
// an empty stack.
func (m *Manager) Redo(ctx context.Context) bool {
	m.mu.Lock()
	if len(m.redo) == 0 {
		m.mu.Unlock()
		return false
	}
	action := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, action)
	undoDepth, redoDepth := len(m.undo), len(m.redo)

	m.applySnapshot(action.After)
	m.mu.Unlock()

	m.logger.Debug("redo applied", zap.String("label", action.Label))
	m.metrics.RedoTotal.Inc()
	m.metrics.UndoStackDepth.Set(float64(undoDepth))
	m.metrics.RedoStackDepth.Set(float64(redoDepth))

	if err := m.hooks.Execute(ctx, extensions.HookAfterRedo, events.NewHistoryApplied(string(DirectionRedo), action.Label, time.Now())); err != nil {
		m.logger.Warn("after-redo hook failed", zap.Error(err))
	}
	m.flush(ctx, DirectionRedo)
	return true
}

// BeginGesture captures and stashes a snapshot for a start/end edit
// such as a resize or rotation. Intermediate frames mutate the store
// directly without touching history; only EndGesture commits. Starting
// a new gesture overwrites any stashed one, which is how an abandoned
// gesture (pointer left the canvas, end never fired) is discarded.
func (m *Manager) BeginGesture(gestureID string, ids ...string) {
	snap := m.Capture(ids...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stashID = gestureID
	m.stash = snap
}

// EndGesture retrieves the stashed snapshot for the gesture and commits
// it against the live final state. Returns false when no matching
// gesture is stashed.
func (m *Manager) EndGesture(ctx context.Context, gestureID, label string) bool {
	m.mu.Lock()
	if m.stashID != gestureID || m.stash == nil {
		m.mu.Unlock()
		return false
	}
	snap := m.stash
	m.stashID = ""
	m.stash = nil
	m.mu.Unlock()

	m.metrics.GesturesTotal.Inc()
	m.Commit(ctx, snap, label)
	return true
}

// CanUndo reports whether the undo stack is non-empty
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

// UndoEntries lists the undo stack, most recent last
func (m *Manager) UndoEntries() []ActionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return listEntries(m.undo)
}

// RedoEntries lists the redo stack, most recent last
func (m *Manager) RedoEntries() []ActionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return listEntries(m.redo)
}

// applySnapshot replays snapshot entries against the store: nil removes
// the id, non-nil upserts it preserving the record's position in the
// canonical order. Runs with the manager mutex held; the applying flag
// keeps synchronous store listeners from recording new history.
func (m *Manager) applySnapshot(snap *Snapshot) {
	m.applying.Store(true)
	defer m.applying.Store(false)

	m.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		out := nodes[:0]
		seen := make(map[string]bool, len(snap.Entries))
		for _, n := range nodes {
			entry, tracked := snap.Entries[n.ID]
			if !tracked {
				out = append(out, n)
				continue
			}
			seen[n.ID] = true
			if entry == nil {
				continue
			}
			out = append(out, entry.Clone())
		}
		for _, id := range snap.IDs() {
			entry := snap.Entries[id]
			if entry == nil || seen[id] {
				continue
			}
			out = append(out, entry.Clone())
		}
		return out
	})
}

func (m *Manager) flush(ctx context.Context, direction Direction) {
	m.mu.Lock()
	persist := m.persist
	m.mu.Unlock()
	if persist == nil {
		return
	}
	if err := persist.Flush(ctx, direction, m.store.GetNodes()); err != nil {
		m.logger.Error("persistence flush failed",
			zap.String("direction", string(direction)),
			zap.Error(err))
	}
}

func listEntries(actions []Action) []ActionInfo {
	infos := make([]ActionInfo, len(actions))
	for i, a := range actions {
		infos[i] = ActionInfo{Label: a.Label, At: a.At}
	}
	return infos
}
