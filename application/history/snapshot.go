package history

import (
	"sort"
	"time"

	"topocanvas/domain/core/entities"
)

// Snapshot is a per-id slice of node state captured before a mutation.
// A nil entry means the id did not exist at capture time; on commit
// that shape distinguishes creates (nil before) from deletes (nil
// after). Absence is meaningful, never an error.
type Snapshot struct {
	Entries map[string]*entities.Node
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{Entries: make(map[string]*entities.Node)}
}

// IDs returns the tracked ids in a stable order
func (s *Snapshot) IDs() []string {
	ids := make([]string, 0, len(s.Entries))
	for id := range s.Entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone deep-copies the snapshot
func (s *Snapshot) Clone() *Snapshot {
	c := NewSnapshot()
	for id, n := range s.Entries {
		if n == nil {
			c.Entries[id] = nil
			continue
		}
		cp := n.Clone()
		c.Entries[id] = &cp
	}
	return c
}

// Action is one undoable step: a labeled before/after pair over the
// same id set. Undo applies Before, redo applies After.
type Action struct {
	Label  string
	Before *Snapshot
	After  *Snapshot
	At     time.Time
}

// ActionInfo is the read-only listing view of a stack entry
type ActionInfo struct {
	Label string    `json:"label"`
	At    time.Time `json:"at"`
}
