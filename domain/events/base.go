package events

import (
	"time"
)

// DomainEvent is the base interface for all domain events.
// Events represent something that has happened in the past; hook
// subscribers receive them as payloads after the store has changed.
type DomainEvent interface {
	GetEntityID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EntityID  string    `json:"entity_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) GetEntityID() string     { return e.EntityID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// History Events

// ChangeCommitted is raised when a mutation is recorded on the undo stack
type ChangeCommitted struct {
	BaseEvent
	Label     string   `json:"label"`
	EntityIDs []string `json:"entity_ids"`
}

// NewChangeCommitted creates a ChangeCommitted event
func NewChangeCommitted(label string, entityIDs []string, timestamp time.Time) ChangeCommitted {
	first := ""
	if len(entityIDs) > 0 {
		first = entityIDs[0]
	}
	return ChangeCommitted{
		BaseEvent: BaseEvent{
			EntityID:  first,
			EventType: "history.committed",
			Timestamp: timestamp,
		},
		Label:     label,
		EntityIDs: entityIDs,
	}
}

// HistoryApplied is raised after an undo or redo step restores a snapshot
type HistoryApplied struct {
	BaseEvent
	Direction string `json:"direction"`
	Label     string `json:"label"`
}

// NewHistoryApplied creates a HistoryApplied event
func NewHistoryApplied(direction, label string, timestamp time.Time) HistoryApplied {
	return HistoryApplied{
		BaseEvent: BaseEvent{
			EventType: "history.applied",
			Timestamp: timestamp,
		},
		Direction: direction,
		Label:     label,
	}
}

// Annotation Events

// AnnotationCreated is raised when a group, text or shape is created
type AnnotationCreated struct {
	BaseEvent
	Kind string `json:"kind"`
}

// NewAnnotationCreated creates an AnnotationCreated event
func NewAnnotationCreated(id, kind string, timestamp time.Time) AnnotationCreated {
	return AnnotationCreated{
		BaseEvent: BaseEvent{
			EntityID:  id,
			EventType: "annotation.created",
			Timestamp: timestamp,
		},
		Kind: kind,
	}
}

// AnnotationDeleted is raised when an annotation is removed
type AnnotationDeleted struct {
	BaseEvent
	Kind string `json:"kind"`
}

// NewAnnotationDeleted creates an AnnotationDeleted event
func NewAnnotationDeleted(id, kind string, timestamp time.Time) AnnotationDeleted {
	return AnnotationDeleted{
		BaseEvent: BaseEvent{
			EntityID:  id,
			EventType: "annotation.deleted",
			Timestamp: timestamp,
		},
		Kind: kind,
	}
}

// GroupDeleted is raised when a group is removed and its children are
// migrated to the group's former parent
type GroupDeleted struct {
	BaseEvent
	MigratedTo string   `json:"migrated_to"`
	ChildIDs   []string `json:"child_ids"`
}

// NewGroupDeleted creates a GroupDeleted event
func NewGroupDeleted(groupID, migratedTo string, childIDs []string, timestamp time.Time) GroupDeleted {
	return GroupDeleted{
		BaseEvent: BaseEvent{
			EntityID:  groupID,
			EventType: "group.deleted",
			Timestamp: timestamp,
		},
		MigratedTo: migratedTo,
		ChildIDs:   childIDs,
	}
}

// MembershipChanged is raised when an entity is reparented
type MembershipChanged struct {
	BaseEvent
	OldParentID string `json:"old_parent_id"`
	NewParentID string `json:"new_parent_id"`
}

// NewMembershipChanged creates a MembershipChanged event
func NewMembershipChanged(id, oldParent, newParent string, timestamp time.Time) MembershipChanged {
	return MembershipChanged{
		BaseEvent: BaseEvent{
			EntityID:  id,
			EventType: "membership.changed",
			Timestamp: timestamp,
		},
		OldParentID: oldParent,
		NewParentID: newParent,
	}
}

// Document Events

// TopologyReloaded is raised when the watched topology file is re-read
// and the topology layer of the document is replaced
type TopologyReloaded struct {
	BaseEvent
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

// NewTopologyReloaded creates a TopologyReloaded event
func NewTopologyReloaded(nodeCount, edgeCount int, timestamp time.Time) TopologyReloaded {
	return TopologyReloaded{
		BaseEvent: BaseEvent{
			EventType: "topology.reloaded",
			Timestamp: timestamp,
		},
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}
}
