package schema

import (
	"fmt"
	"time"
)

// CurrentSidecarVersion is the version written by this build
const CurrentSidecarVersion = 1

// Doc is a decoded sidecar document before unmarshalling into typed
// annotation views. Migrations rewrite it shape by shape.
type Doc map[string]interface{}

// MigrationFunc rewrites a document from one version's shape to the next
type MigrationFunc func(doc Doc) (Doc, error)

// Migration upgrades a sidecar document by exactly one version
type Migration struct {
	FromVersion int
	ToVersion   int
	Description string
	Up          MigrationFunc
}

// AppliedMigration records one executed migration step
type AppliedMigration struct {
	Version     int       `json:"version"`
	Description string    `json:"description"`
	AppliedAt   time.Time `json:"applied_at"`
}

// Evolution upgrades sidecar documents written by older builds to the
// current shape before they are unmarshalled
type Evolution struct {
	migrations []Migration
	history    []AppliedMigration
}

// NewEvolution creates an evolution with the known migration chain
func NewEvolution() *Evolution {
	return &Evolution{}
}

// Register adds a migration step
func (e *Evolution) Register(m Migration) error {
	if m.FromVersion+1 != m.ToVersion {
		return fmt.Errorf("migrations must advance exactly one version, got %d->%d", m.FromVersion, m.ToVersion)
	}
	for _, existing := range e.migrations {
		if existing.FromVersion == m.FromVersion {
			return fmt.Errorf("migration from version %d already registered", m.FromVersion)
		}
	}
	e.migrations = append(e.migrations, m)
	return nil
}

// Evolve upgrades the document from its recorded version to the
// current one. A document without a version field is treated as
// version 1.
func (e *Evolution) Evolve(doc Doc) (Doc, error) {
	version := docVersion(doc)
	if version > CurrentSidecarVersion {
		return nil, fmt.Errorf("sidecar version %d is newer than supported version %d", version, CurrentSidecarVersion)
	}

	for version < CurrentSidecarVersion {
		m := e.find(version)
		if m == nil {
			return nil, fmt.Errorf("no migration from sidecar version %d", version)
		}
		next, err := m.Up(doc)
		if err != nil {
			return nil, fmt.Errorf("migration %d->%d failed: %w", m.FromVersion, m.ToVersion, err)
		}
		doc = next
		version = m.ToVersion
		doc["version"] = version
		e.history = append(e.history, AppliedMigration{
			Version:     version,
			Description: m.Description,
			AppliedAt:   time.Now(),
		})
	}

	return doc, nil
}

// History returns the migrations applied by this process
func (e *Evolution) History() []AppliedMigration {
	return e.history
}

func (e *Evolution) find(from int) *Migration {
	for i := range e.migrations {
		if e.migrations[i].FromVersion == from {
			return &e.migrations[i]
		}
	}
	return nil
}

func docVersion(doc Doc) int {
	switch v := doc["version"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 1
	}
}
