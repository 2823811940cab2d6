package yamldoc

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"topocanvas/application/history"
	"topocanvas/domain/core/entities"
	"topocanvas/domain/services"
	"topocanvas/infrastructure/persistence/schema"
	"topocanvas/pkg/errors"
)

// SidecarWriter serializes the projected annotation set to the YAML
// sidecar after every commit, undo and redo. Writes go through a temp
// file and rename so a crash mid-write never truncates the sidecar.
type SidecarWriter struct {
	path      string
	projector services.AnnotationProjector
	logger    *zap.Logger
	mu        sync.Mutex
}

// NewSidecarWriter creates a writer for the given sidecar path
func NewSidecarWriter(path string, projector services.AnnotationProjector, logger *zap.Logger) *SidecarWriter {
	return &SidecarWriter{
		path:      path,
		projector: projector,
		logger:    logger,
	}
}

// Flush implements the history persistence hook
func (w *SidecarWriter) Flush(ctx context.Context, direction history.Direction, nodes []entities.Node) error {
	set := w.projector.Project(nodes)
	doc := SidecarDocument{
		Version: schema.CurrentSidecarVersion,
		Groups:  set.Groups,
		Texts:   set.Texts,
		Shapes:  set.Shapes,
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.NewPersistenceError("marshal sidecar", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, ".annotations-*.yaml")
	if err != nil {
		return errors.NewPersistenceError("create sidecar temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewPersistenceError("write sidecar", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewPersistenceError("close sidecar temp file", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return errors.NewPersistenceError("replace sidecar", err)
	}

	w.logger.Debug("sidecar flushed",
		zap.String("path", w.path),
		zap.String("direction", string(direction)),
		zap.Int("groups", len(set.Groups)),
		zap.Int("texts", len(set.Texts)),
		zap.Int("shapes", len(set.Shapes)))
	return nil
}
