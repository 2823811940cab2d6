package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"topocanvas/application/ports"
	"topocanvas/domain/core/entities"
	"topocanvas/domain/events"
	"topocanvas/infrastructure/persistence/yamldoc"
	"topocanvas/pkg/extensions"
	"topocanvas/pkg/observability"
)

const debounceDelay = 200 * time.Millisecond

// TopologyWatcher re-reads the topology file when the host rewrites it
// and swaps the topology layer of the document in place. Annotations
// are preserved; surviving topology nodes keep their group membership;
// members lists drop ids that disappeared. Reloads are host input, not
// user edits, so they bypass history entirely.
type TopologyWatcher struct {
	path    string
	store   ports.GraphStore
	loader  *yamldoc.Loader
	hooks   *extensions.HookManager
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewTopologyWatcher creates a watcher for the given topology file
func NewTopologyWatcher(
	path string,
	store ports.GraphStore,
	loader *yamldoc.Loader,
	hooks *extensions.HookManager,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *TopologyWatcher {
	return &TopologyWatcher{
		path:    path,
		store:   store,
		loader:  loader,
		hooks:   hooks,
		metrics: metrics,
		logger:  logger,
	}
}

// Start watches the topology file until the context is cancelled.
// Editors replace files by rename, so the watch is on the directory
// and events are filtered by name.
func (w *TopologyWatcher) Start(ctx context.Context) error {
	if w.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		pending := make(chan struct{}, 1)

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(w.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// writes arrive in bursts; reload once per burst
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})

			case <-pending:
				w.Reload(ctx)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("topology watch error", zap.Error(err))
			}
		}
	}()

	w.logger.Info("watching topology file", zap.String("path", w.path))
	return nil
}

// Reload re-reads the topology file and replaces the topology layer
func (w *TopologyWatcher) Reload(ctx context.Context) {
	loaded, edges, err := w.loader.LoadTopology(w.path)
	if err != nil {
		w.logger.Error("topology reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}

	loadedIDs := make(map[string]bool, len(loaded))
	for _, n := range loaded {
		loadedIDs[n.ID] = true
	}

	w.store.SetNodes(func(nodes []entities.Node) []entities.Node {
		// carry over membership of surviving topology nodes
		parents := make(map[string]string)
		removed := make(map[string]bool)
		for _, n := range nodes {
			if n.Kind != entities.KindTopology {
				continue
			}
			if loadedIDs[n.ID] {
				parents[n.ID] = n.ParentID
			} else {
				removed[n.ID] = true
			}
		}

		out := make([]entities.Node, 0, len(nodes))
		for _, n := range loaded {
			n.ParentID = parents[n.ID]
			out = append(out, n)
		}
		for _, n := range nodes {
			if n.Kind == entities.KindTopology {
				continue
			}
			for id := range removed {
				n.Members = dropMember(n.Members, id)
			}
			out = append(out, n)
		}
		return out
	})
	w.store.SetEdges(func([]entities.Edge) []entities.Edge {
		return edges
	})

	w.metrics.ReloadsTotal.Inc()
	if err := w.hooks.Execute(ctx, extensions.HookTopologyReloaded, events.NewTopologyReloaded(len(loaded), len(edges), time.Now())); err != nil {
		w.logger.Warn("topology-reloaded hook failed", zap.Error(err))
	}
	w.logger.Info("topology reloaded",
		zap.String("path", w.path),
		zap.Int("nodes", len(loaded)),
		zap.Int("edges", len(edges)))
}

func dropMember(members []string, id string) []string {
	for i, m := range members {
		if m == id {
			return append(members[:i], members[i+1:]...)
		}
	}
	return members
}
