package di

import (
	"context"
	"fmt"

	"topocanvas/application/commands"
	"topocanvas/application/commands/bus"
	commandhandlers "topocanvas/application/commands/handlers"
	"topocanvas/application/history"
	"topocanvas/application/ports"
	"topocanvas/application/queries"
	querybus "topocanvas/application/queries/bus"
	queryhandlers "topocanvas/application/queries/handlers"
	domainconfig "topocanvas/domain/config"
	"topocanvas/domain/core/validators"
	"topocanvas/domain/services"
	"topocanvas/infrastructure/config"
	"topocanvas/infrastructure/persistence/memory"
	"topocanvas/infrastructure/persistence/yamldoc"
	"topocanvas/infrastructure/watch"
	"topocanvas/pkg/auth"
	"topocanvas/pkg/extensions"
	"topocanvas/pkg/observability"

	"go.uber.org/zap"
)

// queryCacheTTLSeconds bounds staleness if a cache clear is ever
// missed; normal invalidation is the store subscription.
const queryCacheTTLSeconds = 30

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideDomainConfig loads editing limits for the environment. The
// undo depth from the runtime config wins so operators can tune it
// without a rebuild.
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	dcfg := domainconfig.LoadDomainConfig(cfg.Environment)
	if cfg.UndoStackDepth > 0 {
		dcfg.UndoStackDepth = cfg.UndoStackDepth
	}
	return dcfg
}

// ProvideHookManager creates the extension hook registry
func ProvideHookManager() *extensions.HookManager {
	return extensions.NewHookManager()
}

// ProvideMetrics creates the Prometheus metrics set
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

// ProvideLoader creates the YAML document loader
func ProvideLoader() *yamldoc.Loader {
	return yamldoc.NewLoader()
}

// ProvideProjector creates the annotation projector
func ProvideProjector() services.AnnotationProjector {
	return services.NewAnnotationProjector()
}

// ProvideResolver creates the membership resolver
func ProvideResolver() services.MembershipResolver {
	return services.NewMembershipResolver()
}

// ProvideAnnotationValidator creates the annotation validator
func ProvideAnnotationValidator(dcfg *domainconfig.DomainConfig) *validators.AnnotationValidator {
	return validators.NewAnnotationValidator(dcfg)
}

// ProvideGraphStore seeds the in-memory store from the topology file
// and the annotation sidecar. A sidecar referencing groups or members
// that no longer exist is reported but still loaded; the first edit of
// the affected group repairs it.
func ProvideGraphStore(
	cfg *config.Config,
	loader *yamldoc.Loader,
	validator *validators.AnnotationValidator,
	logger *zap.Logger,
) (ports.GraphStore, error) {
	nodes, edges, err := loader.LoadTopology(cfg.TopologyFile)
	if err != nil {
		return nil, fmt.Errorf("load topology: %w", err)
	}

	annotations, err := loader.LoadSidecar(cfg.AnnotationsFile)
	if err != nil {
		return nil, fmt.Errorf("load annotation sidecar: %w", err)
	}
	nodes = append(nodes, annotations...)

	if err := validator.ValidateForest(nodes); err != nil {
		logger.Warn("loaded document has inconsistent grouping", zap.Error(err))
	}

	logger.Info("document loaded",
		zap.String("topology", cfg.TopologyFile),
		zap.String("sidecar", cfg.AnnotationsFile),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)))
	return memory.NewGraphStoreWith(nodes, edges), nil
}

// ProvideSidecarWriter creates the sidecar persistence bridge
func ProvideSidecarWriter(cfg *config.Config, projector services.AnnotationProjector, logger *zap.Logger) *yamldoc.SidecarWriter {
	return yamldoc.NewSidecarWriter(cfg.AnnotationsFile, projector, logger)
}

// ProvideHistoryManager creates the undo/redo engine. The persistence
// hook is attached here, after construction, because flushing is a
// side concern the engine itself stays ignorant of.
func ProvideHistoryManager(
	store ports.GraphStore,
	dcfg *domainconfig.DomainConfig,
	writer *yamldoc.SidecarWriter,
	logger *zap.Logger,
	metrics *observability.Metrics,
	hooks *extensions.HookManager,
) *history.Manager {
	m := history.NewManager(store, dcfg, logger, metrics, hooks)
	m.SetPersistenceHook(writer)
	return m
}

// ProvideGroupHandler creates the group facade
func ProvideGroupHandler(
	store ports.GraphStore,
	hist *history.Manager,
	projector services.AnnotationProjector,
	resolver services.MembershipResolver,
	validator *validators.AnnotationValidator,
	hooks *extensions.HookManager,
	dcfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *commandhandlers.GroupHandler {
	return commandhandlers.NewGroupHandler(store, hist, projector, resolver, validator, hooks, dcfg, logger)
}

// ProvideAnnotationHandler creates the text and shape facade
func ProvideAnnotationHandler(
	store ports.GraphStore,
	hist *history.Manager,
	projector services.AnnotationProjector,
	resolver services.MembershipResolver,
	validator *validators.AnnotationValidator,
	hooks *extensions.HookManager,
	logger *zap.Logger,
) *commandhandlers.AnnotationHandler {
	return commandhandlers.NewAnnotationHandler(store, hist, projector, resolver, validator, hooks, logger)
}

// ProvideNodeHandler creates the node movement facade
func ProvideNodeHandler(
	store ports.GraphStore,
	hist *history.Manager,
	projector services.AnnotationProjector,
	resolver services.MembershipResolver,
	validator *validators.AnnotationValidator,
	logger *zap.Logger,
) *commandhandlers.NodeHandler {
	return commandhandlers.NewNodeHandler(store, hist, projector, resolver, validator, logger)
}

// ProvideGestureHandler creates the drag gesture facade
func ProvideGestureHandler(store ports.GraphStore, hist *history.Manager, logger *zap.Logger) *commandhandlers.GestureHandler {
	return commandhandlers.NewGestureHandler(store, hist, logger)
}

// ProvideCommandBus registers every command with its facade. The group
// facade is linked to the annotation facade here, in a second phase,
// so neither constructor references the other: deleting a group hands
// its orphaned texts and shapes to the annotation facade through the
// injected callback.
func ProvideCommandBus(
	groups *commandhandlers.GroupHandler,
	annotations *commandhandlers.AnnotationHandler,
	nodes *commandhandlers.NodeHandler,
	gestures *commandhandlers.GestureHandler,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	groups.LinkMigration(annotations.MigrateOrphans)

	b := bus.NewCommandBus()
	pipeline := bus.NewPipeline(bus.LoggingMiddleware(logger))

	register := func(cmdType bus.Command, handle func(ctx context.Context, cmd bus.Command) error) error {
		return b.Register(cmdType, pipeline.Execute(bus.CommandHandlerFunc(handle)))
	}

	registrations := []struct {
		cmdType bus.Command
		handle  func(ctx context.Context, cmd bus.Command) error
	}{
		{commands.AddGroupCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return groups.AddGroup(ctx, cmd.(commands.AddGroupCommand))
		}},
		{commands.UpdateGroupCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return groups.UpdateGroup(ctx, cmd.(commands.UpdateGroupCommand))
		}},
		{commands.UpdateGroupSizeCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return groups.UpdateGroupSize(ctx, cmd.(commands.UpdateGroupSizeCommand))
		}},
		{commands.UpdateGroupPositionCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return groups.UpdateGroupPosition(ctx, cmd.(commands.UpdateGroupPositionCommand))
		}},
		{commands.DeleteGroupCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return groups.DeleteGroup(ctx, cmd.(commands.DeleteGroupCommand))
		}},
		{commands.ChangeMembershipCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return groups.ChangeMembership(ctx, cmd.(commands.ChangeMembershipCommand))
		}},
		{commands.AddTextCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return annotations.AddText(ctx, cmd.(commands.AddTextCommand))
		}},
		{commands.UpdateTextCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return annotations.UpdateText(ctx, cmd.(commands.UpdateTextCommand))
		}},
		{commands.DeleteTextCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return annotations.DeleteText(ctx, cmd.(commands.DeleteTextCommand))
		}},
		{commands.AddShapeCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return annotations.AddShape(ctx, cmd.(commands.AddShapeCommand))
		}},
		{commands.UpdateShapeCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return annotations.UpdateShape(ctx, cmd.(commands.UpdateShapeCommand))
		}},
		{commands.DeleteShapeCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return annotations.DeleteShape(ctx, cmd.(commands.DeleteShapeCommand))
		}},
		{commands.MoveNodeCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return nodes.MoveNode(ctx, cmd.(commands.MoveNodeCommand))
		}},
		{commands.BeginGestureCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return gestures.BeginGesture(ctx, cmd.(commands.BeginGestureCommand))
		}},
		{commands.GestureFrameCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return gestures.ApplyFrame(ctx, cmd.(commands.GestureFrameCommand))
		}},
		{commands.EndGestureCommand{}, func(ctx context.Context, cmd bus.Command) error {
			return gestures.EndGesture(ctx, cmd.(commands.EndGestureCommand))
		}},
	}

	for _, r := range registrations {
		if err := register(r.cmdType, r.handle); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// ProvideInMemoryCache creates the query result cache
func ProvideInMemoryCache() *InMemoryCache {
	return NewInMemoryCache()
}

// ProvideQueryBus registers the read-side handlers. Graph and
// annotation queries are cached; the cache is cleared on every store
// mutation so reads always reflect the current document. The history
// listing stays uncached because the stacks can change without a
// store write.
func ProvideQueryBus(
	store ports.GraphStore,
	hist *history.Manager,
	projector services.AnnotationProjector,
	cache *InMemoryCache,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	b := querybus.NewQueryBus()
	caching := querybus.NewCachingMiddleware(cache, queryCacheTTLSeconds)

	graphData := queryhandlers.NewGetGraphDataHandler(store, logger)
	annotations := queryhandlers.NewGetAnnotationsHandler(store, projector, logger)
	historyList := queryhandlers.NewGetHistoryHandler(hist, logger)

	if err := b.Register(queries.GetGraphDataQuery{}, caching.Wrap(querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return graphData.Handle(ctx, q.(queries.GetGraphDataQuery))
		}))); err != nil {
		return nil, err
	}
	if err := b.Register(queries.GetAnnotationsQuery{}, caching.Wrap(querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return annotations.Handle(ctx, q.(queries.GetAnnotationsQuery))
		}))); err != nil {
		return nil, err
	}
	if err := b.Register(queries.GetHistoryQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, q querybus.Query) (interface{}, error) {
			return historyList.Handle(ctx, q.(queries.GetHistoryQuery))
		})); err != nil {
		return nil, err
	}

	store.Subscribe(func(ports.Change) {
		cache.Clear(context.Background())
	})

	return b, nil
}

// ProvideJWTValidator creates the bearer token validator, or nil when
// authentication is disabled
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if !cfg.EnableAuth {
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		Audience:      []string{"topocanvas"},
	})
}

// ProvideRateLimiter creates the per-client request limiter. A zero
// limit disables rate limiting and yields a nil limiter, which the
// middleware skips.
func ProvideRateLimiter(cfg *config.Config) *auth.TokenBucketLimiter {
	if cfg.RateLimitPerMinute <= 0 {
		return nil
	}
	return auth.NewIPRateLimiter(cfg.RateLimitPerMinute)
}

// ProvideTopologyWatcher creates the topology file watcher. With
// watching disabled the watcher gets an empty path and Start is a
// no-op.
func ProvideTopologyWatcher(
	cfg *config.Config,
	store ports.GraphStore,
	loader *yamldoc.Loader,
	hooks *extensions.HookManager,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *watch.TopologyWatcher {
	path := ""
	if cfg.WatchTopology {
		path = cfg.TopologyFile
	}
	return watch.NewTopologyWatcher(path, store, loader, hooks, metrics, logger)
}
