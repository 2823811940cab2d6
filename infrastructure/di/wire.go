//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"topocanvas/application/commands/bus"
	"topocanvas/application/history"
	"topocanvas/application/ports"
	querybus "topocanvas/application/queries/bus"
	"topocanvas/infrastructure/config"
	"topocanvas/infrastructure/watch"
	"topocanvas/pkg/auth"
	"topocanvas/pkg/extensions"
	"topocanvas/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Store       ports.GraphStore
	History     *history.Manager
	CommandBus  *bus.CommandBus
	QueryBus    *querybus.QueryBus
	Watcher     *watch.TopologyWatcher
	Hooks       *extensions.HookManager
	Metrics     *observability.Metrics
	JWT         *auth.JWTValidator
	RateLimiter *auth.TokenBucketLimiter
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideHookManager,
	ProvideMetrics,
	ProvideLoader,
	ProvideProjector,
	ProvideResolver,
	ProvideAnnotationValidator,
	ProvideGraphStore,
	ProvideSidecarWriter,
	ProvideHistoryManager,
	ProvideGroupHandler,
	ProvideAnnotationHandler,
	ProvideNodeHandler,
	ProvideGestureHandler,
	ProvideCommandBus,
	ProvideInMemoryCache,
	ProvideQueryBus,
	ProvideJWTValidator,
	ProvideRateLimiter,
	ProvideTopologyWatcher,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
