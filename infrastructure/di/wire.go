//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"etherlink/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideDomainConfig,
	ProvideBackend,
	ProvideBus,
	ProvideDocumentStore,
	ProvideStores,
	ProvideAggregator,
	ProvideLive,
	ProvideSpellbook,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container. The cleanup
// function closes the backend and flushes the logger.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}
