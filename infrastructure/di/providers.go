package di

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"etherlink/application/commands/bus"
	commandhandlers "etherlink/application/commands/handlers"
	"etherlink/application/insights"
	"etherlink/application/ports"
	querybus "etherlink/application/queries/bus"
	queryhandlers "etherlink/application/queries/handlers"
	"etherlink/application/stores"
	domainconfig "etherlink/domain/config"
	"etherlink/domain/terminal"
	"etherlink/infrastructure/config"
	"etherlink/infrastructure/messaging"
	"etherlink/infrastructure/persistence"
	"etherlink/infrastructure/persistence/filestore"
	"etherlink/infrastructure/persistence/memory"
	"etherlink/infrastructure/persistence/sqlitestore"
	"etherlink/interfaces/http/rest"
	"etherlink/pkg/observability"
)

// ProvideLogger creates a new logger instance at the configured level
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideMetrics creates the metrics collector, or nil when metrics are off
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector("etherlink")
}

// ProvideDomainConfig returns the fixed store identifiers
func ProvideDomainConfig() *domainconfig.DomainConfig {
	return domainconfig.DefaultDomainConfig()
}

// ProvideBackend opens the configured durable key-value backend
func ProvideBackend(cfg *config.Config, logger *zap.Logger) (ports.Backend, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.New(), func() {}, nil
	case config.DriverFile:
		store, err := filestore.New(cfg.Storage.DataDir, cfg.Storage.Debounce, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case config.DriverSQLite:
		store, err := sqlitestore.Open(cfg.Storage.SQLitePath, cfg.Storage.PollInterval, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close sqlite store", zap.Error(err))
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// ProvideBus creates the change notification bus
func ProvideBus(logger *zap.Logger, metrics *observability.Collector) *messaging.Bus {
	return messaging.NewBus(logger, metrics)
}

// ProvideDocumentStore creates the JSON persistence adapter
func ProvideDocumentStore(backend ports.Backend, changes *messaging.Bus, logger *zap.Logger, metrics *observability.Collector) *persistence.Adapter {
	return persistence.NewAdapter(backend, changes, logger, metrics)
}

// ProvideStores loads the three feature stores
func ProvideStores(ctx context.Context, docs *persistence.Adapter, domain *domainconfig.DomainConfig, logger *zap.Logger) *stores.Stores {
	return stores.New(ctx, docs, domain, stores.WithLogger(logger))
}

// ProvideAggregator creates the insights aggregator
func ProvideAggregator(docs *persistence.Adapter, domain *domainconfig.DomainConfig, logger *zap.Logger, metrics *observability.Collector) *insights.Aggregator {
	return insights.NewAggregator(docs, domain, logger, metrics)
}

// ProvideLive creates the live insights view. It is started by whoever
// needs it and closed by the container cleanup.
func ProvideLive(aggregator *insights.Aggregator, changes *messaging.Bus, logger *zap.Logger) (*insights.Live, func()) {
	live := insights.NewLive(aggregator, changes, logger)
	return live, live.Close
}

// ProvideSpellbook parses the embedded terminal spellbook
func ProvideSpellbook() (*terminal.Spellbook, error) {
	return terminal.Default()
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(all *stores.Stores, cfg *config.Config, logger *zap.Logger) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(logger))
	if err := commandhandlers.Register(commandBus, all, cfg.Location(), logger); err != nil {
		return nil, err
	}
	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	all *stores.Stores,
	aggregator *insights.Aggregator,
	spellbook *terminal.Spellbook,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.LoggingMiddleware(logger))
	if err := queryhandlers.Register(queryBus, all, aggregator, spellbook, time.Now); err != nil {
		return nil, err
	}
	return queryBus, nil
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	changes *messaging.Bus,
	metrics *observability.Collector,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(commandBus, queryBus, changes, metrics, cfg, logger)
}
