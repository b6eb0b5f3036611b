package di

import (
	"go.uber.org/zap"

	"etherlink/application/commands/bus"
	"etherlink/application/insights"
	"etherlink/application/ports"
	querybus "etherlink/application/queries/bus"
	"etherlink/application/stores"
	domainconfig "etherlink/domain/config"
	"etherlink/domain/terminal"
	"etherlink/infrastructure/config"
	"etherlink/infrastructure/messaging"
	"etherlink/infrastructure/persistence"
	"etherlink/interfaces/http/rest"
	"etherlink/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Domain     *domainconfig.DomainConfig
	Logger     *zap.Logger
	Metrics    *observability.Collector
	Backend    ports.Backend
	Bus        *messaging.Bus
	Documents  *persistence.Adapter
	Stores     *stores.Stores
	Aggregator *insights.Aggregator
	Live       *insights.Live
	Spellbook  *terminal.Spellbook
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Router     *rest.Router
}

// ExternalChanges is the backend's change feed, reloading the affected
// store before each key is reported
func (c *Container) ExternalChanges() ports.ChangeSource {
	return c.Stores.Reloading(c.Backend)
}
