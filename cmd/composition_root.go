package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/catalogcache"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/memory"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/postgres/catalogrepo"
	"storefront/internal/adapters/out/resilience"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot builds handlers over the adapters chosen by Config.
//
// Two catalog lookups are kept apart. catalog always reads the source of
// truth and prices new lines. displayCatalog may be served from Redis and is
// used only for the name, url and category shown in views.
type CompositionRoot struct {
	cfg            Config
	logger         *slog.Logger
	uowFactory     ports.UnitOfWorkFactory
	catalog        ports.CatalogLookup
	displayCatalog ports.CatalogLookup
	breaker        *resilience.GuardedCatalog
	publisher      ports.EventPublisher
	registry       *prometheus.Registry
	closers        []func() error
}

// NewCompositionRoot wires the adapters selected by cfg. gormDB is only used,
// and required, with the postgres storage driver.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	c.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	switch cfg.StorageDriver {
	case StorageDriverMemory:
		products, err := loadMemoryCatalog(cfg.CatalogSeedFile)
		if err != nil {
			return nil, err
		}
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
		c.catalog = products
	case StorageDriverPostgres:
		if gormDB == nil {
			return nil, errors.New("postgres storage driver needs a database connection")
		}
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
		c.breaker = resilience.NewGuardedCatalog(
			catalogrepo.NewGormCatalogRepository(gormDB),
			resilience.Config{
				CallTimeout:    cfg.CatalogTimeout,
				FailuresToTrip: resilience.DefaultConfig().FailuresToTrip,
				OpenFor:        resilience.DefaultConfig().OpenFor,
			},
			logger,
		)
		c.catalog = c.breaker
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	c.displayCatalog = c.catalog
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		c.closers = append(c.closers, client.Close)
		c.displayCatalog = catalogcache.NewRedisCatalog(client, c.catalog, cfg.CatalogCacheTTL, logger)
	}

	if brokers := kafka.ParseBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		publisher := kafka.NewEventPublisher(kafka.NewWriter(brokers, cfg.KafkaOrderEventsTopic))
		c.closers = append(c.closers, publisher.Close)
		c.publisher = publisher
	}

	return c, nil
}

func loadMemoryCatalog(path string) (*memory.Catalog, error) {
	if path == "" {
		return memory.NewCatalog(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog seed: %w", err)
	}
	defer f.Close()
	return memory.LoadCatalog(f)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderReader() queries.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreateEditOrderCommandHandler() commands.EditOrderCommandHandler {
	return commands.NewEditOrderCommandHandler(c.orderUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	return commands.NewPayOrderCommandHandler(c.orderUoWFactory(), c.displayCatalog)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader(), c.displayCatalog)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orderReader(), c.displayCatalog)
}

// CreateJobManager returns nil when no event broker is configured; events
// then stay in the outbox until one is.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if c.publisher == nil {
		c.logger.Warn("KAFKA_BROKERS not set, outbox relay disabled")
		return nil
	}
	relay := commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), c.publisher)
	return jobs.NewJobManager(&relay, jobs.Config{
		RelaySchedule:  c.cfg.OutboxRelaySchedule,
		RelayBatchSize: c.cfg.OutboxBatchSize,
	}, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	server := httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateEditOrderCommandHandler(),
		c.CreatePayOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		httpadapter.NewMetrics(c.registry),
		c.logger,
	)
	if c.breaker != nil {
		server.AddHealthCheck("catalog", c.breaker.Check)
	}
	return server
}

// Close releases the Redis client and the Kafka writer.
func (c *CompositionRoot) Close() error {
	var errList []error
	for _, closeFn := range c.closers {
		errList = append(errList, closeFn())
	}
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
