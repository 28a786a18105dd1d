package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpadapter "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/memory"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/migrations"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/ports"
	"orders/internal/jobs"

	"github.com/labstack/echo/v4"
)

// CompositionRoot wires adapters to use cases for the configured storage.
type CompositionRoot struct {
	cfg         Config
	logger      *slog.Logger
	uowFactory  ports.UnitOfWorkFactory
	orderReader queries.OrderReader
	clock       commands.Clock
	closeFn     func() error
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		clock:   commands.SystemClock,
		closeFn: func() error { return nil },
	}

	switch cfg.Storage {
	case StorageMemory:
		store := memory.NewStore()
		root.uowFactory = memory.NewUnitOfWorkFactory(store)
		root.orderReader = memory.NewOrderRepository(store)
		logger.Warn("using in-memory storage, orders are lost on restart")

	case StoragePostgres:
		if cfg.DBAutoMigrate {
			if err := migrations.Up(ctx, cfg.DSN()); err != nil {
				return nil, err
			}
		}
		db, err := postgres.Connect(ctx, cfg.DSN())
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("unwrap postgres connection: %w", err)
		}
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		root.orderReader = orderrepo.NewGormOrderRepository(db)
		root.closeFn = sqlDB.Close

	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	return root, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.clock, c.cfg.CompletionDelay)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeDueCompletionsCommandHandler() commands.FinalizeDueCompletionsCommandHandler {
	return commands.NewFinalizeDueCompletionsCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.orderReader)
}

// CreateRouter builds the echo instance serving the API and its documentation.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateCompleteOrderCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.logger,
	)
	return httpadapter.NewRouter(server, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(
		c.CreateFinalizeDueCompletionsCommandHandler(),
		jobs.Config{
			CompletionSchedule:  c.cfg.CompletionSchedule,
			CompletionBatchSize: c.cfg.CompletionBatchSize,
		},
		c.logger,
	)
}

// Close releases the storage connection.
func (c *CompositionRoot) Close() error {
	return c.closeFn()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
