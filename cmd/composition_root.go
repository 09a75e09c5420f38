package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "lavka/internal/adapters/in/http"
	"lavka/internal/adapters/out/postgres"
	"lavka/internal/core/application/usecases/commands"
	"lavka/internal/core/application/usecases/queries"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/core/domain/services"
	"lavka/internal/jobs"
	"lavka/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Collectors
	logger     *slog.Logger

	locks      *commands.CatalogLocks
	engine     services.AssignmentEngine
	courierIDs *kernel.IDAllocator
	orderIDs   *kernel.IDAllocator
}

// NewCompositionRoot wires the domain services and seeds the id allocators
// from the greatest stored ids, so that numbering continues after a restart.
func NewCompositionRoot(
	ctx context.Context,
	config Config,
	gormDB *gorm.DB,
	collectors *metrics.Collectors,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	engine, err := services.NewAssignmentEngine(services.Capacity{
		Foot: config.FootCapacity,
		Bike: config.BikeCapacity,
		Auto: config.AutoCapacity,
	})
	if err != nil {
		return nil, fmt.Errorf("assignment engine: %w", err)
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	if collectors != nil {
		uowFactory = uowFactory.WithObserver(collectors)
	}
	uow := uowFactory.Create()

	lastCourier, err := uow.CourierRepository().MaxID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read last courier id: %w", err)
	}
	courierIDs, err := kernel.NewIDAllocatorFrom(lastCourier.Int64())
	if err != nil {
		return nil, err
	}

	lastOrder, err := uow.OrderRepository().MaxID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read last order id: %w", err)
	}
	orderIDs, err := kernel.NewIDAllocatorFrom(lastOrder.Int64())
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "id allocators seeded",
		"last_courier_id", lastCourier.Int64(),
		"last_order_id", lastOrder.Int64(),
	)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: uowFactory,
		metrics:    collectors,
		logger:     logger,
		locks:      commands.NewCatalogLocks(),
		engine:     engine,
		courierIDs: courierIDs,
		orderIDs:   orderIDs,
	}, nil
}

func (c *CompositionRoot) CreateCreateCouriersCommandHandler() commands.CreateCouriersCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCouriersCommandHandler(f, c.courierIDs, c.locks)
}

func (c *CompositionRoot) CreateCreateOrdersCommandHandler() commands.CreateOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrdersCommandHandler(f, c.orderIDs, c.locks)
}

func (c *CompositionRoot) CreateCompleteOrdersCommandHandler() commands.CompleteOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrdersCommandHandler(f, services.NewCompletionValidator(), c.locks)
}

func (c *CompositionRoot) CreateAssignOrdersCommandHandler() commands.AssignOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrdersCommandHandler(f, c.engine, c.locks)
}

func (c *CompositionRoot) CreateGetCouriersQueryHandler() queries.GetCouriersQueryHandler {
	return queries.NewGetCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierQueryHandler() queries.GetCourierQueryHandler {
	return queries.NewGetCourierQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierMetaInfoQueryHandler() queries.GetCourierMetaInfoQueryHandler {
	return queries.NewGetCourierMetaInfoQueryHandler(c.uowFactory, services.NewMetricsCalculator())
}

func (c *CompositionRoot) CreateGetCourierAssignmentsQueryHandler() queries.GetCourierAssignmentsQueryHandler {
	return queries.NewGetCourierAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST server over every use case.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateCouriers:        c.CreateCreateCouriersCommandHandler(),
		CreateOrders:          c.CreateCreateOrdersCommandHandler(),
		CompleteOrders:        c.CreateCompleteOrdersCommandHandler(),
		AssignOrders:          c.CreateAssignOrdersCommandHandler(),
		GetCouriers:           c.CreateGetCouriersQueryHandler(),
		GetCourier:            c.CreateGetCourierQueryHandler(),
		GetCourierMetaInfo:    c.CreateGetCourierMetaInfoQueryHandler(),
		GetCourierAssignments: c.CreateGetCourierAssignmentsQueryHandler(),
		GetOrders:             c.CreateGetOrdersQueryHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
	}, c.Ping, c.metrics)
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAssignOrdersCommandHandler(),
		jobs.Config{
			AssignmentSchedule: c.config.AssignmentSchedule,
			AssignmentTimeout:  c.config.AssignmentTimeout,
		},
		c.metrics,
		c.logger,
	)
}

// Ping checks the database connection.
func (c *CompositionRoot) Ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
