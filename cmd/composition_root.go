package cmd

import (
	"context"
	"log/slog"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/adapters/in/http"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/adapters/out/postgres"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/application/lifecycle"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/application/usecases/commands"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/application/usecases/queries"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/ports"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases and the lifecycle coordinator.
// The coordinator is a process-wide singleton: its in-flight guard only
// works if every caller goes through the same instance.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	logger      *slog.Logger
	uowFactory  *postgres.GormUnitOfWorkFactory
	coordinator *lifecycle.Coordinator
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
	}
	root.coordinator = lifecycle.NewCoordinator(root.createOrderStore(), logger)
	return root
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

// Coordinator returns the process-wide lifecycle coordinator.
func (c *CompositionRoot) Coordinator() *lifecycle.Coordinator {
	return c.coordinator
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateGetOrdersByStatusQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		c.coordinator,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.coordinator,
		c.uowFactory.Create().OrderRepository(),
		c.config.CacheRefreshSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) createOrderStore() lifecycle.OrderStore {
	return &commandOrderStore{
		changeHandler: c.CreateChangeOrderStatusCommandHandler(),
		repository:    c.uowFactory.Create().OrderRepository(),
	}
}

// commandOrderStore adapts the command and repository layer to the
// coordinator's view of the authoritative store.
type commandOrderStore struct {
	changeHandler commands.ChangeOrderStatusCommandHandler
	repository    ports.OrderRepository
}

func (s *commandOrderStore) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return s.repository.Get(ctx, id)
}

func (s *commandOrderStore) ChangeStatus(
	ctx context.Context,
	id kernel.UUID,
	to order.Status,
	note, actor string,
) (*order.Order, error) {
	cmd, err := commands.NewChangeOrderStatusCommand(id, to, note, actor)
	if err != nil {
		return nil, err
	}
	return s.changeHandler.Handle(ctx, cmd)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
