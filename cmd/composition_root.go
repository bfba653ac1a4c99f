package cmd

import (
	"log/slog"
	"time"

	httpin "forwarding/internal/adapters/in/http"
	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"
	"forwarding/internal/jobs"
)

// serviceUserID identifies the service itself when a job acts without a caller.
const serviceUserID = "00000000-0000-4000-8000-000000000001"

type CompositionRoot struct {
	uowFactory ports.UnitOfWorkFactory
	reader     ports.ReportReader
	publisher  ports.EventPublisher
	clock      ports.Clock

	loc             *time.Location
	deletePolicy    branch.DeletePolicy
	summarySchedule string
	logger          *slog.Logger
}

// NewCompositionRoot wires the use cases over one store. uowFactory and
// reader must read the same data.
func NewCompositionRoot(
	cfg Config,
	uowFactory ports.UnitOfWorkFactory,
	reader ports.ReportReader,
	publisher ports.EventPublisher,
	clock ports.Clock,
	logger *slog.Logger,
) CompositionRoot {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return CompositionRoot{
		uowFactory:      uowFactory,
		reader:          reader,
		publisher:       publisher,
		clock:           clock,
		loc:             loc,
		deletePolicy:    cfg.BranchDeletePolicy,
		summarySchedule: cfg.SummaryJobSchedule,
		logger:          logger,
	}
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) consolidationUoWs() commands.ConsolidationUoWFactory {
	return FuncConsolidationUoWFactory(func() commands.ConsolidationUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) branchUoWs() commands.BranchUoWFactory {
	return FuncBranchUoWFactory(func() commands.BranchUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) operationsUoWs() commands.OperationsUoWFactory {
	return FuncOperationsUoWFactory(func() commands.OperationsUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) userBlockUoWs() commands.UserBlockUoWFactory {
	return FuncUserBlockUoWFactory(func() commands.UserBlockUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) readModels() queries.ReadModelFactory {
	return FuncReadModelFactory(func() queries.ReadModel { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWs(), c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.orderUoWs(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateCombineOrdersCommandHandler() commands.CombineOrdersCommandHandler {
	return commands.NewCombineOrdersCommandHandler(c.consolidationUoWs(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateDecombineShipmentCommandHandler() commands.DecombineShipmentCommandHandler {
	return commands.NewDecombineShipmentCommandHandler(c.consolidationUoWs(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateCreateBranchCommandHandler() commands.CreateBranchCommandHandler {
	return commands.NewCreateBranchCommandHandler(c.branchUoWs())
}

func (c *CompositionRoot) CreateUpdateBranchCommandHandler() commands.UpdateBranchCommandHandler {
	return commands.NewUpdateBranchCommandHandler(c.branchUoWs())
}

func (c *CompositionRoot) CreateDeleteBranchCommandHandler() commands.DeleteBranchCommandHandler {
	return commands.NewDeleteBranchCommandHandler(c.branchUoWs(), c.deletePolicy)
}

func (c *CompositionRoot) CreateSaveFlightCommandHandler() commands.SaveFlightCommandHandler {
	return commands.NewSaveFlightCommandHandler(c.operationsUoWs(), c.clock)
}

func (c *CompositionRoot) CreateSaveBagCommandHandler() commands.SaveBagCommandHandler {
	return commands.NewSaveBagCommandHandler(c.operationsUoWs(), c.clock)
}

func (c *CompositionRoot) CreateAddOrderToBagCommandHandler() commands.AddOrderToBagCommandHandler {
	return commands.NewAddOrderToBagCommandHandler(c.operationsUoWs(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateAssignBagToFlightCommandHandler() commands.AssignBagToFlightCommandHandler {
	return commands.NewAssignBagToFlightCommandHandler(c.operationsUoWs())
}

func (c *CompositionRoot) CreateShelveOrderCommandHandler() commands.ShelveOrderCommandHandler {
	return commands.NewShelveOrderCommandHandler(c.operationsUoWs(), c.clock)
}

func (c *CompositionRoot) CreateBlockUserCommandHandler() commands.BlockUserCommandHandler {
	return commands.NewBlockUserCommandHandler(c.userBlockUoWs(), c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readModels())
}

func (c *CompositionRoot) CreateListOrdersForUserQueryHandler() queries.ListOrdersForUserQueryHandler {
	return queries.NewListOrdersForUserQueryHandler(c.readModels())
}

func (c *CompositionRoot) CreateListCombinedShipmentsQueryHandler() queries.ListCombinedShipmentsQueryHandler {
	return queries.NewListCombinedShipmentsQueryHandler(c.readModels(), c.loc)
}

func (c *CompositionRoot) CreateListBranchesQueryHandler() queries.ListBranchesQueryHandler {
	return queries.NewListBranchesQueryHandler(c.readModels())
}

func (c *CompositionRoot) CreateRunReportQueryHandler() queries.RunReportQueryHandler {
	return queries.NewRunReportQueryHandler(c.reader, c.clock, c.loc)
}

// HTTPHandlers collects every use case served by the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		UpdateOrder:           c.CreateUpdateOrderCommandHandler(),
		TransitionOrderStatus: c.CreateTransitionOrderStatusCommandHandler(),
		CombineOrders:         c.CreateCombineOrdersCommandHandler(),
		DecombineShipment:     c.CreateDecombineShipmentCommandHandler(),
		CreateBranch:          c.CreateCreateBranchCommandHandler(),
		UpdateBranch:          c.CreateUpdateBranchCommandHandler(),
		DeleteBranch:          c.CreateDeleteBranchCommandHandler(),
		SaveFlight:            c.CreateSaveFlightCommandHandler(),
		SaveBag:               c.CreateSaveBagCommandHandler(),
		AddOrderToBag:         c.CreateAddOrderToBagCommandHandler(),
		AssignBagToFlight:     c.CreateAssignBagToFlightCommandHandler(),
		ShelveOrder:           c.CreateShelveOrderCommandHandler(),
		BlockUser:             c.CreateBlockUserCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListOrdersForUser:     c.CreateListOrdersForUserQueryHandler(),
		ListCombinedShipments: c.CreateListCombinedShipmentsQueryHandler(),
		ListBranches:          c.CreateListBranchesQueryHandler(),
		RunReport:             c.CreateRunReportQueryHandler(),
	}
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(c.HTTPHandlers(), c.logger)
}

// CreateJobManager builds the scheduled jobs. They act as the service
// itself with the administrator role.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	serviceID, err := kernel.UUIDFromString(serviceUserID)
	if err != nil {
		return nil, err
	}
	service, err := access.NewActor(serviceID, access.Admin)
	if err != nil {
		return nil, err
	}

	summary := jobs.NewMonthlySummaryJob(
		c.CreateRunReportQueryHandler(), service, c.clock, c.loc, c.summarySchedule, c.logger,
	)
	return jobs.NewJobManager(summary), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncConsolidationUoWFactory func() commands.ConsolidationUoW

func (f FuncConsolidationUoWFactory) Create() commands.ConsolidationUoW {
	return f()
}

type FuncBranchUoWFactory func() commands.BranchUoW

func (f FuncBranchUoWFactory) Create() commands.BranchUoW {
	return f()
}

type FuncOperationsUoWFactory func() commands.OperationsUoW

func (f FuncOperationsUoWFactory) Create() commands.OperationsUoW {
	return f()
}

type FuncUserBlockUoWFactory func() commands.UserBlockUoW

func (f FuncUserBlockUoWFactory) Create() commands.UserBlockUoW {
	return f()
}

type FuncReadModelFactory func() queries.ReadModel

func (f FuncReadModelFactory) Create() queries.ReadModel {
	return f()
}
