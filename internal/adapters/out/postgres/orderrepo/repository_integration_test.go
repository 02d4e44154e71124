package orderrepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/adapters/out/postgres/orderrepo"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/kernel"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/core/domain/model/order"
	"github.com/Thigzz/Group-8-Beauty-Shop-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&orderrepo.StatusEventDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items, status_events").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	// The order row, its line items and the creation event are all persisted
	suite.assertOrderCount(1)
	suite.assertEventCount(testOrder.ID(), 1)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsHydratedOrder() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(originalOrder.ID(), retrievedOrder.ID())
	suite.Equal(order.Pending, retrievedOrder.Status())
	suite.Equal(originalOrder.Totals().GrandTotal().Cents(), retrievedOrder.Totals().GrandTotal().Cents())
	suite.Require().Len(retrievedOrder.Items(), 1)
	suite.Equal(originalOrder.Items()[0].ProductID(), retrievedOrder.Items()[0].ProductID())

	// The creation event round-trips with its actor and nil previous status
	suite.Require().Len(retrievedOrder.History(), 1)
	suite.Equal(order.ActorSystem, retrievedOrder.History()[0].Actor)
	suite.Nil(retrievedOrder.History()[0].PreviousStatus)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	nonExistentID := kernel.NewUUID()
	retrievedOrder, err := suite.repository.Get(ctx, nonExistentID)

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsOnlyNewHistoryEntries() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.ChangeStatus(order.Paid, "card settled", "admin", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Paid, retrievedOrder.Status())
	suite.Require().Len(retrievedOrder.History(), 2)
	suite.Equal("card settled", retrievedOrder.History()[1].Note)
	suite.Equal("admin", retrievedOrder.History()[1].Actor)
	suite.Require().NotNil(retrievedOrder.History()[1].PreviousStatus)
	suite.Equal(order.Pending, *retrievedOrder.History()[1].PreviousStatus)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RepeatedUpdate_DoesNotDuplicateHistory() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.ChangeStatus(order.Paid, "", "admin", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	// Writing the same aggregate again must not insert the event twice
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))
	suite.assertEventCount(testOrder.ID(), 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_FullLifecycle_PreservesEarlierEntries() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Times(4)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	transitions := []order.Status{order.Paid, order.Dispatched, order.Delivered}
	for _, to := range transitions {
		suite.Require().NoError(testOrder.ChangeStatus(to, "", "admin", time.Now()))
		suite.Require().NoError(suite.repository.Update(ctx, testOrder))
	}

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Delivered, retrievedOrder.Status())
	suite.Require().Len(retrievedOrder.History(), 4)
	suite.Equal(order.Pending, retrievedOrder.History()[0].Status)
	suite.Equal(order.Paid, retrievedOrder.History()[1].Status)
	suite.Equal(order.Dispatched, retrievedOrder.History()[2].Status)
	suite.Equal(order.Delivered, retrievedOrder.History()[3].Status)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	nonExistentOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, nonExistentOrder)
	suite.Require().Error(err)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	suite.createOrderInStatus(ctx, order.Pending)
	suite.createOrderInStatus(ctx, order.Paid)
	suite.createOrderInStatus(ctx, order.Paid)

	paidOrders, err := suite.repository.GetAllInStatus(ctx, order.Paid)
	suite.Require().NoError(err)
	suite.Len(paidOrders, 2)
	for _, paidOrder := range paidOrders {
		suite.Equal(order.Paid, paidOrder.Status())
	}

	cancelledOrders, err := suite.repository.GetAllInStatus(ctx, order.Cancelled)
	suite.Require().NoError(err)
	suite.Empty(cancelledOrders)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesTerminalOrders() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)

	pending := suite.createOrderInStatus(ctx, order.Pending)
	dispatched := suite.createOrderInStatus(ctx, order.Dispatched)
	suite.createOrderInStatus(ctx, order.Delivered)
	suite.createOrderInStatus(ctx, order.Cancelled)

	activeOrders, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(activeOrders, 2)
	activeIDs := []kernel.UUID{activeOrders[0].ID(), activeOrders[1].ID()}
	suite.Contains(activeIDs, pending.ID())
	suite.Contains(activeIDs, dispatched.ID())

	suite.tracker.AssertExpectations(suite.T())
}

// TestOrderRepository_ErrorScenarios verifies error handling for various failure cases.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_ErrorScenarios() {
	testCases := []struct {
		name      string
		operation func() error
		expected  string
	}{
		{
			name: "get with invalid UUID",
			operation: func() error {
				invalidID := kernel.UUID{}
				_, err := suite.repository.Get(context.Background(), invalidID)
				return err
			},
			expected: "required",
		},
		{
			name: "get non-existent order",
			operation: func() error {
				nonExistentID := kernel.NewUUID()
				_, err := suite.repository.Get(context.Background(), nonExistentID)
				return err
			},
			expected: "not found",
		},
		{
			name: "update non-existent order",
			operation: func() error {
				nonExistentOrder := suite.createTestOrder()
				return suite.repository.Update(context.Background(), nonExistentOrder)
			},
			expected: "record not found",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := tc.operation()
			suite.Require().Error(err)
			suite.Contains(strings.ToLower(err.Error()), strings.ToLower(tc.expected))
			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

// TestOrderRepository_Concurrency verifies repository behavior under concurrent access.
func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_Concurrency() {
	ctx := context.Background()

	initialOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", initialOrder.ID(), initialOrder).Once()
	err := suite.repository.Add(ctx, initialOrder)
	suite.Require().NoError(err)

	// Simulate concurrent reads
	results := make(chan *order.Order, 3)
	errors := make(chan error, 3)

	for range 3 {
		go func() {
			retrievedOrder, readErr := suite.repository.Get(ctx, initialOrder.ID())
			if readErr != nil {
				errors <- readErr
			} else {
				results <- retrievedOrder
			}
		}()
	}

	for range 3 {
		select {
		case result := <-results:
			suite.Equal(initialOrder.ID(), result.ID())
		case readErr := <-errors:
			suite.Failf("Unexpected error in concurrent read", "%v", readErr)
		}
	}

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a basic pending test order with one line item.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	price, err := kernel.NewMoney(2500)
	suite.Require().NoError(err)
	item, err := order.NewLineItem(kernel.NewUUID(), 2, price)
	suite.Require().NoError(err)

	subtotal, err := kernel.NewMoney(5000)
	suite.Require().NoError(err)
	shipping, err := kernel.NewMoney(500)
	suite.Require().NoError(err)
	totals, err := order.NewTotals(subtotal, shipping, kernel.Money{}, kernel.Money{})
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), []order.LineItem{item}, totals, time.Now())
	suite.Require().NoError(err)
	return testOrder
}

// createOrderInStatus creates and persists an order walked to the given status.
func (suite *OrderRepositoryIntegrationTestSuite) createOrderInStatus(
	ctx context.Context, status order.Status,
) *order.Order {
	testOrder := suite.createTestOrder()

	paths := map[order.Status][]order.Status{
		order.Pending:    {},
		order.Paid:       {order.Paid},
		order.Dispatched: {order.Paid, order.Dispatched},
		order.Delivered:  {order.Paid, order.Dispatched, order.Delivered},
		order.Cancelled:  {order.Cancelled},
	}
	for _, to := range paths[status] {
		suite.Require().NoError(testOrder.ChangeStatus(to, "", "admin", time.Now()))
	}

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

// assertEventCount verifies the number of history entries stored for an order.
func (suite *OrderRepositoryIntegrationTestSuite) assertEventCount(id kernel.UUID, expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.StatusEventDTO{}).
		Where("order_id = ?", id.Bytes()).
		Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
