package itemrepo_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"cargotrack/internal/adapters/out/postgres/itemrepo"
	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/errs"

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

// ItemRepositoryIntegrationTestSuite provides integration tests for ItemRepository
// using PostgreSQL containers to verify database persistence behavior.
type ItemRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *itemrepo.GormItemRepository
	tracker    *MockAggregateTracker
	itemSeq    int
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupSuite() {
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
	suite.Require().NoError(db.AutoMigrate(&itemrepo.ItemDTO{}))
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE items").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = itemrepo.NewGormItemRepository(suite.db, suite.tracker)
}

func (suite *ItemRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAdd_ValidItem_Success() {
	ctx := context.Background()

	testItem := suite.createTestItem(kernel.NewUUID())

	suite.tracker.On("TrackAggregate", testItem.ID(), testItem).Once()

	err := suite.repository.Add(ctx, testItem)
	suite.Require().NoError(err)

	suite.assertItemCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingNumber_ReturnsDuplicateError() {
	ctx := context.Background()

	existing := suite.createTestItem(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", existing.ID(), existing).Once()
	suite.Require().NoError(suite.repository.Add(ctx, existing))

	// Same tracking number, fresh everything else
	duplicate, err := item.NewItem(
		kernel.NewUUID(),
		kernel.NewUUID(),
		existing.Number(),
		fmt.Sprintf("QR-%s", kernel.NewUUID()),
		existing.Contact(),
		existing.Address(),
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, duplicate)
	suite.Require().Error(err)

	var dupErr *errs.DuplicateIdentifierError
	suite.Require().ErrorAs(err, &dupErr)
	suite.Contains(err.Error(), "itemNumber")

	suite.assertItemCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAdd_DuplicateQRCode_ReturnsDuplicateError() {
	ctx := context.Background()

	existing := suite.createTestItem(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", existing.ID(), existing).Once()
	suite.Require().NoError(suite.repository.Add(ctx, existing))

	suite.itemSeq++
	number, err := item.NewNumber(fmt.Sprintf("CB-2024-%06d", suite.itemSeq))
	suite.Require().NoError(err)

	duplicate, err := item.NewItem(
		kernel.NewUUID(),
		kernel.NewUUID(),
		number,
		existing.QRCode(),
		existing.Contact(),
		existing.Address(),
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, duplicate)
	suite.Require().Error(err)

	var dupErr *errs.DuplicateIdentifierError
	suite.Require().ErrorAs(err, &dupErr)
	suite.Contains(err.Error(), "qrCode")

	suite.assertItemCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAddAll_MultipleItems_PersistsAll() {
	ctx := context.Background()

	batchID := kernel.NewUUID()
	items := []*item.Item{
		suite.createTestItem(batchID),
		suite.createTestItem(batchID),
		suite.createTestItem(batchID),
	}

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	err := suite.repository.AddAll(ctx, items)
	suite.Require().NoError(err)

	suite.assertItemCount(3)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestAddAll_EmptySlice_NoOp() {
	ctx := context.Background()

	err := suite.repository.AddAll(ctx, nil)
	suite.Require().NoError(err)

	suite.assertItemCount(0)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGet_ExistingItem_ReturnsItem() {
	ctx := context.Background()

	original := suite.createTestItem(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.BatchID(), retrieved.BatchID())
	suite.Equal(original.Number().String(), retrieved.Number().String())
	suite.Equal(original.QRCode(), retrieved.QRCode())
	suite.Equal(original.Contact().Name(), retrieved.Contact().Name())
	suite.Equal(original.Address().State(), retrieved.Address().State())
	suite.Equal(item.Received, retrieved.Status())
	suite.Nil(retrieved.RiderID())
	suite.Nil(retrieved.HubID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGet_NonExistentItem_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_ItemStatusTransitions() {
	testCases := []struct {
		name    string
		advance func(*item.Item) error
		verify  func(*item.Item)
	}{
		{
			name: "received to stored",
			advance: func(i *item.Item) error {
				return i.CheckIn("HUB-LAG-01")
			},
			verify: func(i *item.Item) {
				suite.Equal(item.Stored, i.Status())
				suite.Require().NotNil(i.HubID())
				suite.Equal("HUB-LAG-01", *i.HubID())
			},
		},
		{
			name: "stored to dispatched",
			advance: func(i *item.Item) error {
				if err := i.CheckIn("HUB-LAG-01"); err != nil {
					return err
				}
				eta := time.Now().UTC().Add(48 * time.Hour)
				return i.Dispatch("R001", time.Now().UTC(), &eta)
			},
			verify: func(i *item.Item) {
				suite.Equal(item.Dispatched, i.Status())
				suite.Require().NotNil(i.RiderID())
				suite.Equal("R001", *i.RiderID())
				suite.NotNil(i.DispatchedAt())
				suite.NotNil(i.EstimatedDeliveredAt())
			},
		},
		{
			name: "dispatched to delivered",
			advance: func(i *item.Item) error {
				if err := i.CheckIn("HUB-LAG-01"); err != nil {
					return err
				}
				eta := time.Now().UTC().Add(48 * time.Hour)
				if err := i.Dispatch("R001", time.Now().UTC(), &eta); err != nil {
					return err
				}
				if err := i.MarkInTransit(); err != nil {
					return err
				}
				return i.MarkDelivered(time.Now().UTC())
			},
			verify: func(i *item.Item) {
				suite.Equal(item.Delivered, i.Status())
				suite.NotNil(i.DeliveredAt())
			},
		},
	}

	ctx := context.Background()
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			testItem := suite.createTestItem(kernel.NewUUID())
			suite.tracker.On("TrackAggregate", testItem.ID(), testItem).Twice()

			err := suite.repository.Add(ctx, testItem)
			suite.Require().NoError(err)

			suite.Require().NoError(tc.advance(testItem))

			err = suite.repository.Update(ctx, testItem)
			suite.Require().NoError(err)

			retrieved, err := suite.repository.Get(ctx, testItem.ID())
			suite.Require().NoError(err)
			tc.verify(retrieved)

			suite.tracker.AssertExpectations(suite.T())
		})
	}
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_NonExistentItem_ReturnsError() {
	ctx := context.Background()

	nonExistent := suite.createTestItem(kernel.NewUUID())

	// No expectations on tracker since operation should fail

	err := suite.repository.Update(ctx, nonExistent)
	suite.Require().Error(err)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGetAllByBatch_ReturnsOnlyBatchItems() {
	ctx := context.Background()

	batchID := kernel.NewUUID()
	otherBatchID := kernel.NewUUID()

	inBatch := []*item.Item{
		suite.createTestItem(batchID),
		suite.createTestItem(batchID),
	}
	outOfBatch := suite.createTestItem(otherBatchID)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	suite.Require().NoError(suite.repository.AddAll(ctx, inBatch))
	suite.Require().NoError(suite.repository.Add(ctx, outOfBatch))

	retrieved, err := suite.repository.GetAllByBatch(ctx, batchID)
	suite.Require().NoError(err)

	suite.Len(retrieved, 2)
	for _, got := range retrieved {
		suite.Equal(batchID, got.BatchID())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestGetAllByBatch_NoItems_ReturnsEmptySlice() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetAllByBatch(ctx, kernel.NewUUID())
	suite.Require().NoError(err)

	suite.Empty(retrieved)
	suite.tracker.AssertExpectations(suite.T())
}

// TestItemRepository_ErrorScenarios verifies error handling for various failure cases.
func (suite *ItemRepositoryIntegrationTestSuite) TestItemRepository_ErrorScenarios() {
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
			name: "get non-existent item",
			operation: func() error {
				_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
				return err
			},
			expected: "not found",
		},
		{
			name: "update non-existent item",
			operation: func() error {
				return suite.repository.Update(context.Background(), suite.createTestItem(kernel.NewUUID()))
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

// createTestItem creates a valid item with unique tracking number and QR code.
func (suite *ItemRepositoryIntegrationTestSuite) createTestItem(batchID kernel.UUID) *item.Item {
	suite.itemSeq++
	number, err := item.NewNumber(fmt.Sprintf("CB-2024-%06d", suite.itemSeq))
	suite.Require().NoError(err)

	contact, err := kernel.NewContact("Ada Obi", "+2348012345678", "ada@example.com")
	suite.Require().NoError(err)

	address, err := kernel.NewAddress("12 Marina Rd", "Lagos", "Ikeja")
	suite.Require().NoError(err)

	testItem, err := item.NewItem(
		kernel.NewUUID(),
		batchID,
		number,
		fmt.Sprintf("QR-%s", kernel.NewUUID()),
		contact,
		address,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testItem
}

// assertItemCount verifies the number of items in the database.
func (suite *ItemRepositoryIntegrationTestSuite) assertItemCount(expected int) {
	var count int64
	err := suite.db.Model(&itemrepo.ItemDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestItemRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ItemRepositoryIntegrationTestSuite))
}
