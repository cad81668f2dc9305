//go:build integration

package main_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shareit-market/shareit/internal/application"
	"github.com/shareit-market/shareit/internal/events"
	"github.com/shareit-market/shareit/internal/repository"
)

// serviceStack holds the fully wired application services over a real
// PostgreSQL instance.
type serviceStack struct {
	DB       *gorm.DB
	Users    *application.UserService
	Items    *application.ItemService
	Bookings *application.BookingService
	Requests *application.RequestService
}

// setupPostgres starts a PostgreSQL testcontainer and returns a connected
// GORM DB with the schema migrated.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_shareit",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_shareit sslmode=disable", host, port.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.RequestModel{},
		&repository.ItemModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	))
	return db
}

// setupStack wires the full service stack over the given database. Events
// are discarded; the booking flows under test do not depend on them.
func setupStack(t *testing.T, db *gorm.DB) *serviceStack {
	t.Helper()
	logger := zap.NewNop()

	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	return &serviceStack{
		DB:    db,
		Users: application.NewUserService(userRepo, logger),
		Items: application.NewItemService(itemRepo, commentRepo, bookingRepo, userRepo, logger),
		Bookings: application.NewBookingService(
			bookingRepo,
			application.NewUserDirectory(userRepo),
			application.NewItemCatalog(itemRepo),
			events.NopPublisher{},
			logger,
		),
		Requests: application.NewRequestService(requestRepo, itemRepo, userRepo, logger),
	}
}

// createUser registers a user and returns its id.
func createUser(t *testing.T, stack *serviceStack, name, email string) int64 {
	t.Helper()
	dto, err := stack.Users.CreateUser(context.Background(), application.CreateUserRequest{Name: name, Email: email})
	require.NoError(t, err)
	return dto.ID
}

// createItem lists an available item for the owner and returns its id.
func createItem(t *testing.T, stack *serviceStack, ownerID int64, name string) int64 {
	t.Helper()
	available := true
	dto, err := stack.Items.CreateItem(context.Background(), ownerID, application.CreateItemRequest{
		Name:        name,
		Description: name + " description",
		Available:   &available,
	})
	require.NoError(t, err)
	return dto.ID
}

// seedBooking inserts a booking row in an arbitrary lifecycle state with
// an arbitrary window, bypassing the future-window creation rule.
func seedBooking(t *testing.T, db *gorm.DB, itemID, bookerID int64, state string, start, end time.Time) int64 {
	t.Helper()
	now := time.Now().UTC()
	model := repository.BookingModel{
		ItemID:    itemID,
		BookerID:  bookerID,
		State:     state,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed booking")
	return model.ID
}

// seedPastBooking inserts an approved booking whose window already elapsed.
func seedPastBooking(t *testing.T, db *gorm.DB, itemID, bookerID int64) int64 {
	t.Helper()
	now := time.Now().UTC()
	return seedBooking(t, db, itemID, bookerID, "PAST", now.Add(-2*time.Hour), now.Add(-time.Hour))
}
