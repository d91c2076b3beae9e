package service

import (
	"context"
	"os"
	"testing"
	"time"

	"shareit/internal/database"
	"shareit/internal/events"
	"shareit/internal/models"
	"shareit/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// testEnv wires the services against an in-memory sqlite database and an
// in-memory cache, close to the production composition.
type testEnv struct {
	db       *database.DB
	cache    *repository.MemorySearchCache
	bus      *events.EventBus
	users    *UserService
	items    *ItemService
	bookings *BookingService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.New(os.Stdout)

	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cache := repository.NewMemorySearchCache(time.Minute)
	bus := events.NewEventBus()

	return &testEnv{
		db:       db,
		cache:    cache,
		bus:      bus,
		users:    NewUserService(db, &logger),
		items:    NewItemService(db, cache, bus, &logger),
		bookings: NewBookingService(db, bus, &logger),
	}
}

func (e *testEnv) createUser(t *testing.T, email string) models.UserDto {
	t.Helper()
	user, err := e.users.Create(context.Background(), models.UserDto{Name: "User " + email, Email: email})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createItem(t *testing.T, ownerID int64, name string, available bool) models.ItemDto {
	t.Helper()
	item, err := e.items.Create(context.Background(), models.ItemDto{
		Name:        name,
		Description: name + " description",
		Available:   &available,
	}, ownerID)
	require.NoError(t, err)
	return item
}

func (e *testEnv) createRawBooking(t *testing.T, itemID, bookerID int64, start, end time.Time, status string) *models.Booking {
	t.Helper()
	booking := &models.Booking{Start: start, End: end, ItemID: itemID, BookerID: bookerID, Status: status}
	require.NoError(t, e.db.CreateBooking(context.Background(), booking))
	return booking
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
