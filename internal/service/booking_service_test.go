package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingService_Create(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com")
	booker := env.createUser(t, "booker@example.com")
	item := env.createItem(t, owner.ID, "Drill", true)

	start := time.Now().Add(24 * time.Hour)
	dto := models.BookingDto{ItemID: item.ID, Start: start, End: start.Add(24 * time.Hour)}

	out, err := env.bookings.Create(ctx, dto, booker.ID)
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, models.StatusWaiting, out.Status)
	assert.Equal(t, booker.ID, out.Booker.ID)
	assert.Equal(t, item.ID, out.Item.ID)
}

func TestBookingService_CreateValidation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com")
	booker := env.createUser(t, "booker@example.com")
	item := env.createItem(t, owner.ID, "Drill", true)
	unavailable := env.createItem(t, owner.ID, "Broken saw", false)

	start := time.Now().Add(24 * time.Hour)

	// start must be strictly before end
	_, err := env.bookings.Create(ctx, models.BookingDto{ItemID: item.ID, Start: start, End: start}, booker.ID)
	assert.ErrorIs(t, err, database.ErrBookingValidation)

	_, err = env.bookings.Create(ctx, models.BookingDto{ItemID: item.ID, Start: start.Add(time.Hour), End: start}, booker.ID)
	assert.ErrorIs(t, err, database.ErrBookingValidation)

	// Owners cannot book their own items
	_, err = env.bookings.Create(ctx, models.BookingDto{ItemID: item.ID, Start: start, End: start.Add(time.Hour)}, owner.ID)
	assert.ErrorIs(t, err, database.ErrUserAccess)

	// Unavailable item
	_, err = env.bookings.Create(ctx, models.BookingDto{ItemID: unavailable.ID, Start: start, End: start.Add(time.Hour)}, booker.ID)
	assert.ErrorIs(t, err, database.ErrBookingValidation)

	// Missing booker or item
	_, err = env.bookings.Create(ctx, models.BookingDto{ItemID: item.ID, Start: start, End: start.Add(time.Hour)}, 9999)
	assert.ErrorIs(t, err, database.ErrUserNotFound)

	_, err = env.bookings.Create(ctx, models.BookingDto{ItemID: 9999, Start: start, End: start.Add(time.Hour)}, booker.ID)
	assert.ErrorIs(t, err, database.ErrItemNotFound)
}

func TestBookingService_SetBookingApproval(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com")
	booker := env.createUser(t, "booker@example.com")
	item := env.createItem(t, owner.ID, "Drill", true)

	start := time.Now().Add(24 * time.Hour)
	created, err := env.bookings.Create(ctx, models.BookingDto{ItemID: item.ID, Start: start, End: start.Add(24 * time.Hour)}, booker.ID)
	require.NoError(t, err)

	// Only the owner decides
	_, err = env.bookings.SetBookingApproval(ctx, booker.ID, true, created.ID)
	assert.ErrorIs(t, err, database.ErrNotOwner)

	out, err := env.bookings.SetBookingApproval(ctx, owner.ID, true, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, out.Status)

	// And only once
	_, err = env.bookings.SetBookingApproval(ctx, owner.ID, false, created.ID)
	assert.ErrorIs(t, err, database.ErrBookingValidation)
}

func TestBookingService_Reject(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com")
	booker := env.createUser(t, "booker@example.com")
	item := env.createItem(t, owner.ID, "Drill", true)

	start := time.Now().Add(24 * time.Hour)
	created, err := env.bookings.Create(ctx, models.BookingDto{ItemID: item.ID, Start: start, End: start.Add(24 * time.Hour)}, booker.ID)
	require.NoError(t, err)

	out, err := env.bookings.SetBookingApproval(ctx, owner.ID, false, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, out.Status)
}

func TestBookingService_FindBookingByID_Access(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com")
	booker := env.createUser(t, "booker@example.com")
	stranger := env.createUser(t, "stranger@example.com")
	item := env.createItem(t, owner.ID, "Drill", true)

	start := time.Now().Add(24 * time.Hour)
	created, err := env.bookings.Create(ctx, models.BookingDto{ItemID: item.ID, Start: start, End: start.Add(24 * time.Hour)}, booker.ID)
	require.NoError(t, err)

	// Booker and owner both see it
	_, err = env.bookings.FindBookingByID(ctx, created.ID, booker.ID)
	assert.NoError(t, err)
	_, err = env.bookings.FindBookingByID(ctx, created.ID, owner.ID)
	assert.NoError(t, err)

	// Anyone else does not
	_, err = env.bookings.FindBookingByID(ctx, created.ID, stranger.ID)
	assert.ErrorIs(t, err, database.ErrUserAccess)

	_, err = env.bookings.FindBookingByID(ctx, 9999, booker.ID)
	assert.ErrorIs(t, err, database.ErrBookingNotFound)
}

func TestBookingService_FindBookingsOfUser(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com")
	booker := env.createUser(t, "booker@example.com")
	item := env.createItem(t, owner.ID, "Drill", true)

	now := time.Now()
	env.createRawBooking(t, item.ID, booker.ID, now.Add(-72*time.Hour), now.Add(-48*time.Hour), models.StatusApproved)
	waiting := env.createRawBooking(t, item.ID, booker.ID, now.Add(48*time.Hour), now.Add(72*time.Hour), models.StatusWaiting)

	all, err := env.bookings.FindBookingsOfUser(ctx, models.StateAll, booker.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest start first
	assert.Equal(t, waiting.ID, all[0].ID)

	got, err := env.bookings.FindBookingsOfUser(ctx, models.StateWaiting, booker.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, waiting.ID, got[0].ID)

	got, err = env.bookings.FindBookingsOfUser(ctx, models.StatePast, booker.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = env.bookings.FindBookingsOfUser(ctx, models.StateAll, 9999)
	assert.ErrorIs(t, err, database.ErrUserNotFound)
}

func TestBookingService_FindBookingsOfOwner(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com")
	booker := env.createUser(t, "booker@example.com")
	other := env.createUser(t, "other@example.com")
	item := env.createItem(t, owner.ID, "Drill", true)
	foreign := env.createItem(t, other.ID, "Saw", true)

	now := time.Now()
	mine := env.createRawBooking(t, item.ID, booker.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusWaiting)
	env.createRawBooking(t, foreign.ID, booker.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), models.StatusWaiting)

	got, err := env.bookings.FindBookingsOfOwner(ctx, models.StateAll, owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)
	assert.Equal(t, booker.ID, got[0].Booker.ID)

	_, err = env.bookings.FindBookingsOfOwner(ctx, models.StateAll, 9999)
	assert.ErrorIs(t, err, database.ErrUserNotFound)
}
