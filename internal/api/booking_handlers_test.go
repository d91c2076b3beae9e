package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingLifecycle(t *testing.T) {
	s := setupServer(t)

	owner := s.createUser(t, "Owner", "owner@example.com")
	booker := s.createUser(t, "Booker", "booker@example.com")
	item := s.createItem(t, owner.ID, "Drill", true)

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	dto := models.BookingDto{ItemID: item.ID, Start: start, End: start.Add(24 * time.Hour)}

	// Create: lands in WAITING
	resp := s.do(t, http.MethodPost, "/bookings", booker.ID, dto)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeResp[models.BookingOut](t, resp)
	assert.Equal(t, models.StatusWaiting, created.Status)
	assert.Equal(t, booker.ID, created.Booker.ID)
	assert.Equal(t, item.ID, created.Item.ID)

	// Approval by the booker is forbidden
	resp = s.do(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", created.ID), booker.ID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeResp[models.ErrorResponse](t, resp)
	assert.Equal(t, "User must be the owner", body.Message)

	// Owner approves
	resp = s.do(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=true", created.ID), owner.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	approved := decodeResp[models.BookingOut](t, resp)
	assert.Equal(t, models.StatusApproved, approved.Status)

	// Second decision is rejected
	resp = s.do(t, http.MethodPatch, fmt.Sprintf("/bookings/%d?approved=false", created.ID), owner.ID, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body = decodeResp[models.ErrorResponse](t, resp)
	assert.Equal(t, "Validation for booking failed", body.Message)
}

func TestBookingCreateErrors(t *testing.T) {
	s := setupServer(t)

	owner := s.createUser(t, "Owner", "owner@example.com")
	booker := s.createUser(t, "Booker", "booker@example.com")
	item := s.createItem(t, owner.ID, "Drill", true)

	start := time.Now().Add(24 * time.Hour)

	// Owner books own item: rendered as 404
	resp := s.do(t, http.MethodPost, "/bookings", owner.ID,
		models.BookingDto{ItemID: item.ID, Start: start, End: start.Add(time.Hour)})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeResp[models.ErrorResponse](t, resp)
	assert.Equal(t, "User access denied", body.Message)

	// start >= end
	resp = s.do(t, http.MethodPost, "/bookings", booker.ID,
		models.BookingDto{ItemID: item.ID, Start: start, End: start})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown item
	resp = s.do(t, http.MethodPost, "/bookings", booker.ID,
		models.BookingDto{ItemID: 9999, Start: start, End: start.Add(time.Hour)})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body = decodeResp[models.ErrorResponse](t, resp)
	assert.Equal(t, "Search for item failed", body.Message)

	// Missing required fields fail validation
	resp = s.do(t, http.MethodPost, "/bookings", booker.ID, map[string]any{"itemId": item.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestBookingVisibility(t *testing.T) {
	s := setupServer(t)

	owner := s.createUser(t, "Owner", "owner@example.com")
	booker := s.createUser(t, "Booker", "booker@example.com")
	stranger := s.createUser(t, "Stranger", "stranger@example.com")
	item := s.createItem(t, owner.ID, "Drill", true)

	start := time.Now().Add(24 * time.Hour)
	resp := s.do(t, http.MethodPost, "/bookings", booker.ID,
		models.BookingDto{ItemID: item.ID, Start: start, End: start.Add(time.Hour)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeResp[models.BookingOut](t, resp)

	for _, userID := range []int64{booker.ID, owner.ID} {
		resp = s.do(t, http.MethodGet, fmt.Sprintf("/bookings/%d", created.ID), userID, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	// A third party gets 404, not 403
	resp = s.do(t, http.MethodGet, fmt.Sprintf("/bookings/%d", created.ID), stranger.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeResp[models.ErrorResponse](t, resp)
	assert.Equal(t, "User access denied", body.Message)
}

func TestBookingListings(t *testing.T) {
	s := setupServer(t)

	owner := s.createUser(t, "Owner", "owner@example.com")
	booker := s.createUser(t, "Booker", "booker@example.com")
	item := s.createItem(t, owner.ID, "Drill", true)

	start := time.Now().Add(24 * time.Hour)
	resp := s.do(t, http.MethodPost, "/bookings", booker.ID,
		models.BookingDto{ItemID: item.ID, Start: start, End: start.Add(time.Hour)})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/bookings?state=WAITING", booker.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeResp[[]models.BookingOut](t, resp)
	assert.Len(t, list, 1)

	// Empty state defaults to ALL
	resp = s.do(t, http.MethodGet, "/bookings", booker.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decodeResp[[]models.BookingOut](t, resp)
	assert.Len(t, list, 1)

	resp = s.do(t, http.MethodGet, "/bookings/owner?state=ALL", owner.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decodeResp[[]models.BookingOut](t, resp)
	assert.Len(t, list, 1)

	// Unknown state
	resp = s.do(t, http.MethodGet, "/bookings?state=BOGUS", booker.ID, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeResp[models.ErrorResponse](t, resp)
	assert.Equal(t, "error", body.Message)
	assert.Contains(t, body.Error, "Unknown state")

	// approved must parse as a bool
	resp = s.do(t, http.MethodPatch, "/bookings/1?approved=maybe", owner.ID, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
