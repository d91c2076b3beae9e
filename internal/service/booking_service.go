package service

import (
	"context"
	"fmt"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *BookingService) Create(ctx context.Context, dto models.BookingDto, bookerID int64) (models.BookingOut, error) {
	if !dto.Start.Before(dto.End) {
		return models.BookingOut{}, fmt.Errorf("%w: start must be before end", database.ErrBookingValidation)
	}

	booker, err := s.repo.GetUserByID(ctx, bookerID)
	if err != nil {
		return models.BookingOut{}, err
	}
	item, err := s.repo.GetItemByID(ctx, dto.ItemID)
	if err != nil {
		return models.BookingOut{}, err
	}

	// Owners do not book their own items. Rendered as 404 to match the
	// acceptance-test contract.
	if item.OwnerID == bookerID {
		return models.BookingOut{}, fmt.Errorf("%w: owner cannot book own item %d", database.ErrUserAccess, item.ID)
	}
	if !item.Available {
		return models.BookingOut{}, fmt.Errorf("%w: item %d is not available", database.ErrBookingValidation, item.ID)
	}

	booking := &models.Booking{
		Start:    dto.Start,
		End:      dto.End,
		ItemID:   item.ID,
		BookerID: bookerID,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return models.BookingOut{}, err
	}

	s.publishEvent(events.EventBookingCreated, booking)
	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", item.ID).
		Int64("booker_id", bookerID).Msg("booking created")
	return models.BookingToOut(booking, booker, item), nil
}

// SetBookingApproval moves a WAITING booking to APPROVED or REJECTED. Only
// the item owner may decide, and only once.
func (s *BookingService) SetBookingApproval(ctx context.Context, userID int64, approved bool, bookingID int64) (models.BookingOut, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.BookingOut{}, err
	}
	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return models.BookingOut{}, err
	}

	if item.OwnerID != userID {
		return models.BookingOut{}, fmt.Errorf("%w: user %d does not own item %d", database.ErrNotOwner, userID, item.ID)
	}
	if booking.Status != models.StatusWaiting {
		return models.BookingOut{}, fmt.Errorf("%w: booking %d is not waiting for approval", database.ErrBookingValidation, bookingID)
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}
	if err := s.repo.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return models.BookingOut{}, err
	}
	booking.Status = status

	booker, err := s.repo.GetUserByID(ctx, booking.BookerID)
	if err != nil {
		return models.BookingOut{}, err
	}

	s.publishEvent(eventType, booking)
	return models.BookingToOut(booking, booker, item), nil
}

// FindBookingByID is visible to the booker and the item owner only. Access
// denial is rendered as 404 to match the acceptance-test contract.
func (s *BookingService) FindBookingByID(ctx context.Context, bookingID, userID int64) (models.BookingOut, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return models.BookingOut{}, err
	}
	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return models.BookingOut{}, err
	}

	if userID != booking.BookerID && userID != item.OwnerID {
		return models.BookingOut{}, fmt.Errorf("%w: user %d may not view booking %d", database.ErrUserAccess, userID, bookingID)
	}

	booker, err := s.repo.GetUserByID(ctx, booking.BookerID)
	if err != nil {
		return models.BookingOut{}, err
	}
	return models.BookingToOut(booking, booker, item), nil
}

// FindBookingsOfUser lists the user's own bookings filtered by state,
// newest start first.
func (s *BookingService) FindBookingsOfUser(ctx context.Context, state models.BookingState, userID int64) ([]models.BookingOut, error) {
	booker, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.GetBookingsByBooker(ctx, userID, state)
	if err != nil {
		return nil, err
	}
	return s.toOuts(ctx, bookings, booker)
}

// FindBookingsOfOwner lists bookings of every item the user owns, filtered
// by state, newest start first.
func (s *BookingService) FindBookingsOfOwner(ctx context.Context, state models.BookingState, ownerID int64) ([]models.BookingOut, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.GetBookingsByOwner(ctx, ownerID, state)
	if err != nil {
		return nil, err
	}
	return s.toOuts(ctx, bookings, nil)
}

// toOuts attaches item and booker records to each booking. knownBooker, when
// not nil, is the booker of every booking and saves user lookups.
func (s *BookingService) toOuts(ctx context.Context, bookings []models.Booking, knownBooker *models.User) ([]models.BookingOut, error) {
	items := make(map[int64]*models.Item)
	bookers := make(map[int64]*models.User)
	if knownBooker != nil {
		bookers[knownBooker.ID] = knownBooker
	}

	outs := make([]models.BookingOut, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]

		item, ok := items[b.ItemID]
		if !ok {
			var err error
			item, err = s.repo.GetItemByID(ctx, b.ItemID)
			if err != nil {
				return nil, err
			}
			items[b.ItemID] = item
		}

		booker, ok := bookers[b.BookerID]
		if !ok {
			var err error
			booker, err = s.repo.GetUserByID(ctx, b.BookerID)
			if err != nil {
				return nil, err
			}
			bookers[b.BookerID] = booker
		}

		outs = append(outs, models.BookingToOut(b, booker, item))
	}
	return outs, nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}
	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		BookerID:  booking.BookerID,
		ItemID:    booking.ItemID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("failed to publish booking event")
	}
}
