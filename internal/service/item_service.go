package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	cache    domain.SearchCache
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewItemService(repo domain.Repository, cache domain.SearchCache, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		cache:    cache,
		eventBus: eventBus,
		logger:   logger,
	}
}

// GetAllItemsByOwner returns every item owned by ownerID enriched with its
// most-recent past booking, nearest future booking and all comments. Grouping
// is done in memory from one query per table.
func (s *ItemService) GetAllItemsByOwner(ctx context.Context, ownerID int64) ([]models.ItemView, error) {
	items, err := s.repo.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, 0, len(items))
	for i := range items {
		itemIDs = append(itemIDs, items[i].ID)
	}

	bookings, err := s.repo.GetBookingsByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.GetCommentsByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	bookingsByItem := make(map[int64][]models.Booking)
	for _, b := range bookings {
		bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
	}
	commentsByItem := make(map[int64][]models.CommentDto)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], models.CommentToDto(&c.Comment, c.AuthorName))
	}

	now := time.Now()
	views := make([]models.ItemView, 0, len(items))
	for i := range items {
		item := &items[i]
		last, next := bookingSlots(bookingsByItem[item.ID], now)
		views = append(views, models.ItemToView(item, last, next, commentsByItem[item.ID]))
	}
	return views, nil
}

// bookingSlots picks the most-recent past and nearest future booking from
// the item's bookings. Rejected and canceled bookings do not occupy slots.
func bookingSlots(bookings []models.Booking, now time.Time) (last, next *models.BookingView) {
	var lastB, nextB *models.Booking
	for i := range bookings {
		b := &bookings[i]
		if b.Status == models.StatusRejected || b.Status == models.StatusCanceled {
			continue
		}
		if b.Start.Before(now) {
			if lastB == nil || b.Start.After(lastB.Start) {
				lastB = b
			}
		} else {
			if nextB == nil || b.Start.Before(nextB.Start) {
				nextB = b
			}
		}
	}
	if lastB != nil {
		v := models.BookingToView(lastB)
		last = &v
	}
	if nextB != nil {
		v := models.BookingToView(nextB)
		next = &v
	}
	return last, next
}

func (s *ItemService) Create(ctx context.Context, dto models.ItemDto, ownerID int64) (models.ItemDto, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return models.ItemDto{}, err
	}

	item := &models.Item{
		Name:        dto.Name,
		Description: dto.Description,
		Available:   *dto.Available,
		OwnerID:     ownerID,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return models.ItemDto{}, err
	}

	s.invalidateSearch(ctx)
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return models.ItemToDto(item), nil
}

// Update applies only the non-nil fields of dto. Supplying no fields at all
// is a validation error.
func (s *ItemService) Update(ctx context.Context, dto models.ItemUpdateDto, itemID, userID int64) (models.ItemDto, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return models.ItemDto{}, err
	}

	if item.OwnerID != userID {
		return models.ItemDto{}, fmt.Errorf("%w: user %d does not own item %d", database.ErrNotOwner, userID, itemID)
	}

	updated := false
	if dto.Name != nil {
		item.Name = *dto.Name
		updated = true
	}
	if dto.Description != nil {
		item.Description = *dto.Description
		updated = true
	}
	if dto.Available != nil {
		item.Available = *dto.Available
		updated = true
	}
	if !updated {
		s.logger.Warn().Int64("item_id", itemID).Msg("update of item failed")
		return models.ItemDto{}, fmt.Errorf("%w: unable to update empty parameters of item", database.ErrItemValidation)
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return models.ItemDto{}, err
	}

	s.invalidateSearch(ctx)
	return models.ItemToDto(item), nil
}

// FindItemByID returns the enriched view of an item. Booking slots are
// visible to the owner only; comments to everyone.
func (s *ItemService) FindItemByID(ctx context.Context, itemID, userID int64) (models.ItemView, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return models.ItemView{}, err
	}

	comments, err := s.repo.GetCommentsByItemIDs(ctx, []int64{itemID})
	if err != nil {
		return models.ItemView{}, err
	}
	commentDtos := make([]models.CommentDto, 0, len(comments))
	for _, c := range comments {
		commentDtos = append(commentDtos, models.CommentToDto(&c.Comment, c.AuthorName))
	}

	var last, next *models.BookingView
	if item.OwnerID == userID {
		bookings, err := s.repo.GetBookingsByItemIDs(ctx, []int64{itemID})
		if err != nil {
			return models.ItemView{}, err
		}
		last, next = bookingSlots(bookings, time.Now())
	}

	return models.ItemToView(item, last, next, commentDtos), nil
}

// Delete is idempotent: removing an absent item is not an error.
func (s *ItemService) Delete(ctx context.Context, itemID int64) error {
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	s.invalidateSearch(ctx)
	return nil
}

// SearchItemByText returns available items matching text. Blank text yields
// an empty result without touching storage. Results are cached.
func (s *ItemService) SearchItemByText(ctx context.Context, text string) ([]models.ItemDto, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []models.ItemDto{}, nil
	}

	normalized := strings.ToLower(trimmed)
	if cached, found, err := s.cache.GetSearch(ctx, normalized); err == nil && found {
		return cached, nil
	}

	items, err := s.repo.SearchItems(ctx, normalized)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.ItemDto, 0, len(items))
	for i := range items {
		dtos = append(dtos, models.ItemToDto(&items[i]))
	}

	if err := s.cache.SetSearch(ctx, normalized, dtos); err != nil {
		s.logger.Warn().Err(err).Str("query", normalized).Msg("failed to cache search results")
	}
	return dtos, nil
}

// AddComment persists post-booking feedback. The author must have at least
// one booking of the item that already ended.
func (s *ItemService) AddComment(ctx context.Context, dto models.CommentDto, itemID, userID int64) (models.CommentDto, error) {
	author, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return models.CommentDto{}, err
	}
	if _, err := s.repo.GetItemByID(ctx, itemID); err != nil {
		return models.CommentDto{}, err
	}

	finished, err := s.repo.CountFinishedBookings(ctx, itemID, userID, time.Now())
	if err != nil {
		return models.CommentDto{}, err
	}
	if finished == 0 {
		return models.CommentDto{}, fmt.Errorf("%w: user %d has no finished booking of item %d",
			database.ErrCommentValidation, userID, itemID)
	}

	comment := &models.Comment{
		Text:     dto.Text,
		ItemID:   itemID,
		AuthorID: userID,
		Created:  time.Now(),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return models.CommentDto{}, err
	}

	s.publishComment(comment)
	return models.CommentToDto(comment, author.Name), nil
}

func (s *ItemService) invalidateSearch(ctx context.Context) {
	if err := s.cache.InvalidateSearch(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate search cache")
	}
}

func (s *ItemService) publishComment(comment *models.Comment) {
	if s.eventBus == nil {
		return
	}
	payload := events.CommentEventPayload{
		CommentID: comment.ID,
		ItemID:    comment.ItemID,
		AuthorID:  comment.AuthorID,
		Created:   comment.Created,
	}
	if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish comment event")
	}
}
