package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// Repository is the persistence contract consumed by the services.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error
	SearchItems(ctx context.Context, text string) ([]models.Item, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	GetBookingsByBooker(ctx context.Context, bookerID int64, state models.BookingState) ([]models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64, state models.BookingState) ([]models.Booking, error)
	GetBookingsByItemIDs(ctx context.Context, itemIDs []int64) ([]models.Booking, error)
	CountFinishedBookings(ctx context.Context, itemID, userID int64, now time.Time) (int, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItemIDs(ctx context.Context, itemIDs []int64) ([]models.CommentWithAuthor, error)
}

// SearchCache caches item search results and backs HTTP rate limiting.
type SearchCache interface {
	GetSearch(ctx context.Context, query string) ([]models.ItemDto, bool, error)
	SetSearch(ctx context.Context, query string, items []models.ItemDto) error
	InvalidateSearch(ctx context.Context) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
