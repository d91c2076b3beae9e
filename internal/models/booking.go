package models

import "time"

type Booking struct {
	ID        int64     `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	Status    string    `json:"status"` // WAITING, APPROVED, REJECTED, CANCELED
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Comment struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	ItemID   int64     `json:"item_id"`
	AuthorID int64     `json:"author_id"`
	Created  time.Time `json:"created"`
}

// CommentWithAuthor pairs a comment with its author's display name so that
// views can be built without a second user lookup.
type CommentWithAuthor struct {
	Comment
	AuthorName string
}

// BookingExportRow is a booking flattened with joined names for reports.
type BookingExportRow struct {
	Booking
	ItemName   string
	BookerName string
}
