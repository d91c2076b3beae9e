package models

import "time"

type UserDto struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// ItemDto carries item fields on the wire. Available is a pointer so that
// PATCH bodies can distinguish "false" from "not supplied".
type ItemDto struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
}

// UserUpdateDto is the partial-update shape: every field optional.
type UserUpdateDto struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// ItemUpdateDto is the partial-update shape: every field optional.
type ItemUpdateDto struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type BookingDto struct {
	ItemID int64     `json:"itemId" validate:"required"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}

// BookingView is the compact booking shape embedded in item views.
type BookingView struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	BookerID int64     `json:"bookerId"`
	ItemID   int64     `json:"itemId"`
}

// BookingOut is the full booking response with booker and item attached.
type BookingOut struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker UserDto   `json:"booker"`
	Item   ItemDto   `json:"item"`
}

type CommentDto struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text" validate:"required"`
	ItemID     int64     `json:"itemId"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemView is the owner-facing item shape enriched with booking slots and
// comments. Comments is never nil.
type ItemView struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Available   bool         `json:"available"`
	LastBooking *BookingView `json:"lastBooking"`
	NextBooking *BookingView `json:"nextBooking"`
	Comments    []CommentDto `json:"comments"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func UserToDto(u *User) UserDto {
	return UserDto{ID: u.ID, Name: u.Name, Email: u.Email}
}

func ItemToDto(i *Item) ItemDto {
	available := i.Available
	return ItemDto{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   &available,
	}
}

func BookingToView(b *Booking) BookingView {
	return BookingView{
		ID:       b.ID,
		Start:    b.Start,
		End:      b.End,
		BookerID: b.BookerID,
		ItemID:   b.ItemID,
	}
}

func BookingToOut(b *Booking, booker *User, item *Item) BookingOut {
	return BookingOut{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Booker: UserToDto(booker),
		Item:   ItemToDto(item),
	}
}

func CommentToDto(c *Comment, authorName string) CommentDto {
	return CommentDto{
		ID:         c.ID,
		Text:       c.Text,
		ItemID:     c.ItemID,
		AuthorName: authorName,
		Created:    c.Created,
	}
}

// ItemToView builds the enriched owner view. Bookings may be nil for
// non-owner readers.
func ItemToView(i *Item, last, next *BookingView, comments []CommentDto) ItemView {
	if comments == nil {
		comments = []CommentDto{}
	}
	return ItemView{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		LastBooking: last,
		NextBooking: next,
		Comments:    comments,
	}
}
