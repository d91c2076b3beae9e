package database

import "errors"

// Sentinel errors raised by the storage and service layers. The HTTP
// boundary maps each of them to a status code once.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")

	ErrUserValidation    = errors.New("validation for user failed")
	ErrItemValidation    = errors.New("validation for item failed")
	ErrBookingValidation = errors.New("validation for booking failed")
	ErrCommentValidation = errors.New("validation for comment failed")

	ErrNotOwner   = errors.New("user is not the owner of an item")
	ErrUserAccess = errors.New("user access denied")

	ErrEmailConflict = errors.New("email is already in use")

	ErrUnsupportedState = errors.New("Unknown state")
)
