package item

import (
	"net/http"
	"time"

	"lendit/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item not found")
	ErrEditForbidden       = apperror.New(http.StatusForbidden, "only the owner may edit an item")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name is required")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
	ErrAvailableRequired   = apperror.New(http.StatusBadRequest, "available flag is required")
	ErrEmptyComment        = apperror.New(http.StatusBadRequest, "comment text must not be empty")
	ErrCommentNotAllowed   = apperror.New(http.StatusBadRequest, "commenting requires a completed approved booking of the item")
)

// Item is a lendable thing listed by its owner. RequestID references the
// listing request the item answers, if any.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// Patch carries a partial item update; nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Available   *bool
}

// BookingRef is the reduced view of a booking attached to item details:
// just the booking and its booker.
type BookingRef struct {
	ID       int64
	BookerID int64
}

// Comment is feedback left by a user who completed an approved booking
// of the item. Immutable once created.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

// Detail is the composite item view: the item itself, the most recently
// begun approved booking (last), the nearest upcoming approved booking
// (next) and the item's comments.
type Detail struct {
	Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []Comment
}
