package http

import (
	"time"

	"lendit/internal/booking"
	userHttp "lendit/internal/user/http"
)

type CreateBookingBody struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

type BookingResponse struct {
	ID     int64               `json:"id"`
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Status string              `json:"status"`
	Booker userHttp.UserTag    `json:"booker"`
	Item   BookingItemResponse `json:"item"`
}

// BookingItemResponse keeps the embedded item reference small; the full item
// view lives on the item endpoints.
type BookingItemResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status.String(),
		Booker: userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		Item:   BookingItemResponse{ID: b.ItemID, Name: b.ItemName},
	}
}
