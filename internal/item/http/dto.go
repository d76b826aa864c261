package http

import (
	"time"

	"lendit/internal/item"
)

type CreateItemBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentBody struct {
	Text string `json:"text" binding:"required"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
	}
}

// BookingRefResponse is the reduced booking view attached to item details.
type BookingRefResponse struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: c.Created}
}

type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingRefResponse `json:"lastBooking"`
	NextBooking *BookingRefResponse `json:"nextBooking"`
	Comments    []CommentResponse   `json:"comments"`
}

func NewItemDetailResponse(d *item.Detail) ItemDetailResponse {
	resp := ItemDetailResponse{
		ItemResponse: NewItemResponse(&d.Item),
		Comments:     make([]CommentResponse, 0, len(d.Comments)),
	}
	if d.LastBooking != nil {
		resp.LastBooking = &BookingRefResponse{ID: d.LastBooking.ID, BookerID: d.LastBooking.BookerID}
	}
	if d.NextBooking != nil {
		resp.NextBooking = &BookingRefResponse{ID: d.NextBooking.ID, BookerID: d.NextBooking.BookerID}
	}
	for i := range d.Comments {
		resp.Comments = append(resp.Comments, NewCommentResponse(&d.Comments[i]))
	}
	return resp
}
