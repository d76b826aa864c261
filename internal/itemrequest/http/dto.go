package http

import (
	"time"

	itemHttp "lendit/internal/item/http"
	"lendit/internal/itemrequest"
)

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}

type RequestResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

func NewRequestResponse(r *itemrequest.ItemRequest) RequestResponse {
	return RequestResponse{ID: r.ID, Description: r.Description, Created: r.Created}
}

type RequestDetailResponse struct {
	RequestResponse
	Items []itemHttp.ItemResponse `json:"items"`
}

func NewRequestDetailResponse(d *itemrequest.Detail) RequestDetailResponse {
	resp := RequestDetailResponse{
		RequestResponse: NewRequestResponse(&d.ItemRequest),
		Items:           make([]itemHttp.ItemResponse, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		resp.Items = append(resp.Items, itemHttp.NewItemResponse(it))
	}
	return resp
}
