package itemrequest

import (
	"net/http"
	"time"

	"lendit/internal/item"
	"lendit/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
)

// ItemRequest is a listing request: a user describes the item they are
// looking for, and owners may list items answering it.
type ItemRequest struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time
}

// Detail pairs a request with the items listed in answer to it.
type Detail struct {
	ItemRequest
	Items []*item.Item
}
