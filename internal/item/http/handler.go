package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lendit/internal/auth"
	"lendit/internal/item"
	"lendit/internal/pkg/request"
	"lendit/internal/pkg/response"
)

type Handler struct {
	service item.Service
}

func NewHandler(service item.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ownerID := auth.GetUserID(c)
	it, err := h.service.Create(c.Request.Context(), ownerID, item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(it))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var body UpdateItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	it, err := h.service.Update(c.Request.Context(), auth.GetUserID(c), id, item.Patch{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	d, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemDetailResponse(d))
}

func (h *Handler) ListOwn(c *gin.Context) {
	details, err := h.service.ListByOwner(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemDetailResponse, len(details))
	for i, d := range details {
		items[i] = NewItemDetailResponse(d)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Search(c *gin.Context) {
	found, err := h.service.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemResponse, len(found))
	for i, it := range found {
		items[i] = NewItemResponse(it)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) AddComment(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var body CreateCommentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), auth.GetUserID(c), id, body.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCommentResponse(comment))
}
