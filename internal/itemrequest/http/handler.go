package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lendit/internal/auth"
	"lendit/internal/itemrequest"
	"lendit/internal/pkg/request"
	"lendit/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(req))
}

func (h *Handler) ListOwn(c *gin.Context) {
	details, err := h.service.ListOwn(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RequestDetailResponse, len(details))
	for i, d := range details {
		items[i] = NewRequestDetailResponse(d)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListOthers(c *gin.Context) {
	from, size, err := request.ParsePaging(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	details, err := h.service.ListOthers(c.Request.Context(), auth.GetUserID(c), from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RequestDetailResponse, len(details))
	for i, d := range details {
		items[i] = NewRequestDetailResponse(d)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), auth.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestDetailResponse(d))
}
