package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lendit/internal/auth"
	"lendit/internal/booking"
	"lendit/internal/pkg/apperror"
	"lendit/internal/pkg/request"
	"lendit/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), body.ItemID, body.Start, body.End)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	approvedStr := c.Query("approved")
	approved, parseErr := strconv.ParseBool(approvedStr)
	if approvedStr == "" || parseErr != nil {
		response.Error(c, apperror.BadRequest("approved must be true or false"))
		return
	}

	b, err := h.service.Approve(c.Request.Context(), auth.GetUserID(c), id, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), auth.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), auth.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListAsBooker(c *gin.Context) {
	h.list(c, booking.RoleBooker)
}

func (h *Handler) ListAsOwner(c *gin.Context) {
	h.list(c, booking.RoleOwner)
}

func (h *Handler) list(c *gin.Context, role booking.Role) {
	bucket, err := booking.ParseBucket(c.DefaultQuery("state", string(booking.BucketAll)))
	if err != nil {
		response.Error(c, err)
		return
	}

	from, size, err := request.ParsePaging(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.service.List(c.Request.Context(), auth.GetUserID(c), role, bucket, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, items)
}
