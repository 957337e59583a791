package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/car-rental-backend/internal/auth"
	"github.com/nekogravitycat/car-rental-backend/internal/booking"
	"github.com/nekogravitycat/car-rental-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Create books a car for the caller.
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An unreadable body counts as missing fields.
		req = CreateBookingRequest{}
	}

	b, err := h.service.Create(c.Request.Context(), auth.GetPrincipal(c), booking.CreateInput{
		CarID:    req.CarID,
		FromDate: req.FromDate,
		ToDate:   req.ToDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// ListMine lists the caller's bookings with car details.
func (h *Handler) ListMine(c *gin.Context) {
	details, err := h.service.ListMine(c.Request.Context(), auth.GetPrincipal(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, 0, len(details))
	for _, d := range details {
		items = append(items, NewDetailResponse(d))
	}

	c.JSON(http.StatusOK, ListBookingsResponse{Items: items, Total: len(items)})
}
