package http

import (
	"time"

	"github.com/nekogravitycat/car-rental-backend/internal/booking"
)

// CreateBookingRequest is the JSON body of POST /api/book.
// Fields are validated by the booking service so that an anonymous caller
// is rejected before its input is looked at.
type CreateBookingRequest struct {
	CarID    string `json:"car_id"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

type CarTag struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	CarNumber   string  `json:"car_number"`
	PricePerDay int64   `json:"price_per_day"`
	Image       *string `json:"image"`
}

type BookingResponse struct {
	ID          string    `json:"id"`
	CarID       string    `json:"car_id"`
	FromDate    string    `json:"from_date"`
	ToDate      string    `json:"to_date"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	Car         *CarTag   `json:"car,omitempty"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		CarID:       b.CarID,
		FromDate:    b.FromDate.Format(time.DateOnly),
		ToDate:      b.ToDate.Format(time.DateOnly),
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt,
	}
}

func NewDetailResponse(d *booking.Detail) BookingResponse {
	resp := NewBookingResponse(d.Booking)
	if d.Car != nil {
		resp.Car = &CarTag{
			ID:          d.Car.ID,
			Name:        d.Car.Name,
			CarNumber:   d.Car.CarNumber,
			PricePerDay: d.Car.PricePerDay,
			Image:       d.Car.Image,
		}
	}
	return resp
}

type ListBookingsResponse struct {
	Items []BookingResponse `json:"items"`
	Total int               `json:"total"`
}
