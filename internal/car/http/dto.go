package http

import (
	"time"

	"github.com/nekogravitycat/car-rental-backend/internal/car"
)

type CarResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CarNumber   string    `json:"car_number"`
	PricePerDay int64     `json:"price_per_day"`
	Image       *string   `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCarResponse(c *car.Car) CarResponse {
	return CarResponse{
		ID:          c.ID,
		Name:        c.Name,
		CarNumber:   c.CarNumber,
		PricePerDay: c.PricePerDay,
		Image:       c.Image,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

type ListCarsResponse struct {
	Items []CarResponse `json:"items"`
	Total int           `json:"total"`
}

type CreateCarRequest struct {
	Name        string  `json:"name" binding:"required"`
	CarNumber   string  `json:"car_number" binding:"required"`
	PricePerDay int64   `json:"price_per_day" binding:"required,gt=0"`
	Image       *string `json:"image"`
	Description string  `json:"description"`
}
