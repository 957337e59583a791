package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/car-rental-backend/internal/car"
	"github.com/nekogravitycat/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrUnauthorized  = apperror.New(http.StatusUnauthorized, "unauthorized")
	ErrMissingFields = apperror.New(http.StatusBadRequest, "missing fields")
	ErrCarNotFound   = apperror.New(http.StatusBadRequest, "car not found")
	ErrInvalidDates  = apperror.New(http.StatusBadRequest, "invalid dates")
	ErrStorage       = apperror.New(http.StatusInternalServerError, "storage error")
)

// storageError wraps a persistence or catalog failure as ErrStorage, keeping the cause for logs.
func storageError(err error) error {
	return apperror.Wrap(err, ErrStorage.Code, ErrStorage.Message)
}

// Booking is an immutable reservation of one car by one user.
// FromDate and ToDate are calendar dates at UTC midnight, ToDate >= FromDate.
type Booking struct {
	ID          string
	UserID      string
	CarID       string
	FromDate    time.Time
	ToDate      time.Time
	TotalAmount int64
	CreatedAt   time.Time
}

// Detail is a booking joined with the current state of its car.
// Car is nil when the car no longer resolves.
type Detail struct {
	*Booking
	Car *car.Car
}

// CreateInput is the raw booking request as received from a client.
type CreateInput struct {
	CarID    string
	FromDate string
	ToDate   string
}

// Request is a CreateInput whose fields are present and whose dates parsed.
type Request struct {
	CarID    string
	FromDate time.Time
	ToDate   time.Time
}
