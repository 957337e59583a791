package car

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/car-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "car not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrEmptyCarNumber  = apperror.New(http.StatusBadRequest, "car number cannot be empty")
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "price per day must be between 1 and 10000000")
	ErrDuplicateNumber = apperror.New(http.StatusConflict, "car number already registered")
)

// MaxPricePerDay bounds catalog prices so a booking total cannot overflow
// for any date range the booking engine accepts.
const MaxPricePerDay int64 = 10_000_000

// Car is a rentable vehicle in the catalog.
// PricePerDay is in integer currency units, in 1..MaxPricePerDay.
type Car struct {
	ID          string
	Name        string
	CarNumber   string
	PricePerDay int64
	Image       *string // public URL of the photo
	Description string
	CreatedAt   time.Time
}
