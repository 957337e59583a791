package booking

import (
	"context"
	"errors"
	"time"

	"github.com/nekogravitycat/car-rental-backend/internal/auth"
	"github.com/nekogravitycat/car-rental-backend/internal/car"
)

// Catalog is the read-only view of the car catalog the booking engine needs.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*car.Car, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*car.Car, error)
}

type Service interface {
	// Create validates and prices a booking for p and persists it.
	// Checks run in order: principal, fields, car, dates.
	// Two identical calls create two bookings.
	Create(ctx context.Context, p *auth.Principal, in CreateInput) (*Booking, error)
	// ListMine returns p's bookings oldest first, each joined with its car.
	ListMine(ctx context.Context, p *auth.Principal) ([]*Detail, error)
}

type service struct {
	repo    Repository
	catalog Catalog
	now     func() time.Time
}

func NewService(repo Repository, catalog Catalog) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

func (s *service) Create(ctx context.Context, p *auth.Principal, in CreateInput) (*Booking, error) {
	if !authenticated(p) {
		return nil, ErrUnauthorized
	}

	req, err := ParseRequest(in)
	if err != nil {
		return nil, err
	}

	c, err := s.catalog.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, car.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, storageError(err)
	}

	if req.ToDate.Before(req.FromDate) {
		return nil, ErrInvalidDates
	}

	// A range that cannot be priced is rejected like any other bad range.
	total, ok := TotalAmount(RentalDays(req.FromDate, req.ToDate), c.PricePerDay)
	if !ok {
		return nil, ErrInvalidDates
	}

	b := &Booking{
		UserID:      p.ID,
		CarID:       c.ID,
		FromDate:    req.FromDate,
		ToDate:      req.ToDate,
		TotalAmount: total,
		CreatedAt:   s.now().UTC(),
	}

	// Not retried: a failed write may or may not have landed.
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, storageError(err)
	}

	return b, nil
}

func authenticated(p *auth.Principal) bool {
	return p != nil && p.ID != ""
}
