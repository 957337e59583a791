package booking

import (
	"context"

	"github.com/nekogravitycat/car-rental-backend/internal/auth"
)

func (s *service) ListMine(ctx context.Context, p *auth.Principal) ([]*Detail, error) {
	if !authenticated(p) {
		return nil, ErrUnauthorized
	}

	bookings, err := s.repo.ListByOwner(ctx, p.ID)
	if err != nil {
		return nil, storageError(err)
	}

	details := make([]*Detail, 0, len(bookings))
	if len(bookings) == 0 {
		return details, nil
	}

	carIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		carIDs = append(carIDs, b.CarID)
	}

	cars, err := s.catalog.GetByIDs(ctx, carIDs)
	if err != nil {
		return nil, storageError(err)
	}

	for _, b := range bookings {
		details = append(details, &Detail{Booking: b, Car: cars[b.CarID]})
	}
	return details, nil
}
