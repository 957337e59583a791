package booking

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/nekogravitycat/car-rental-backend/internal/db"
)

// Repository persists bookings. It is append-only.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	// ListByOwner returns userID's bookings ordered by created_at, then id.
	ListByOwner(ctx context.Context, userID string) ([]*Booking, error)
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "car_id", "from_date", "to_date", "total_amount", "created_at").
		Values(b.UserID, b.CarID, b.FromDate, b.ToDate, b.TotalAmount, b.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, userID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "user_id", "car_id", "from_date", "to_date", "total_amount", "created_at").
		From("public.bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.CarID, &b.FromDate, &b.ToDate, &b.TotalAmount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings failed: %w", err)
	}

	return bookings, nil
}
