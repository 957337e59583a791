package car

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nekogravitycat/car-rental-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, car *Car) error
	GetByID(ctx context.Context, id string) (*Car, error)
	GetByIDs(ctx context.Context, ids []string) ([]*Car, error)
	List(ctx context.Context) ([]*Car, error)
	Count(ctx context.Context) (int, error)
	UpdateImage(ctx context.Context, id string, image string) error
}

type pgxRepository struct {
	db db.DBTX
}

func NewPgxRepository(conn db.DBTX) Repository {
	return &pgxRepository{db: conn}
}

var carColumns = []string{"id", "name", "car_number", "price_per_day", "image", "description", "created_at"}

func scanCar(row pgx.Row) (*Car, error) {
	var c Car
	if err := row.Scan(&c.ID, &c.Name, &c.CarNumber, &c.PricePerDay, &c.Image, &c.Description, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgxRepository) Create(ctx context.Context, c *Car) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.cars").
		Columns("name", "car_number", "price_per_day", "image", "description").
		Values(c.Name, c.CarNumber, c.PricePerDay, c.Image, c.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create car query failed: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateNumber
		}
		return fmt.Errorf("create car failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Car, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(carColumns...).
		From("public.cars").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get car query failed: %w", err)
	}

	c, err := scanCar(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get car failed: %w", err)
	}
	return c, nil
}

// GetByIDs returns the cars that exist among ids, in no particular order.
func (r *pgxRepository) GetByIDs(ctx context.Context, ids []string) ([]*Car, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(carColumns...).
		From("public.cars").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get cars query failed: %w", err)
	}

	return r.queryCars(ctx, query, args)
}

func (r *pgxRepository) List(ctx context.Context) ([]*Car, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(carColumns...).
		From("public.cars").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cars query failed: %w", err)
	}

	return r.queryCars(ctx, query, args)
}

func (r *pgxRepository) queryCars(ctx context.Context, query string, args []any) ([]*Car, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cars failed: %w", err)
	}
	defer rows.Close()

	var cars []*Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan car failed: %w", err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cars failed: %w", err)
	}

	return cars, nil
}

func (r *pgxRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM public.cars").Scan(&n); err != nil {
		return 0, fmt.Errorf("count cars failed: %w", err)
	}
	return n, nil
}

func (r *pgxRepository) UpdateImage(ctx context.Context, id string, image string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.cars").
		Set("image", image).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update car image query failed: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update car image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
