package car

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateInput struct {
	Name        string
	CarNumber   string
	PricePerDay int64
	Image       *string
	Description string
}

type Service interface {
	List(ctx context.Context) ([]*Car, error)
	GetByID(ctx context.Context, id string) (*Car, error)
	// GetByIDs returns the found cars keyed by id. Unknown ids are absent.
	GetByIDs(ctx context.Context, ids []string) (map[string]*Car, error)
	Create(ctx context.Context, in CreateInput) (*Car, error)
	SetImage(ctx context.Context, id string, imageURL string) error
	// Seed inserts inputs only when the catalog is empty and reports how many were created.
	Seed(ctx context.Context, inputs []CreateInput) (int, error)
}

type service struct {
	repo  Repository
	cache Cache
	log   *zap.Logger
}

// NewService creates a catalog service. cache may be nil.
func NewService(repo Repository, cache Cache, log *zap.Logger) Service {
	return &service{repo: repo, cache: cache, log: log}
}

func (s *service) List(ctx context.Context) ([]*Car, error) {
	if s.cache != nil {
		cached, err := s.cache.GetList(ctx)
		if err != nil {
			s.log.Warn("car list cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	cars, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if cars == nil {
		cars = []*Car{}
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, cars); err != nil {
			s.log.Warn("car list cache write failed", zap.Error(err))
		}
	}
	return cars, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Car, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByIDs(ctx context.Context, ids []string) (map[string]*Car, error) {
	seen := make(map[string]struct{}, len(ids))
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		valid = append(valid, id)
	}

	out := make(map[string]*Car, len(valid))
	if len(valid) == 0 {
		return out, nil
	}

	cars, err := s.repo.GetByIDs(ctx, valid)
	if err != nil {
		return nil, err
	}
	for _, c := range cars {
		out[c.ID] = c
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Car, error) {
	c := &Car{
		Name:        strings.TrimSpace(in.Name),
		CarNumber:   strings.ToUpper(strings.TrimSpace(in.CarNumber)),
		PricePerDay: in.PricePerDay,
		Image:       in.Image,
		Description: strings.TrimSpace(in.Description),
	}
	if c.Name == "" {
		return nil, ErrEmptyName
	}
	if c.CarNumber == "" {
		return nil, ErrEmptyCarNumber
	}
	if c.PricePerDay <= 0 || c.PricePerDay > MaxPricePerDay {
		return nil, ErrInvalidPrice
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *service) SetImage(ctx context.Context, id string, imageURL string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	if err := s.repo.UpdateImage(ctx, id, imageURL); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) Seed(ctx context.Context, inputs []CreateInput) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	created := 0
	for _, in := range inputs {
		if _, err := s.Create(ctx, in); err != nil {
			return created, fmt.Errorf("seed car %q: %w", in.CarNumber, err)
		}
		created++
	}
	return created, nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("car list cache invalidation failed", zap.Error(err))
	}
}
