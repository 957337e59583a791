package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/car-rental-backend/internal/auth"
	"github.com/nekogravitycat/car-rental-backend/internal/car"
	"github.com/nekogravitycat/car-rental-backend/internal/pkg/apperror"
)

// memRepository is an in-memory booking store that filters by owner like the SQL one.
type memRepository struct {
	mu       sync.Mutex
	bookings []*Booking
	seq      int
}

func (r *memRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	b.ID = fmt.Sprintf("booking-%03d", r.seq)
	stored := *b
	r.bookings = append(r.bookings, &stored)
	return nil
}

func (r *memRepository) ListByOwner(_ context.Context, userID string) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockRepository) ListByOwner(ctx context.Context, userID string) ([]*Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Booking), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetByID(ctx context.Context, id string) (*car.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*car.Car), args.Error(1)
}

func (m *MockCatalog) GetByIDs(ctx context.Context, ids []string) (map[string]*car.Car, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*car.Car), args.Error(1)
}

var (
	p1 = &auth.Principal{ID: "user-p1", Name: "Priya"}
	p2 = &auth.Principal{ID: "user-p2", Name: "Ravi"}

	c1 = &car.Car{ID: "car-c1", Name: "Hyundai i20", CarNumber: "KA01AB1234", PricePerDay: 1500}
	c2 = &car.Car{ID: "car-c2", Name: "Toyota Innova", CarNumber: "KA04GH3456", PricePerDay: 4000}

	fixedNow = time.Date(2023, 12, 20, 9, 30, 0, 0, time.UTC)
)

func newCatalog() *MockCatalog {
	catalog := new(MockCatalog)
	catalog.On("GetByID", mock.Anything, c1.ID).Return(c1, nil).Maybe()
	catalog.On("GetByID", mock.Anything, c2.ID).Return(c2, nil).Maybe()
	catalog.On("GetByID", mock.Anything, mock.Anything).Return(nil, car.ErrNotFound).Maybe()
	catalog.On("GetByIDs", mock.Anything, mock.Anything).Return(map[string]*car.Car{c1.ID: c1, c2.ID: c2}, nil).Maybe()
	return catalog
}

func newTestService(repo Repository, catalog Catalog) *service {
	return &service{repo: repo, catalog: catalog, now: func() time.Time { return fixedNow }}
}

func TestCreateScenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("three day rental", func(t *testing.T) {
		repo := &memRepository{}
		svc := newTestService(repo, newCatalog())

		b, err := svc.Create(ctx, p1, CreateInput{CarID: c1.ID, FromDate: "2024-01-01", ToDate: "2024-01-03"})
		require.NoError(t, err)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, p1.ID, b.UserID)
		assert.Equal(t, c1.ID, b.CarID)
		assert.Equal(t, int64(4500), b.TotalAmount)
		assert.Equal(t, date(t, "2024-01-01"), b.FromDate)
		assert.Equal(t, date(t, "2024-01-03"), b.ToDate)
		assert.Equal(t, fixedNow, b.CreatedAt)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("same day rental", func(t *testing.T) {
		repo := &memRepository{}
		b, err := newTestService(repo, newCatalog()).
			Create(ctx, p1, CreateInput{CarID: c1.ID, FromDate: "2024-01-05", ToDate: "2024-01-05"})
		require.NoError(t, err)
		assert.Equal(t, int64(1500), b.TotalAmount)
		assert.Equal(t, 1, repo.count())
	})

	t.Run("inverted dates", func(t *testing.T) {
		repo := &memRepository{}
		_, err := newTestService(repo, newCatalog()).
			Create(ctx, p1, CreateInput{CarID: c1.ID, FromDate: "2024-01-05", ToDate: "2024-01-01"})
		assert.ErrorIs(t, err, ErrInvalidDates)
		assert.Zero(t, repo.count())
	})

	t.Run("anonymous", func(t *testing.T) {
		repo := &memRepository{}
		catalog := new(MockCatalog)
		svc := newTestService(repo, catalog)

		_, err := svc.Create(ctx, nil, CreateInput{CarID: c1.ID, FromDate: "2024-01-01", ToDate: "2024-01-03"})
		assert.ErrorIs(t, err, ErrUnauthorized)

		_, err = svc.Create(ctx, &auth.Principal{}, CreateInput{CarID: c1.ID, FromDate: "2024-01-01", ToDate: "2024-01-03"})
		assert.ErrorIs(t, err, ErrUnauthorized)

		assert.Zero(t, repo.count())
		catalog.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestCreateCheckOrder(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		p    *auth.Principal
		in   CreateInput
		want error
	}{
		{"anonymous beats missing fields", nil, CreateInput{}, ErrUnauthorized},
		{"missing fields beats unknown car", p1, CreateInput{CarID: "nope", FromDate: "2024-01-01"}, ErrMissingFields},
		{"malformed date is missing", p1, CreateInput{CarID: c1.ID, FromDate: "2024-01-01", ToDate: "someday"}, ErrMissingFields},
		{"unknown car beats inverted dates", p1, CreateInput{CarID: "nope", FromDate: "2024-01-05", ToDate: "2024-01-01"}, ErrCarNotFound},
		{"inverted dates", p1, CreateInput{CarID: c1.ID, FromDate: "2024-01-05", ToDate: "2024-01-01"}, ErrInvalidDates},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &memRepository{}
			_, err := newTestService(repo, newCatalog()).Create(ctx, tc.p, tc.in)
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, repo.count())
		})
	}
}

func TestCreateErrorKinds(t *testing.T) {
	for err, code := range map[error]int{
		ErrUnauthorized:  http.StatusUnauthorized,
		ErrMissingFields: http.StatusBadRequest,
		ErrCarNotFound:   http.StatusBadRequest,
		ErrInvalidDates:  http.StatusBadRequest,
		ErrStorage:       http.StatusInternalServerError,
	} {
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, code, appErr.Code, err.Error())
	}
}

func TestCreateTotalIsDaysTimesPrice(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&memRepository{}, newCatalog())
	from := date(t, "2024-02-20")

	for _, c := range []*car.Car{c1, c2} {
		for span := range 15 {
			to := from.AddDate(0, 0, span)
			b, err := svc.Create(ctx, p1, CreateInput{
				CarID:    c.ID,
				FromDate: from.Format(time.DateOnly),
				ToDate:   to.Format(time.DateOnly),
			})
			require.NoError(t, err)
			assert.Equal(t, int64(span+1)*c.PricePerDay, b.TotalAmount)
		}
	}
}

func TestCreateCenturiesLongRange(t *testing.T) {
	b, err := newTestService(&memRepository{}, newCatalog()).Create(context.Background(), p1, CreateInput{
		CarID:    c1.ID,
		FromDate: "1700-01-01",
		ToDate:   "2024-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(118339)*c1.PricePerDay, b.TotalAmount)
}

func TestCreateUnpriceableRange(t *testing.T) {
	pricey := &car.Car{ID: "car-pricey", Name: "Limited", CarNumber: "KA99ZZ9999", PricePerDay: math.MaxInt64 / 2}
	catalog := new(MockCatalog)
	catalog.On("GetByID", mock.Anything, pricey.ID).Return(pricey, nil)
	repo := &memRepository{}

	_, err := newTestService(repo, catalog).
		Create(context.Background(), p1, CreateInput{CarID: pricey.ID, FromDate: "2024-01-01", ToDate: "2024-01-03"})
	assert.ErrorIs(t, err, ErrInvalidDates)
	assert.Zero(t, repo.count())
}

func TestCreateAcceptsTimestamps(t *testing.T) {
	b, err := newTestService(&memRepository{}, newCatalog()).Create(context.Background(), p1, CreateInput{
		CarID:    c1.ID,
		FromDate: "2024-01-01T18:45:00+05:30",
		ToDate:   "2024-01-03T08:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4500), b.TotalAmount)
}

func TestCreateCatalogFailureIsStorageError(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("GetByID", mock.Anything, c1.ID).Return(nil, errors.New("connection refused"))
	repo := &memRepository{}

	_, err := newTestService(repo, catalog).
		Create(context.Background(), p1, CreateInput{CarID: c1.ID, FromDate: "2024-01-01", ToDate: "2024-01-02"})
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorContains(t, errors.Unwrap(err), "connection refused")
	assert.Zero(t, repo.count())
}

func TestCreateWriteFailureIsStorageErrorAndNotRetried(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*booking.Booking")).
		Return(errors.New("timeout")).Once()

	_, err := newTestService(repo, newCatalog()).
		Create(context.Background(), p1, CreateInput{CarID: c1.ID, FromDate: "2024-01-01", ToDate: "2024-01-02"})
	assert.ErrorIs(t, err, ErrStorage)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCreateTwiceCreatesTwoBookings(t *testing.T) {
	ctx := context.Background()
	repo := &memRepository{}
	svc := newTestService(repo, newCatalog())
	in := CreateInput{CarID: c1.ID, FromDate: "2024-01-01", ToDate: "2024-01-03"}

	first, err := svc.Create(ctx, p1, in)
	require.NoError(t, err)
	second, err := svc.Create(ctx, p1, in)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, repo.count())
}

func TestCreateAllowsOverlappingBookings(t *testing.T) {
	ctx := context.Background()
	repo := &memRepository{}
	svc := newTestService(repo, newCatalog())

	_, err := svc.Create(ctx, p1, CreateInput{CarID: c1.ID, FromDate: "2024-01-01", ToDate: "2024-01-10"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, p2, CreateInput{CarID: c1.ID, FromDate: "2024-01-05", ToDate: "2024-01-06"})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.count())
}

func TestCreateConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := &memRepository{}
	svc := newTestService(repo, newCatalog())

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, p1, CreateInput{CarID: c2.ID, FromDate: "2024-03-01", ToDate: "2024-03-02"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, repo.count())
}

func TestListMine(t *testing.T) {
	ctx := context.Background()
	repo := &memRepository{}
	svc := newTestService(repo, newCatalog())

	_, err := svc.Create(ctx, p1, CreateInput{CarID: c1.ID, FromDate: "2024-01-01", ToDate: "2024-01-03"})
	require.NoError(t, err)
	for i := range 3 {
		_, err := svc.Create(ctx, p2, CreateInput{
			CarID:    c2.ID,
			FromDate: fmt.Sprintf("2024-02-%02d", i+1),
			ToDate:   fmt.Sprintf("2024-02-%02d", i+2),
		})
		require.NoError(t, err)
	}
	_, err = svc.Create(ctx, p1, CreateInput{CarID: c2.ID, FromDate: "2024-04-01", ToDate: "2024-04-01"})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, p1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, d := range mine {
		assert.Equal(t, p1.ID, d.UserID)
	}

	assert.Equal(t, c1.ID, mine[0].CarID)
	require.NotNil(t, mine[0].Car)
	assert.Equal(t, "Hyundai i20", mine[0].Car.Name)
	assert.Equal(t, int64(4500), mine[0].TotalAmount)

	require.NotNil(t, mine[1].Car)
	assert.Equal(t, "Toyota Innova", mine[1].Car.Name)

	theirs, err := svc.ListMine(ctx, p2)
	require.NoError(t, err)
	assert.Len(t, theirs, 3)
	for _, d := range theirs {
		assert.Equal(t, p2.ID, d.UserID)
	}
}

func TestListMineEmpty(t *testing.T) {
	catalog := new(MockCatalog)
	mine, err := newTestService(&memRepository{}, catalog).ListMine(context.Background(), p1)
	require.NoError(t, err)
	assert.NotNil(t, mine)
	assert.Empty(t, mine)
	catalog.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestListMineAnonymous(t *testing.T) {
	repo := new(MockRepository)
	_, err := newTestService(repo, new(MockCatalog)).ListMine(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	repo.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
}

func TestListMineMissingCar(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListByOwner", mock.Anything, p1.ID).Return([]*Booking{
		{ID: "b1", UserID: p1.ID, CarID: c1.ID},
		{ID: "b2", UserID: p1.ID, CarID: "retired"},
	}, nil)
	catalog := new(MockCatalog)
	catalog.On("GetByIDs", mock.Anything, []string{c1.ID, "retired"}).Return(map[string]*car.Car{c1.ID: c1}, nil)

	mine, err := newTestService(repo, catalog).ListMine(context.Background(), p1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.NotNil(t, mine[0].Car)
	assert.Nil(t, mine[1].Car)
}

func TestListMineStorageErrors(t *testing.T) {
	t.Run("bookings", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListByOwner", mock.Anything, p1.ID).Return(nil, errors.New("db down"))

		_, err := newTestService(repo, new(MockCatalog)).ListMine(context.Background(), p1)
		assert.ErrorIs(t, err, ErrStorage)
	})

	t.Run("catalog", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListByOwner", mock.Anything, p1.ID).Return([]*Booking{{ID: "b1", UserID: p1.ID, CarID: c1.ID}}, nil)
		catalog := new(MockCatalog)
		catalog.On("GetByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		_, err := newTestService(repo, catalog).ListMine(context.Background(), p1)
		assert.ErrorIs(t, err, ErrStorage)
	})
}
