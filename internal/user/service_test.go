package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/car-rental-backend/internal/auth"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	args := m.Called(ctx, id, t)
	return args.Error(0)
}

func (m *MockRepository) SetSystemAdmin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) Service {
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4), zap.NewNop())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(nil, ErrNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Email == "alice@example.com" && u.Name == "Alice" && u.IsActive && u.PasswordHash != "password123"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*User).ID = "user-1"
		}).Return(nil)

		u, err := newTestService(repo).Register(ctx, "  Alice@Example.com ", "password123", " Alice ")
		require.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(&User{ID: "user-1"}, nil)

		_, err := newTestService(repo).Register(ctx, "alice@example.com", "password123", "Alice")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newTestService(new(MockRepository))

		_, err := svc.Register(ctx, "", "password123", "Alice")
		assert.ErrorIs(t, err, ErrEmailRequired)

		_, err = svc.Register(ctx, "not-an-email", "password123", "Alice")
		assert.ErrorIs(t, err, ErrEmailRequired)

		_, err = svc.Register(ctx, "alice@example.com", "password123", "  ")
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = svc.Register(ctx, "alice@example.com", "short", "Alice")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(nil, errors.New("db down"))

		_, err := newTestService(repo).Register(ctx, "alice@example.com", "password123", "Alice")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.NewBcryptPasswordHasherWithCost(4).Hash("password123")
	require.NoError(t, err)

	active := &User{ID: "user-1", Email: "alice@example.com", PasswordHash: hash, Name: "Alice", IsActive: true}

	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(active, nil)
		repo.On("UpdateLastLogin", ctx, "user-1", mock.AnythingOfType("time.Time")).Return(nil)

		u, err := newTestService(repo).Login(ctx, "ALICE@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("last login failure is ignored", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(&User{ID: "user-1", PasswordHash: hash, IsActive: true}, nil)
		repo.On("UpdateLastLogin", ctx, "user-1", mock.Anything).Return(errors.New("db down"))

		_, err := newTestService(repo).Login(ctx, "alice@example.com", "password123")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(active, nil)

		_, err := newTestService(repo).Login(ctx, "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "bob@example.com").Return(nil, ErrNotFound)

		_, err := newTestService(repo).Login(ctx, "bob@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").Return(&User{ID: "user-1", PasswordHash: hash}, nil)

		_, err := newTestService(repo).Login(ctx, "alice@example.com", "password123")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestLoginPromotesConfiguredAdmins(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.NewBcryptPasswordHasherWithCost(4).Hash("password123")
	require.NoError(t, err)

	newSvc := func(repo Repository) Service {
		return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4), zap.NewNop(),
			WithAdminEmails([]string{" Owner@Example.com ", ""}))
	}

	t.Run("listed user is promoted", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "owner@example.com").
			Return(&User{ID: "user-1", Email: "owner@example.com", PasswordHash: hash, IsActive: true}, nil)
		repo.On("SetSystemAdmin", ctx, "user-1").Return(nil).Once()
		repo.On("UpdateLastLogin", ctx, "user-1", mock.Anything).Return(nil)

		u, err := newSvc(repo).Login(ctx, "owner@example.com", "password123")
		require.NoError(t, err)
		assert.True(t, u.IsSystemAdmin)
		repo.AssertExpectations(t)
	})

	t.Run("existing admin is left alone", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "owner@example.com").
			Return(&User{ID: "user-1", Email: "owner@example.com", PasswordHash: hash, IsActive: true, IsSystemAdmin: true}, nil)
		repo.On("UpdateLastLogin", ctx, "user-1", mock.Anything).Return(nil)

		_, err := newSvc(repo).Login(ctx, "owner@example.com", "password123")
		require.NoError(t, err)
		repo.AssertNotCalled(t, "SetSystemAdmin", mock.Anything, mock.Anything)
	})

	t.Run("unlisted user is not promoted", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "alice@example.com").
			Return(&User{ID: "user-2", Email: "alice@example.com", PasswordHash: hash, IsActive: true}, nil)
		repo.On("UpdateLastLogin", ctx, "user-2", mock.Anything).Return(nil)

		u, err := newSvc(repo).Login(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.False(t, u.IsSystemAdmin)
		repo.AssertNotCalled(t, "SetSystemAdmin", mock.Anything, mock.Anything)
	})

	t.Run("promotion failure fails the login", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByEmail", ctx, "owner@example.com").
			Return(&User{ID: "user-1", Email: "owner@example.com", PasswordHash: hash, IsActive: true}, nil)
		repo.On("SetSystemAdmin", ctx, "user-1").Return(errors.New("db down"))

		_, err := newSvc(repo).Login(ctx, "owner@example.com", "password123")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}
