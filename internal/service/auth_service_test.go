package service

import (
	"context"
	"testing"
	"time"

	"librarium/internal/middleware/auth"
	"librarium/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// --- MOCK REPOSITORY ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) StampLastLogin(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// --- TESTS ---

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testSecret, time.Hour)

		repo.On("FindByUsername", mock.Anything, "reader").Return(nil, gorm.ErrRecordNotFound).Once()
		repo.On("FindByEmail", mock.Anything, "reader@example.com").Return(nil, gorm.ErrRecordNotFound).Once()
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()

		user, err := svc.Register(ctx, "Reader", "reader@example.com", "sw0rdfish123")
		require.NoError(t, err)

		// username is stored lowercased, password is stored hashed
		assert.Equal(t, "reader", user.Username)
		assert.NotEqual(t, "sw0rdfish123", user.Password)
		assert.NoError(t, auth.VerifyPassword(user.Password, "sw0rdfish123"))
		repo.AssertExpectations(t)
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testSecret, time.Hour)

		existing := &models.User{ID: "u1", Username: "reader"}
		repo.On("FindByUsername", mock.Anything, "reader").Return(existing, nil).Once()

		_, err := svc.Register(ctx, "reader", "other@example.com", "sw0rdfish123")
		assert.ErrorIs(t, err, ErrNameInUse)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testSecret, time.Hour)

		existing := &models.User{ID: "u1", Email: "reader@example.com"}
		repo.On("FindByUsername", mock.Anything, "reader").Return(nil, gorm.ErrRecordNotFound).Once()
		repo.On("FindByEmail", mock.Anything, "reader@example.com").Return(existing, nil).Once()

		_, err := svc.Register(ctx, "reader", "reader@example.com", "sw0rdfish123")
		assert.ErrorIs(t, err, ErrEmailInUse)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hashed, err := auth.HashPassword("sw0rdfish123")
	require.NoError(t, err)
	stored := &models.User{ID: "u1", Username: "reader", Password: hashed}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testSecret, time.Hour)

		repo.On("FindByUsername", mock.Anything, "reader").Return(stored, nil).Once()
		repo.On("StampLastLogin", mock.Anything, "u1", mock.AnythingOfType("time.Time")).Return(nil).Once()

		token, user, err := svc.Login(ctx, "Reader", "sw0rdfish123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotNil(t, user.LastLogin)
		repo.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testSecret, time.Hour)

		repo.On("FindByUsername", mock.Anything, "reader").Return(stored, nil).Once()

		_, _, err := svc.Login(ctx, "reader", "not-the-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		repo.AssertNotCalled(t, "StampLastLogin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, testSecret, time.Hour)

		repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound).Once()

		_, _, err := svc.Login(ctx, "ghost", "whatever12345")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := NewAuthService(nil, testSecret, time.Hour)

	user := &models.User{ID: "u1", Username: "reader"}
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "reader", claims.Username)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	svc := NewAuthService(nil, testSecret, time.Hour)

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewAuthService(nil, "another-secret-another-secret-32", time.Hour)
		token, err := other.GenerateToken(&models.User{ID: "u1", Username: "reader"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		short := NewAuthService(nil, testSecret, -time.Minute)
		token, err := short.GenerateToken(&models.User{ID: "u1", Username: "reader"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
