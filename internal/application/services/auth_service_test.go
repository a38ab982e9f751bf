package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/api/internal/domain/entities"
	"github.com/taskdeck/api/internal/infrastructure/config"
	"github.com/taskdeck/api/internal/infrastructure/logger"
	"github.com/taskdeck/api/internal/ports"
)

type userRepoMock struct {
	mock.Mock
}

func (m *userRepoMock) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)

	var user *entities.User
	if value := args.Get(0); value != nil {
		user = value.(*entities.User)
	}
	return user, args.Error(1)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)

	var user *entities.User
	if value := args.Get(0); value != nil {
		user = value.(*entities.User)
	}
	return user, args.Error(1)
}

func (m *userRepoMock) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:    "unit-test-secret",
		Issuer:    "taskdeck-test",
		ExpiresIn: time.Hour,
	}
}

func TestAuthService_Register_IssuesValidToken(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("EmailExists", mock.Anything, "ada@example.com").Return(false, nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(user *entities.User) bool {
		return user.Email == "ada@example.com" && user.IsActive && user.PasswordHash != ""
	})).Return(nil).Once()

	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())

	resp, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "correct horse",
	})

	require.NoError(t, err)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, int64(3600), resp.ExpiresIn)
	require.Empty(t, resp.User.PasswordHash)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID.String(), claims.UserID)
	require.Equal(t, "ada@example.com", claims.Email)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("EmailExists", mock.Anything, "ada@example.com").Return(true, nil).Once()

	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())

	_, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "correct horse",
	})

	require.ErrorIs(t, err, entities.ErrEmailTaken)
	repo.AssertNotCalled(t, "Create")
}

func TestAuthService_Register_InvalidInput(t *testing.T) {
	repo := new(userRepoMock)
	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())

	_, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "not-an-email",
		Username: "ab",
		Password: "short",
	})

	var ve *entities.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "email")
	require.Contains(t, ve.Fields, "username")
	require.Contains(t, ve.Fields, "password")
	repo.AssertNotCalled(t, "EmailExists")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(userRepoMock)
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(&entities.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil).Once()

	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())

	_, err = svc.Login(context.Background(), ports.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong horse",
	})

	require.ErrorIs(t, err, entities.ErrInvalidCredentials)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownEmailIsIndistinguishable(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, entities.ErrUserNotFound).Once()

	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())

	_, err := svc.Login(context.Background(), ports.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	require.ErrorIs(t, err, entities.ErrInvalidCredentials)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(userRepoMock)
	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(&entities.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: string(hash),
		IsActive:     false,
	}, nil).Once()

	svc := NewAuthService(repo, testJWTConfig(), logger.NewNop())

	_, err = svc.Login(context.Background(), ports.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})

	require.ErrorIs(t, err, entities.ErrInvalidCredentials)
	repo.AssertExpectations(t)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	repo := new(userRepoMock)
	repo.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	issuer := NewAuthService(repo, testJWTConfig(), logger.NewNop())
	resp, err := issuer.Register(context.Background(), ports.RegisterRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "correct horse",
	})
	require.NoError(t, err)

	other := NewAuthService(repo, config.JWTConfig{
		Secret:    "a-different-secret",
		Issuer:    "taskdeck-test",
		ExpiresIn: time.Hour,
	}, logger.NewNop())

	_, err = other.ValidateToken(resp.Token)
	require.Error(t, err)
}
