package services_test

import (
	"context"
	"testing"

	"swiftparcel/internal/adapters/persistence/models"
	"swiftparcel/internal/config"
	"swiftparcel/internal/core/services"
	"swiftparcel/internal/pkg/jwt"
	"swiftparcel/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockRefreshTokenRepository struct{ mock.Mock }

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func authConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func TestRegister_WeakPasswordRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := services.NewAuthService(userRepo, tokenRepo, authConfig())

	_, err := svc.Register(context.Background(), &services.RegisterInput{
		Email:    "a@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, services.ErrWeakPassword)
	userRepo.AssertNotCalled(t, "Create")
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := services.NewAuthService(userRepo, tokenRepo, authConfig())

	userRepo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&models.User{ID: 1}, nil)

	_, err := svc.Register(context.Background(), &services.RegisterInput{
		Email:    "taken@example.com",
		Password: "longenough",
	})
	assert.ErrorIs(t, err, services.ErrUserAlreadyExists)
}

func TestRegister_IssuesTokenPair(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := services.NewAuthService(userRepo, tokenRepo, authConfig())

	userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Register(context.Background(), &services.RegisterInput{
		Email:    "new@example.com",
		Name:     "New",
		Password: "longenough",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "new@example.com", resp.User.Email)
	tokenRepo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := services.NewAuthService(userRepo, tokenRepo, authConfig())

	hashed, err := password.Hash("correct-password")
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(&models.User{
		ID: 1, Email: "a@example.com", Password: hashed,
	}, nil)

	_, err = svc.Login(context.Background(), &services.LoginInput{
		Email:    "a@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := services.NewAuthService(userRepo, tokenRepo, authConfig())

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever123",
	})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := services.NewAuthService(userRepo, tokenRepo, authConfig())

	hashed, err := password.Hash("correct-password")
	require.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(&models.User{
		ID: 1, Email: "a@example.com", Password: hashed, Role: "user",
	}, nil)
	userRepo.On("TouchLastLogIn", mock.Anything, "a@example.com", mock.Anything).Return(nil)
	tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Login(context.Background(), &services.LoginInput{
		Email:    "a@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRefresh_RotatesToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	cfg := authConfig()
	svc := services.NewAuthService(userRepo, tokenRepo, cfg)

	// Issue a real pair first so the refresh token validates.
	userRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	registered, err := svc.Register(context.Background(), &services.RegisterInput{
		Email:    "a@example.com",
		Password: "longenough",
	})
	require.NoError(t, err)

	stored := &models.RefreshToken{
		ID:        11,
		UserID:    0,
		TokenHash: password.HashToken(registered.RefreshToken),
		ExpiresAt: jwt.GetExpiryTime(cfg.JWT.RefreshTokenDays),
	}
	tokenRepo.On("GetByTokenHash", mock.Anything, stored.TokenHash).Return(stored, nil)
	userRepo.On("GetByID", mock.Anything, uint(0)).Return(&models.User{Email: "a@example.com"}, nil)
	tokenRepo.On("Revoke", mock.Anything, uint(11)).Return(nil)

	resp, err := svc.Refresh(context.Background(), registered.RefreshToken)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, registered.RefreshToken, resp.RefreshToken, "refresh must rotate the token")
	tokenRepo.AssertCalled(t, "Revoke", mock.Anything, uint(11))
}

func TestRefresh_GarbageTokenRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := services.NewAuthService(userRepo, tokenRepo, authConfig())

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestLogout_IdempotentForUnknownToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := services.NewAuthService(userRepo, tokenRepo, authConfig())

	tokenRepo.On("GetByTokenHash", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Logout(context.Background(), "some-token")
	assert.NoError(t, err)
	tokenRepo.AssertNotCalled(t, "Revoke")
}
