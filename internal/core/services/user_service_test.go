package services_test

import (
	"context"
	"testing"
	"time"

	"swiftparcel/internal/adapters/persistence/models"
	"swiftparcel/internal/core/domain"
	"swiftparcel/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogIn(ctx context.Context, email string, at time.Time) error {
	args := m.Called(ctx, email, at)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, role string) (int64, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateRoleByEmail(ctx context.Context, email, role string) (int64, error) {
	args := m.Called(ctx, email, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) SearchByEmail(ctx context.Context, fragment string, limit int) ([]*models.User, error) {
	args := m.Called(ctx, fragment, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func TestRegisterOrTouch_NewUserInserted(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo)

	userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "new@example.com" && u.Role == string(domain.RoleUser) && !u.LastLogIn.IsZero()
	})).Return(nil)

	out, err := svc.RegisterOrTouch(context.Background(), &services.RegisterOrTouchInput{
		Email: "new@example.com",
		Name:  "New User",
	})
	require.NoError(t, err)

	assert.True(t, out.Inserted)
	assert.Equal(t, string(domain.RoleUser), out.User.Role)
	userRepo.AssertNotCalled(t, "TouchLastLogIn")
}

func TestRegisterOrTouch_ExistingUserOnlyTouched(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo)

	existing := &models.User{
		ID:    3,
		Email: "old@example.com",
		Name:  "Old Name",
		Role:  string(domain.RoleAdmin),
	}
	userRepo.On("GetByEmail", mock.Anything, "old@example.com").Return(existing, nil)
	userRepo.On("TouchLastLogIn", mock.Anything, "old@example.com", mock.Anything).Return(nil)

	// The payload carries a different name and role; neither may overwrite
	// the stored record.
	out, err := svc.RegisterOrTouch(context.Background(), &services.RegisterOrTouchInput{
		Email: "old@example.com",
		Name:  "Imposter",
		Role:  "rider",
	})
	require.NoError(t, err)

	assert.False(t, out.Inserted)
	assert.Equal(t, "Old Name", out.User.Name)
	assert.Equal(t, string(domain.RoleAdmin), out.User.Role)
	assert.False(t, out.User.LastLogIn.IsZero())
	userRepo.AssertNotCalled(t, "Create")
}

func TestRegisterOrTouch_RejectsInvalidInput(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo)

	_, err := svc.RegisterOrTouch(context.Background(), &services.RegisterOrTouchInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	userRepo.On("GetByEmail", mock.Anything, "x@example.com").Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.RegisterOrTouch(context.Background(), &services.RegisterOrTouchInput{
		Email: "x@example.com",
		Role:  "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	userRepo.AssertNotCalled(t, "Create")
}

func TestGetRole_DefaultsToUserWhenMissing(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo)

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	role, err := svc.GetRole(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleUser), role)
}

func TestGetRole_ReturnsStoredRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo)

	userRepo.On("GetByEmail", mock.Anything, "boss@example.com").Return(&models.User{
		Email: "boss@example.com", Role: string(domain.RoleAdmin),
	}, nil)

	role, err := svc.GetRole(context.Background(), "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleAdmin), role)
}

func TestSearch_RequiresFragmentAndCapsResults(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo)

	_, err := svc.Search(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	userRepo.On("SearchByEmail", mock.Anything, "ali", services.SearchLimit).Return([]*models.User{
		{ID: 1, Email: "ali@example.com"},
		{ID: 2, Email: "aliya@example.com"},
	}, nil)

	results, err := svc.Search(context.Background(), "ali")
	require.NoError(t, err)
	assert.Len(t, results, 2)
	userRepo.AssertCalled(t, "SearchByEmail", mock.Anything, "ali", services.SearchLimit)
}

func TestUpdateRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := services.NewUserService(userRepo)

	err := svc.UpdateRole(context.Background(), 1, "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	userRepo.On("GetByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)
	err = svc.UpdateRole(context.Background(), 404, "admin")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Same role is a no-op.
	userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Role: "admin"}, nil)
	err = svc.UpdateRole(context.Background(), 1, "admin")
	require.NoError(t, err)
	userRepo.AssertNotCalled(t, "UpdateRole")

	userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2, Role: "user"}, nil)
	userRepo.On("UpdateRole", mock.Anything, uint(2), "admin").Return(int64(1), nil)
	err = svc.UpdateRole(context.Background(), 2, "admin")
	require.NoError(t, err)
	userRepo.AssertCalled(t, "UpdateRole", mock.Anything, uint(2), "admin")
}
