package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/usecases"
	"motorhub.backend/pkg/crypto"
	"motorhub.backend/pkg/jwt"
)

func newAuthFixture(t *testing.T) (*MockUserRepository, *usecases.AuthUsecase) {
	t.Helper()
	crypto.SetCost(4)
	t.Cleanup(func() { crypto.SetCost(crypto.DefaultCost) })
	repo := new(MockUserRepository)
	return repo, usecases.NewAuthUsecase(repo, jwt.NewJWTService("secret", time.Hour, 24*time.Hour))
}

func TestAuthUsecase_Register(t *testing.T) {
	repo, uc := newAuthFixture(t)
	repo.On("GetByEmail", mock.Anything, "dana@example.com").Return(nil, domainerrors.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.Role == entities.UserRoleDealer && u.KYCStatus == entities.KYCNone && !u.IsVerified
	})).Return(nil).Once()

	user, err := uc.Register(context.Background(), &entities.RegisterInput{
		Name: "Dana", Email: " Dana@Example.com ", Password: "password123", Role: entities.UserRoleDealer,
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.True(t, crypto.CheckPassword("password123", user.PasswordHash))
	repo.AssertExpectations(t)
}

func TestAuthUsecase_Register_TrimsBeforeValidating(t *testing.T) {
	repo, uc := newAuthFixture(t)

	_, err := uc.Register(context.Background(), &entities.RegisterInput{
		Name: "  A  ", Email: "al@example.com", Password: "password123",
	})
	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)

	repo.On("GetByEmail", mock.Anything, "al@example.com").Return(nil, domainerrors.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	input := &entities.RegisterInput{Name: "  Al  ", Email: "\tAL@example.com\n", Password: "password123"}
	user, err := uc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Al", user.Name)
	assert.Equal(t, "al@example.com", user.Email)
	assert.Equal(t, "\tAL@example.com\n", input.Email)
	repo.AssertExpectations(t)
}

func TestAuthUsecase_Register_Duplicate(t *testing.T) {
	repo, uc := newAuthFixture(t)
	repo.On("GetByEmail", mock.Anything, "bea@example.com").Return(&entities.User{ID: uuid.New()}, nil)

	_, err := uc.Register(context.Background(), &entities.RegisterInput{
		Name: "Bea", Email: "bea@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_AdminRoleRefused(t *testing.T) {
	_, uc := newAuthFixture(t)
	_, err := uc.Register(context.Background(), &entities.RegisterInput{
		Name: "Eve", Email: "eve@example.com", Password: "password123", Role: entities.UserRoleAdmin,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestAuthUsecase_Login(t *testing.T) {
	repo, uc := newAuthFixture(t)
	hash, err := crypto.HashPassword("password123")
	require.NoError(t, err)
	active := &entities.User{ID: uuid.New(), Email: "bea@example.com", PasswordHash: hash, Role: entities.UserRoleBuyer}
	suspended := &entities.User{ID: uuid.New(), Email: "sam@example.com", PasswordHash: hash, Role: entities.UserRoleBuyer, IsSuspended: true}
	repo.On("GetByEmail", mock.Anything, "bea@example.com").Return(active, nil)
	repo.On("GetByEmail", mock.Anything, "sam@example.com").Return(suspended, nil)
	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domainerrors.ErrNotFound)

	resp, err := uc.Login(context.Background(), &entities.LoginInput{Email: "bea@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	_, err = uc.Login(context.Background(), &entities.LoginInput{Email: "bea@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), &entities.LoginInput{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), &entities.LoginInput{Email: "sam@example.com", Password: "password123"})
	var authErr *domainerrors.AuthorizationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domainerrors.DenyAccountSuspended, authErr.Reason)
}

func TestAuthUsecase_RefreshToken(t *testing.T) {
	repo, uc := newAuthFixture(t)
	hash, err := crypto.HashPassword("password123")
	require.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "bea@example.com", PasswordHash: hash, Role: entities.UserRoleBuyer}
	repo.On("GetByEmail", mock.Anything, "bea@example.com").Return(user, nil)
	repo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	resp, err := uc.Login(context.Background(), &entities.LoginInput{Email: "bea@example.com", Password: "password123"})
	require.NoError(t, err)

	pair, err := uc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = uc.RefreshToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
