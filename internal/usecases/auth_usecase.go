package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/domain/repositories"
	"motorhub.backend/pkg/crypto"
	"motorhub.backend/pkg/jwt"
	"motorhub.backend/pkg/utils"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a buyer or dealer account. Admins are seeded or promoted,
// never self-registered.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	normalized := *input
	normalized.Name = strings.TrimSpace(input.Name)
	normalized.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input = &normalized
	if err := validateInput(input); err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = entities.UserRoleBuyer
	}
	if role != entities.UserRoleBuyer && role != entities.UserRoleDealer {
		return nil, domainerrors.Invalid("role", "must be BUYER or DEALER")
	}

	email := input.Email
	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           utils.NewID(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		KYCStatus:    entities.KYCNone,
		Favorites:    []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if user.IsSuspended {
		return nil, domainerrors.Denied("auth.login", domainerrors.DenyAccountSuspended)
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// RefreshToken generates new tokens from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	if user.IsSuspended {
		return nil, domainerrors.Denied("auth.refresh", domainerrors.DenyAccountSuspended)
	}
	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// Me returns the caller's own record
func (u *AuthUsecase) Me(ctx context.Context, actor entities.Actor) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, actor.ID)
}
