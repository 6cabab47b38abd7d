package repositories

import (
	"context"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context, search string) ([]*entities.User, error)
	ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error)
	ListByKYCStatus(ctx context.Context, status entities.KYCStatus) ([]*entities.User, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role entities.UserRole) (int64, error)
	CountByKYCStatus(ctx context.Context, status entities.KYCStatus) (int64, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string) error
	UpdateSecuritySettings(ctx context.Context, id uuid.UUID, settings entities.SecuritySettings) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	UpdateVerification(ctx context.Context, user *entities.User) error
	SetFavorites(ctx context.Context, id uuid.UUID, favorites []uuid.UUID) error
	SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error
}
