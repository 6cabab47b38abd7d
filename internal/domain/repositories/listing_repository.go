package repositories

import (
	"context"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/entities"
)

// ListingRepository defines listing data operations
type ListingRepository interface {
	Create(ctx context.Context, listing *entities.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error)
	List(ctx context.Context, filter entities.ListingFilter) ([]*entities.Listing, int64, error)
	CountByStatus(ctx context.Context, status entities.ListingStatus) (int64, error)
	UpdateState(ctx context.Context, id uuid.UUID, state entities.ListingState) error
	UpdateDetails(ctx context.Context, listing *entities.Listing) error
	SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}
