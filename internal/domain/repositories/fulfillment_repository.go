package repositories

import (
	"context"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/entities"
)

// BookingRepository defines test drive booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	List(ctx context.Context, filter entities.FulfillmentFilter) ([]*entities.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.FulfillmentStatus) error
	SetHideFromDealer(ctx context.Context, id uuid.UUID, hidden bool) error
}

// RentalRepository defines rental data operations
type RentalRepository interface {
	Create(ctx context.Context, rental *entities.Rental) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Rental, error)
	List(ctx context.Context, filter entities.FulfillmentFilter) ([]*entities.Rental, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.FulfillmentStatus) error
	SetHideFromDealer(ctx context.Context, id uuid.UUID, hidden bool) error
}
