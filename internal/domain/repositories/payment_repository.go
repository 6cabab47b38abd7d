package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	List(ctx context.Context, filter entities.PaymentFilter) ([]*entities.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, decidedAt time.Time) error
}
