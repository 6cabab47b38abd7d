package repositories

import (
	"context"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/entities"
)

// NotificationRepository defines per-user notification feed operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *entities.Notification) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*entities.Notification, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
	DeleteForRecipient(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) (int64, error)
}

// BroadcastRepository defines broadcast history operations
type BroadcastRepository interface {
	Create(ctx context.Context, broadcast *entities.Broadcast) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Broadcast, error)
	List(ctx context.Context) ([]*entities.Broadcast, error)
	Update(ctx context.Context, id uuid.UUID, title, message string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InquiryRepository defines inquiry operations
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *entities.Inquiry) error
	List(ctx context.Context) ([]*entities.Inquiry, error)
}
