package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/infrastructure/models"
)

// NotificationRepository implements the per-user notification feed
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create writes one notification
func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	m := &models.Notification{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		Title:       n.Title,
		Message:     n.Message,
		Type:        string(n.Type),
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
	return mapError(r.db.WithContext(ctx).Create(m).Error)
}

// ListByRecipient lists a user's notifications, newest first
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*entities.Notification, error) {
	var ms []models.Notification
	if err := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID).
		Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]*entities.Notification, 0, len(ms))
	for _, m := range ms {
		out = append(out, &entities.Notification{
			ID:          m.ID,
			RecipientID: m.RecipientID,
			Title:       m.Title,
			Message:     m.Message,
			Type:        entities.NotificationType(m.Type),
			Read:        m.Read,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead flips one notification of the recipient to read
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Updates(map[string]interface{}{"read": true}))
}

// MarkAllRead flips every unread notification of the recipient
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	return mapError(r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Updates(map[string]interface{}{"read": true}).Error)
}

// DeleteForRecipient bulk-deletes the recipient's notifications. An empty id
// list clears the whole feed.
func (r *NotificationRepository) DeleteForRecipient(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	result := query.Delete(&models.Notification{})
	return result.RowsAffected, mapError(result.Error)
}
