package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/infrastructure/models"
)

// BroadcastRepository implements the broadcast message history
type BroadcastRepository struct {
	db *gorm.DB
}

// NewBroadcastRepository creates a new broadcast repository
func NewBroadcastRepository(db *gorm.DB) *BroadcastRepository {
	return &BroadcastRepository{db: db}
}

// Create records a broadcast
func (r *BroadcastRepository) Create(ctx context.Context, b *entities.Broadcast) error {
	m := &models.Broadcast{
		ID:        b.ID,
		AuthorID:  b.AuthorID,
		Target:    string(b.Target),
		Title:     b.Title,
		Message:   b.Message,
		Type:      string(b.Type),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	return mapError(r.db.WithContext(ctx).Create(m).Error)
}

// GetByID gets a broadcast by ID
func (r *BroadcastRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Broadcast, error) {
	var m models.Broadcast
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return toBroadcastEntity(&m), nil
}

// List lists the broadcast history, newest first
func (r *BroadcastRepository) List(ctx context.Context) ([]*entities.Broadcast, error) {
	var ms []models.Broadcast
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]*entities.Broadcast, 0, len(ms))
	for i := range ms {
		out = append(out, toBroadcastEntity(&ms[i]))
	}
	return out, nil
}

// Update edits a history entry
func (r *BroadcastRepository) Update(ctx context.Context, id uuid.UUID, title, message string) error {
	return affected(r.db.WithContext(ctx).Model(&models.Broadcast{}).Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "message": message}))
}

// Delete removes a history entry
func (r *BroadcastRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&models.Broadcast{}, "id = ?", id))
}

func toBroadcastEntity(m *models.Broadcast) *entities.Broadcast {
	return &entities.Broadcast{
		ID:        m.ID,
		AuthorID:  m.AuthorID,
		Target:    entities.BroadcastTarget(m.Target),
		Title:     m.Title,
		Message:   m.Message,
		Type:      entities.NotificationType(m.Type),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// InquiryRepository implements inquiry operations
type InquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *gorm.DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

// Create records an inquiry
func (r *InquiryRepository) Create(ctx context.Context, q *entities.Inquiry) error {
	m := &models.Inquiry{
		ID:           q.ID,
		UserID:       q.UserID,
		ListingID:    q.ListingID,
		ListingLabel: q.ListingLabel,
		UserName:     q.UserName,
		UserEmail:    q.UserEmail,
		Message:      q.Message,
		CreatedAt:    q.CreatedAt,
	}
	return mapError(r.db.WithContext(ctx).Create(m).Error)
}

// List lists every inquiry, newest first
func (r *InquiryRepository) List(ctx context.Context) ([]*entities.Inquiry, error) {
	var ms []models.Inquiry
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]*entities.Inquiry, 0, len(ms))
	for _, m := range ms {
		out = append(out, &entities.Inquiry{
			ID:           m.ID,
			UserID:       m.UserID,
			ListingID:    m.ListingID,
			ListingLabel: m.ListingLabel,
			UserName:     m.UserName,
			UserEmail:    m.UserEmail,
			Message:      m.Message,
			CreatedAt:    m.CreatedAt,
		})
	}
	return out, nil
}
