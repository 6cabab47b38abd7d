package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/infrastructure/models"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, p *entities.Payment) error {
	m := &models.Payment{
		ID:              p.ID,
		UserID:          p.UserID,
		ItemType:        string(p.ItemType),
		ItemID:          p.ItemID,
		ItemDescription: p.ItemDescription,
		Amount:          p.Amount.String(),
		Method:          p.Method,
		ReferenceID:     p.ReferenceID,
		Status:          string(p.Status),
		DecidedAt:       p.DecidedAt.Ptr(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	return mapError(r.db.WithContext(ctx).Create(m).Error)
}

// GetByID gets a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return r.toEntity(&m)
}

// List lists payments matching the filter
func (r *PaymentRepository) List(ctx context.Context, filter entities.PaymentFilter) ([]*entities.Payment, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var ms []models.Payment
	if err := query.Find(&ms).Error; err != nil {
		return nil, mapError(err)
	}
	payments := make([]*entities.Payment, 0, len(ms))
	for i := range ms {
		p, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// UpdateStatus records a decision on a payment
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, decidedAt time.Time) error {
	return affected(r.db.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "decided_at": decidedAt}))
}

func (r *PaymentRepository) toEntity(m *models.Payment) (*entities.Payment, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return nil, domainerrors.StoreUnavailable(fmt.Errorf("payment %s amount: %w", m.ID, err))
	}
	return &entities.Payment{
		ID:              m.ID,
		UserID:          m.UserID,
		ItemType:        entities.PaymentItemType(m.ItemType),
		ItemID:          m.ItemID,
		ItemDescription: m.ItemDescription,
		Amount:          amount,
		Method:          m.Method,
		ReferenceID:     m.ReferenceID,
		Status:          entities.PaymentStatus(m.Status),
		DecidedAt:       null.TimeFromPtr(m.DecidedAt),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}
