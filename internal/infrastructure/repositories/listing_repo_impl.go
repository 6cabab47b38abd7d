package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/infrastructure/models"
)

// ListingRepository implements listing data operations
type ListingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create creates a new listing
func (r *ListingRepository) Create(ctx context.Context, listing *entities.Listing) error {
	return mapError(r.db.WithContext(ctx).Create(r.toModel(listing)).Error)
}

// GetByID gets a listing by ID
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Listing, error) {
	var m models.Listing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return r.toEntity(&m)
}

// List lists listings matching the filter with the total count before paging
func (r *ListingRepository) List(ctx context.Context, filter entities.ListingFilter) ([]*entities.Listing, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Listing{})
	if filter.DealerID != nil {
		query = query.Where("dealer_id = ?", *filter.DealerID)
	}
	if filter.PublicOnly {
		query = query.Where("status = ? AND is_suspended = ?", string(entities.ListingStatusApproved), false)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.Category != "" {
		query = r.whereCategory(query, filter.Category)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, mapError(err)
	}

	if filter.FeaturedFirst {
		query = query.Order("is_featured DESC")
	}
	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var ms []models.Listing
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, mapError(err)
	}

	listings := make([]*entities.Listing, 0, len(ms))
	for i := range ms {
		l, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, 0, err
		}
		listings = append(listings, l)
	}
	return listings, total, nil
}

// CountByStatus counts listings in the status
func (r *ListingRepository) CountByStatus(ctx context.Context, status entities.ListingStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Listing{}).Where("status = ?", string(status)).Count(&n).Error
	return n, mapError(err)
}

// UpdateState persists a moderation state. The reason and archiver columns
// are always written together with the status so stale values never survive.
func (r *ListingRepository) UpdateState(ctx context.Context, id uuid.UUID, state entities.ListingState) error {
	updates := map[string]interface{}{
		"status":            string(state.Status()),
		"moderation_reason": nil,
		"archived_by":       string(entities.ArchivedByNone),
	}
	switch s := state.(type) {
	case entities.ListingRejected:
		updates["moderation_reason"] = s.Reason
	case entities.ListingArchived:
		updates["archived_by"] = string(s.By)
	}
	return r.patch(ctx, id, updates)
}

// UpdateDetails writes non-status fields
func (r *ListingRepository) UpdateDetails(ctx context.Context, listing *entities.Listing) error {
	m := r.toModel(listing)
	return affected(r.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", listing.ID).
		Select("make", "model", "year", "price", "mileage", "description", "specs", "categories", "images").
		Updates(m))
}

// SetSuspended flips the public-inventory overlay
func (r *ListingRepository) SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error {
	return r.patch(ctx, id, map[string]interface{}{"is_suspended": suspended})
}

// SetFeatured flips the featured flag
func (r *ListingRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	return r.patch(ctx, id, map[string]interface{}{"is_featured": featured})
}

// Delete soft deletes a listing
func (r *ListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Delete(&models.Listing{}, "id = ?", id))
}

func (r *ListingRepository) patch(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return affected(r.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", id).Updates(updates))
}

// whereCategory matches one element of the categories array. pq encodes
// every element quoted, which lets non-postgres dialects match on text.
func (r *ListingRepository) whereCategory(query *gorm.DB, category string) *gorm.DB {
	if r.db.Dialector.Name() == "postgres" {
		return query.Where("? = ANY(categories)", category)
	}
	return query.Where("categories LIKE ?", fmt.Sprintf("%%%q%%", category))
}

func (r *ListingRepository) toModel(l *entities.Listing) *models.Listing {
	m := &models.Listing{
		ID:          l.ID,
		DealerID:    l.DealerID,
		Make:        l.Make,
		Model:       l.Model,
		Year:        l.Year,
		Price:       l.Price.String(),
		Mileage:     l.Mileage,
		Description: l.Description,
		Specs:       l.Specs,
		Categories:  pq.StringArray(l.Categories),
		Images:      pq.StringArray(l.Images),
		Status:      string(l.Status()),
		ArchivedBy:  string(l.ArchivedBy()),
		IsSuspended: l.IsSuspended,
		IsFeatured:  l.IsFeatured,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if m.Categories == nil {
		m.Categories = pq.StringArray{}
	}
	if m.Images == nil {
		m.Images = pq.StringArray{}
	}
	m.ModerationReason = l.ModerationReason().Ptr()
	return m
}

func (r *ListingRepository) toEntity(m *models.Listing) (*entities.Listing, error) {
	state, err := entities.RestoreListingState(entities.ListingStatus(m.Status), null.StringFromPtr(m.ModerationReason), entities.Archiver(m.ArchivedBy))
	if err != nil {
		return nil, domainerrors.StoreUnavailable(fmt.Errorf("listing %s: %w", m.ID, err))
	}
	price, err := decimal.NewFromString(m.Price)
	if err != nil {
		return nil, domainerrors.StoreUnavailable(fmt.Errorf("listing %s price: %w", m.ID, err))
	}
	return &entities.Listing{
		ID:          m.ID,
		DealerID:    m.DealerID,
		Make:        m.Make,
		Model:       m.Model,
		Year:        m.Year,
		Price:       price,
		Mileage:     m.Mileage,
		Description: m.Description,
		Specs:       m.Specs,
		Categories:  []string(m.Categories),
		Images:      []string(m.Images),
		State:       state,
		IsSuspended: m.IsSuspended,
		IsFeatured:  m.IsFeatured,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}
