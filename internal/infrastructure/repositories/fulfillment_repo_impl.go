package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/infrastructure/models"
)

func fulfillmentQuery(db *gorm.DB, filter entities.FulfillmentFilter) *gorm.DB {
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.DealerID != nil {
		db = db.Where("dealer_id = ?", *filter.DealerID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", string(filter.Status))
	}
	return db.Order("created_at DESC")
}

// BookingRepository implements test drive booking data operations
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking
func (r *BookingRepository) Create(ctx context.Context, b *entities.Booking) error {
	m := &models.Booking{
		ID:             b.ID,
		UserID:         b.UserID,
		DealerID:       b.DealerID,
		ListingID:      b.ListingID,
		ScheduledAt:    b.ScheduledAt,
		Location:       b.Location,
		Notes:          b.Notes,
		Status:         string(b.Status),
		HideFromDealer: b.HideFromDealer,
		ListingLabel:   b.ListingLabel,
		UserName:       b.UserName,
		UserEmail:      b.UserEmail,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	return mapError(r.db.WithContext(ctx).Create(m).Error)
}

// GetByID gets a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	var m models.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return r.toEntity(&m), nil
}

// List lists bookings matching the filter
func (r *BookingRepository) List(ctx context.Context, filter entities.FulfillmentFilter) ([]*entities.Booking, error) {
	var ms []models.Booking
	if err := fulfillmentQuery(r.db.WithContext(ctx), filter).Find(&ms).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]*entities.Booking, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out, nil
}

// UpdateStatus updates the booking status only
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.FulfillmentStatus) error {
	return affected(r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status)}))
}

// SetHideFromDealer updates the dealer visibility overlay only
func (r *BookingRepository) SetHideFromDealer(ctx context.Context, id uuid.UUID, hidden bool) error {
	return affected(r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).
		Updates(map[string]interface{}{"hide_from_dealer": hidden}))
}

func (r *BookingRepository) toEntity(m *models.Booking) *entities.Booking {
	return &entities.Booking{
		ID:             m.ID,
		UserID:         m.UserID,
		DealerID:       m.DealerID,
		ListingID:      m.ListingID,
		ScheduledAt:    m.ScheduledAt,
		Location:       m.Location,
		Notes:          m.Notes,
		Status:         entities.FulfillmentStatus(m.Status),
		HideFromDealer: m.HideFromDealer,
		ListingLabel:   m.ListingLabel,
		UserName:       m.UserName,
		UserEmail:      m.UserEmail,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// RentalRepository implements rental data operations
type RentalRepository struct {
	db *gorm.DB
}

// NewRentalRepository creates a new rental repository
func NewRentalRepository(db *gorm.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

// Create creates a new rental
func (r *RentalRepository) Create(ctx context.Context, rental *entities.Rental) error {
	m := &models.Rental{
		ID:             rental.ID,
		UserID:         rental.UserID,
		DealerID:       rental.DealerID,
		ListingID:      rental.ListingID,
		StartDate:      rental.StartDate,
		DurationDays:   rental.DurationDays,
		Location:       rental.Location,
		Status:         string(rental.Status),
		HideFromDealer: rental.HideFromDealer,
		ListingLabel:   rental.ListingLabel,
		UserName:       rental.UserName,
		UserEmail:      rental.UserEmail,
		CreatedAt:      rental.CreatedAt,
		UpdatedAt:      rental.UpdatedAt,
	}
	return mapError(r.db.WithContext(ctx).Create(m).Error)
}

// GetByID gets a rental by ID
func (r *RentalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Rental, error) {
	var m models.Rental
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return r.toEntity(&m), nil
}

// List lists rentals matching the filter
func (r *RentalRepository) List(ctx context.Context, filter entities.FulfillmentFilter) ([]*entities.Rental, error) {
	var ms []models.Rental
	if err := fulfillmentQuery(r.db.WithContext(ctx), filter).Find(&ms).Error; err != nil {
		return nil, mapError(err)
	}
	out := make([]*entities.Rental, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out, nil
}

// UpdateStatus updates the rental status only
func (r *RentalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.FulfillmentStatus) error {
	return affected(r.db.WithContext(ctx).Model(&models.Rental{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status)}))
}

// SetHideFromDealer updates the dealer visibility overlay only
func (r *RentalRepository) SetHideFromDealer(ctx context.Context, id uuid.UUID, hidden bool) error {
	return affected(r.db.WithContext(ctx).Model(&models.Rental{}).Where("id = ?", id).
		Updates(map[string]interface{}{"hide_from_dealer": hidden}))
}

func (r *RentalRepository) toEntity(m *models.Rental) *entities.Rental {
	return &entities.Rental{
		ID:             m.ID,
		UserID:         m.UserID,
		DealerID:       m.DealerID,
		ListingID:      m.ListingID,
		StartDate:      m.StartDate,
		DurationDays:   m.DurationDays,
		Location:       m.Location,
		Status:         entities.FulfillmentStatus(m.Status),
		HideFromDealer: m.HideFromDealer,
		ListingLabel:   m.ListingLabel,
		UserName:       m.UserName,
		UserEmail:      m.UserEmail,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
