package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := r.toModel(user)
	return mapError(r.db.WithContext(ctx).Create(m).Error)
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&m).Error; err != nil {
		return nil, mapError(err)
	}
	return r.toEntity(&m), nil
}

// List lists users with optional search filter
func (r *UserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if search = strings.TrimSpace(search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR email LIKE ?", term, term)
	}
	return r.find(query)
}

// ListByRole lists every user holding the role
func (r *UserRepository) ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error) {
	return r.find(r.db.WithContext(ctx).Where("role = ?", string(role)).Order("created_at ASC"))
}

// ListByKYCStatus lists users in the KYC status, oldest submission first
func (r *UserRepository) ListByKYCStatus(ctx context.Context, status entities.KYCStatus) ([]*entities.User, error) {
	return r.find(r.db.WithContext(ctx).Where("kyc_status = ?", string(status)).Order("updated_at ASC"))
}

// Count counts every user
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, mapError(err)
}

// CountByRole counts users holding the role
func (r *UserRepository) CountByRole(ctx context.Context, role entities.UserRole) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", string(role)).Count(&n).Error
	return n, mapError(err)
}

// CountByKYCStatus counts users in the KYC status
func (r *UserRepository) CountByKYCStatus(ctx context.Context, status entities.KYCStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("kyc_status = ?", string(status)).Count(&n).Error
	return n, mapError(err)
}

// UpdateProfile updates self-service profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name string) error {
	return r.patch(ctx, id, map[string]interface{}{"name": name})
}

// UpdateSecuritySettings replaces the security flags
func (r *UserRepository) UpdateSecuritySettings(ctx context.Context, id uuid.UUID, settings entities.SecuritySettings) error {
	return affected(r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Select("security_settings").Updates(&models.User{SecuritySettings: settings}))
}

// UpdateRole changes the user's role
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error {
	return r.patch(ctx, id, map[string]interface{}{"role": string(role)})
}

// UpdateVerification writes the KYC and verification fields of the user
func (r *UserRepository) UpdateVerification(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"is_verified":          user.IsVerified,
		"verified_by_admin":    user.VerifiedByAdmin,
		"kyc_status":           string(user.KYCStatus),
		"kyc_rejection_reason": user.KYCRejectionReason.Ptr(),
		"kyc_id_front_url":     nil,
		"kyc_id_back_url":      nil,
		"kyc_selfie_url":       nil,
		"kyc_submitted_at":     nil,
	}
	if d := user.KYCDocuments; d != nil {
		updates["kyc_id_front_url"] = d.IDFrontURL
		updates["kyc_id_back_url"] = d.IDBackURL
		updates["kyc_selfie_url"] = d.SelfieURL
		updates["kyc_submitted_at"] = d.SubmittedAt
	}
	return r.patch(ctx, user.ID, updates)
}

// SetFavorites replaces the favorites set
func (r *UserRepository) SetFavorites(ctx context.Context, id uuid.UUID, favorites []uuid.UUID) error {
	ids := make(pq.StringArray, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.String())
	}
	return r.patch(ctx, id, map[string]interface{}{"favorites": ids})
}

// SetSuspended flips the suspension flag
func (r *UserRepository) SetSuspended(ctx context.Context, id uuid.UUID, suspended bool) error {
	return r.patch(ctx, id, map[string]interface{}{"is_suspended": suspended})
}

func (r *UserRepository) patch(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return affected(r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates))
}

func (r *UserRepository) find(query *gorm.DB) ([]*entities.User, error) {
	var ms []models.User
	if err := query.Find(&ms).Error; err != nil {
		return nil, mapError(err)
	}
	users := make([]*entities.User, 0, len(ms))
	for i := range ms {
		users = append(users, r.toEntity(&ms[i]))
	}
	return users, nil
}

func (r *UserRepository) toModel(u *entities.User) *models.User {
	m := &models.User{
		ID:                 u.ID,
		Email:              strings.ToLower(strings.TrimSpace(u.Email)),
		Name:               u.Name,
		PasswordHash:       u.PasswordHash,
		Role:               string(u.Role),
		IsVerified:         u.IsVerified,
		VerifiedByAdmin:    u.VerifiedByAdmin,
		KYCStatus:          string(u.KYCStatus),
		KYCRejectionReason: u.KYCRejectionReason.Ptr(),
		Favorites:          pq.StringArray{},
		SecuritySettings:   u.SecuritySettings,
		IsSuspended:        u.IsSuspended,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	for _, f := range u.Favorites {
		m.Favorites = append(m.Favorites, f.String())
	}
	if d := u.KYCDocuments; d != nil {
		m.KYCIDFrontURL = &d.IDFrontURL
		m.KYCIDBackURL = &d.IDBackURL
		m.KYCSelfieURL = &d.SelfieURL
		m.KYCSubmittedAt = &d.SubmittedAt
	}
	return m
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:                 m.ID,
		Name:               m.Name,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		Role:               entities.UserRole(m.Role),
		IsVerified:         m.IsVerified,
		VerifiedByAdmin:    m.VerifiedByAdmin,
		KYCStatus:          entities.KYCStatus(m.KYCStatus),
		KYCRejectionReason: null.StringFromPtr(m.KYCRejectionReason),
		Favorites:          make([]uuid.UUID, 0, len(m.Favorites)),
		SecuritySettings:   m.SecuritySettings,
		IsSuspended:        m.IsSuspended,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	for _, f := range m.Favorites {
		if id, err := uuid.Parse(f); err == nil {
			u.Favorites = append(u.Favorites, id)
		}
	}
	if m.KYCIDFrontURL != nil && m.KYCIDBackURL != nil && m.KYCSelfieURL != nil {
		u.KYCDocuments = &entities.KYCDocuments{
			IDFrontURL: *m.KYCIDFrontURL,
			IDBackURL:  *m.KYCIDBackURL,
			SelfieURL:  *m.KYCSelfieURL,
		}
		if m.KYCSubmittedAt != nil {
			u.KYCDocuments.SubmittedAt = *m.KYCSubmittedAt
		}
	}
	return u
}
