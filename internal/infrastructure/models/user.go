package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"motorhub.backend/internal/domain/entities"
)

type User struct {
	ID                 uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	Email              string                    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name               string                    `gorm:"type:varchar(100);not null"`
	PasswordHash       string                    `gorm:"type:varchar(255);not null"`
	Role               string                    `gorm:"type:varchar(20);not null;index"`
	IsVerified         bool                      `gorm:"not null;default:false"`
	VerifiedByAdmin    bool                      `gorm:"not null;default:false"`
	KYCStatus          string                    `gorm:"column:kyc_status;type:varchar(20);not null;index"`
	KYCIDFrontURL      *string                   `gorm:"column:kyc_id_front_url;type:text"`
	KYCIDBackURL       *string                   `gorm:"column:kyc_id_back_url;type:text"`
	KYCSelfieURL       *string                   `gorm:"column:kyc_selfie_url;type:text"`
	KYCSubmittedAt     *time.Time                `gorm:"column:kyc_submitted_at"`
	KYCRejectionReason *string                   `gorm:"column:kyc_rejection_reason;type:text"`
	Favorites          pq.StringArray            `gorm:"type:text[]"`
	SecuritySettings   entities.SecuritySettings `gorm:"type:jsonb;serializer:json"`
	IsSuspended        bool                      `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
