package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Listing struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey"`
	DealerID         *uuid.UUID        `gorm:"type:uuid;index"` // nil for platform stock
	Make             string            `gorm:"type:varchar(100);not null"`
	Model            string            `gorm:"type:varchar(100);not null"`
	Year             int               `gorm:"not null"`
	Price            string            `gorm:"type:varchar(100);not null"` // decimal
	Mileage          int               `gorm:"not null;default:0"`
	Description      string            `gorm:"type:text"`
	Specs            map[string]string `gorm:"type:jsonb;serializer:json"`
	Categories       pq.StringArray    `gorm:"type:text[]"`
	Images           pq.StringArray    `gorm:"type:text[]"`
	Status           string            `gorm:"type:varchar(20);not null;index"`
	ModerationReason *string           `gorm:"type:text"`
	ArchivedBy       string            `gorm:"type:varchar(20);not null;default:'none'"`
	IsSuspended      bool              `gorm:"not null;default:false"`
	IsFeatured       bool              `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
