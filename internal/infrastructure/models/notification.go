package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Message     string    `gorm:"type:text;not null"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Read        bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

type Broadcast struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	Target    string    `gorm:"type:varchar(20);not null"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Message   string    `gorm:"type:text;not null"`
	Type      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Inquiry struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ListingID    uuid.UUID `gorm:"type:uuid;not null"`
	ListingLabel string    `gorm:"type:varchar(255)"`
	UserName     string    `gorm:"type:varchar(100)"`
	UserEmail    string    `gorm:"type:varchar(255)"`
	Message      string    `gorm:"type:text;not null"`
	CreatedAt    time.Time
}

func (Inquiry) TableName() string {
	return "inquiries"
}
