package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	DealerID       *uuid.UUID `gorm:"type:uuid;index"`
	ListingID      uuid.UUID  `gorm:"type:uuid;not null"`
	ScheduledAt    time.Time  `gorm:"not null"`
	Location       string     `gorm:"type:varchar(255);not null"`
	Notes          string     `gorm:"type:text"`
	Status         string     `gorm:"type:varchar(20);not null;index"`
	HideFromDealer bool       `gorm:"not null;default:false"`
	ListingLabel   string     `gorm:"type:varchar(255)"`
	UserName       string     `gorm:"type:varchar(100)"`
	UserEmail      string     `gorm:"type:varchar(255)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Rental struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	DealerID       *uuid.UUID `gorm:"type:uuid;index"`
	ListingID      uuid.UUID  `gorm:"type:uuid;not null"`
	StartDate      time.Time  `gorm:"type:date;not null"`
	DurationDays   int        `gorm:"not null"`
	Location       string     `gorm:"type:varchar(255);not null"`
	Status         string     `gorm:"type:varchar(20);not null;index"`
	HideFromDealer bool       `gorm:"not null;default:false"`
	ListingLabel   string     `gorm:"type:varchar(255)"`
	UserName       string     `gorm:"type:varchar(100)"`
	UserEmail      string     `gorm:"type:varchar(255)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
