package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemType        string    `gorm:"type:varchar(20);not null"`
	ItemID          uuid.UUID `gorm:"type:uuid;not null"`
	ItemDescription string    `gorm:"type:varchar(255)"`
	Amount          string    `gorm:"type:varchar(100);not null"` // decimal
	Method          string    `gorm:"type:varchar(50);not null"`
	ReferenceID     string    `gorm:"type:varchar(255);not null"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
	DecidedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
