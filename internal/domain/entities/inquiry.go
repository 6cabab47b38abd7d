package entities

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is a buyer question about a listing
type Inquiry struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	ListingID    uuid.UUID `json:"listingId"`
	ListingLabel string    `json:"listingLabel"`
	UserName     string    `json:"userName"`
	UserEmail    string    `json:"userEmail"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}

// InquiryInput represents a new inquiry
type InquiryInput struct {
	ListingID uuid.UUID `json:"listingId" validate:"required"`
	Message   string    `json:"message" validate:"required,max=2000"`
}
