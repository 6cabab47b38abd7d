package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// PaymentItemType is what the payment settles
type PaymentItemType string

const (
	PaymentItemPurchase PaymentItemType = "Purchase"
	PaymentItemRental   PaymentItemType = "Rental"
)

// PaymentStatus represents payment proof status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusVerified PaymentStatus = "Verified"
	PaymentStatusRejected PaymentStatus = "Rejected"
)

// Terminal reports whether no further decision is accepted.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusVerified || s == PaymentStatusRejected
}

// PaymentDecision is an admin verdict on a payment proof
type PaymentDecision string

const (
	PaymentVerify PaymentDecision = "verify"
	PaymentReject PaymentDecision = "reject"
)

// Payment represents a submitted proof of payment
type Payment struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	ItemType        PaymentItemType `json:"itemType"`
	ItemID          uuid.UUID       `json:"itemId"`
	ItemDescription string          `json:"itemDescription"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	ReferenceID     string          `json:"referenceId"`
	Status          PaymentStatus   `json:"status"`
	DecidedAt       null.Time       `json:"decidedAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// PaymentInput represents a proof of payment submission
type PaymentInput struct {
	ItemType    PaymentItemType `json:"itemType" validate:"required,oneof=Purchase Rental"`
	ItemID      uuid.UUID       `json:"itemId" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method" validate:"required,max=50"`
	ReferenceID string          `json:"referenceId" validate:"required,max=255"`
}

// PaymentFilter narrows payment queries
type PaymentFilter struct {
	UserID *uuid.UUID
	Status PaymentStatus
}

// PaymentVolume is the verified volume aggregate
type PaymentVolume struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}
