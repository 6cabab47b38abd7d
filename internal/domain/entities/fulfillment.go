package entities

import (
	"time"

	"github.com/google/uuid"
)

// FulfillmentKind distinguishes test-drive bookings from rentals
type FulfillmentKind string

const (
	FulfillmentBooking FulfillmentKind = "booking"
	FulfillmentRental  FulfillmentKind = "rental"
)

// FulfillmentStatus represents a booking or rental request status
type FulfillmentStatus string

const (
	FulfillmentPending   FulfillmentStatus = "Pending"
	FulfillmentConfirmed FulfillmentStatus = "Confirmed"
	FulfillmentAccepted  FulfillmentStatus = "Accepted"
	FulfillmentCancelled FulfillmentStatus = "Cancelled"
)

// AcceptedStatus is the positive resolution for the kind: bookings are
// confirmed, rentals are accepted.
func (k FulfillmentKind) AcceptedStatus() FulfillmentStatus {
	if k == FulfillmentBooking {
		return FulfillmentConfirmed
	}
	return FulfillmentAccepted
}

// Noun is used in notification copy.
func (k FulfillmentKind) Noun() string {
	if k == FulfillmentBooking {
		return "test drive"
	}
	return "rental"
}

// FulfillmentCommand is an admin decision on a request
type FulfillmentCommand string

const (
	FulfillmentAccept FulfillmentCommand = "accept"
	FulfillmentCancel FulfillmentCommand = "cancel"
	FulfillmentRevert FulfillmentCommand = "revert"
)

// FulfillmentRecord is the view shared by bookings and rentals.
type FulfillmentRecord interface {
	FulfillmentKind() FulfillmentKind
	RecordID() uuid.UUID
	RequesterID() uuid.UUID
	OwnerDealerID() *uuid.UUID
	CurrentStatus() FulfillmentStatus
	HiddenFromDealer() bool
	AssetLabel() string
}

// Booking represents a test drive request
type Booking struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"userId"`
	DealerID       *uuid.UUID        `json:"dealerId"`
	ListingID      uuid.UUID         `json:"listingId"`
	ScheduledAt    time.Time         `json:"scheduledAt"`
	Location       string            `json:"location"`
	Notes          string            `json:"notes,omitempty"`
	Status         FulfillmentStatus `json:"status"`
	HideFromDealer bool              `json:"hideFromDealer"`
	ListingLabel   string            `json:"listingLabel"`
	UserName       string            `json:"userName"`
	UserEmail      string            `json:"userEmail"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func (b *Booking) FulfillmentKind() FulfillmentKind { return FulfillmentBooking }
func (b *Booking) RecordID() uuid.UUID              { return b.ID }
func (b *Booking) RequesterID() uuid.UUID           { return b.UserID }
func (b *Booking) OwnerDealerID() *uuid.UUID        { return b.DealerID }
func (b *Booking) CurrentStatus() FulfillmentStatus { return b.Status }
func (b *Booking) HiddenFromDealer() bool           { return b.HideFromDealer }
func (b *Booking) AssetLabel() string               { return b.ListingLabel }

// Rental represents a rental request
type Rental struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"userId"`
	DealerID       *uuid.UUID        `json:"dealerId"`
	ListingID      uuid.UUID         `json:"listingId"`
	StartDate      time.Time         `json:"startDate"`
	DurationDays   int               `json:"durationDays"`
	Location       string            `json:"location"`
	Status         FulfillmentStatus `json:"status"`
	HideFromDealer bool              `json:"hideFromDealer"`
	ListingLabel   string            `json:"listingLabel"`
	UserName       string            `json:"userName"`
	UserEmail      string            `json:"userEmail"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func (r *Rental) FulfillmentKind() FulfillmentKind { return FulfillmentRental }
func (r *Rental) RecordID() uuid.UUID              { return r.ID }
func (r *Rental) RequesterID() uuid.UUID           { return r.UserID }
func (r *Rental) OwnerDealerID() *uuid.UUID        { return r.DealerID }
func (r *Rental) CurrentStatus() FulfillmentStatus { return r.Status }
func (r *Rental) HiddenFromDealer() bool           { return r.HideFromDealer }
func (r *Rental) AssetLabel() string               { return r.ListingLabel }

// EndDate is the last day of the rental.
func (r *Rental) EndDate() time.Time {
	return r.StartDate.AddDate(0, 0, r.DurationDays)
}

// BookingInput represents a test drive request
type BookingInput struct {
	ListingID uuid.UUID `json:"listingId" validate:"required"`
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string    `json:"time" validate:"required,datetime=15:04"`
	Location  string    `json:"location" validate:"required,max=255"`
	Notes     string    `json:"notes" validate:"max=1000"`
}

// RentalInput represents a rental request
type RentalInput struct {
	ListingID    uuid.UUID `json:"listingId" validate:"required"`
	StartDate    string    `json:"dateStart" validate:"required,datetime=2006-01-02"`
	DurationDays int       `json:"duration" validate:"required,gte=1,lte=365"`
	Location     string    `json:"location" validate:"required,max=255"`
}

// FulfillmentFilter narrows booking and rental queries
type FulfillmentFilter struct {
	UserID   *uuid.UUID
	DealerID *uuid.UUID
	Status   FulfillmentStatus
}
