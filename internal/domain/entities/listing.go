package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// ListingStatus represents a listing's publication status
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusApproved ListingStatus = "approved"
	ListingStatusRejected ListingStatus = "rejected"
	ListingStatusArchived ListingStatus = "archived"
)

// Archiver records who archived a listing
type Archiver string

const (
	ArchivedByNone   Archiver = "none"
	ArchivedByDealer Archiver = "dealer"
	ArchivedByAdmin  Archiver = "admin"
)

// Listing categories
const (
	CategoryNew      = "New"
	CategoryPreOwned = "Pre-Owned"
	CategoryRental   = "Rental"
	CategoryAuction  = "Auction"
)

// ListingState is the moderation state of a listing. Each status carries only
// the fields that exist in it, so a rejection always has a reason and only an
// archived listing knows who archived it.
type ListingState interface {
	Status() ListingStatus
	listingState()
}

type ListingPending struct{}
type ListingApproved struct{}

type ListingRejected struct {
	Reason string
}

type ListingArchived struct {
	By Archiver
}

func (ListingPending) Status() ListingStatus  { return ListingStatusPending }
func (ListingApproved) Status() ListingStatus { return ListingStatusApproved }
func (ListingRejected) Status() ListingStatus { return ListingStatusRejected }
func (ListingArchived) Status() ListingStatus { return ListingStatusArchived }

func (ListingPending) listingState()  {}
func (ListingApproved) listingState() {}
func (ListingRejected) listingState() {}
func (ListingArchived) listingState() {}

// RestoreListingState rebuilds a state from its persisted columns.
func RestoreListingState(status ListingStatus, reason null.String, archivedBy Archiver) (ListingState, error) {
	switch status {
	case ListingStatusPending:
		return ListingPending{}, nil
	case ListingStatusApproved:
		return ListingApproved{}, nil
	case ListingStatusRejected:
		if !reason.Valid || strings.TrimSpace(reason.String) == "" {
			return nil, fmt.Errorf("listing: rejected without reason")
		}
		return ListingRejected{Reason: reason.String}, nil
	case ListingStatusArchived:
		if archivedBy != ArchivedByDealer && archivedBy != ArchivedByAdmin {
			return nil, fmt.Errorf("listing: archived without archiver")
		}
		return ListingArchived{By: archivedBy}, nil
	}
	return nil, fmt.Errorf("listing: unknown status %q", status)
}

// Listing represents a vehicle offered for sale or rent
type Listing struct {
	ID          uuid.UUID
	DealerID    *uuid.UUID // nil for platform-sourced listings
	Make        string
	Model       string
	Year        int
	Price       decimal.Decimal
	Mileage     int
	Description string
	Specs       map[string]string
	Categories  []string
	Images      []string
	State       ListingState
	IsSuspended bool
	IsFeatured  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status returns the moderation status
func (l *Listing) Status() ListingStatus {
	if l.State == nil {
		return ""
	}
	return l.State.Status()
}

// ModerationReason is set only when the listing is rejected.
func (l *Listing) ModerationReason() null.String {
	if s, ok := l.State.(ListingRejected); ok {
		return null.StringFrom(s.Reason)
	}
	return null.String{}
}

// ArchivedBy is set only when the listing is archived.
func (l *Listing) ArchivedBy() Archiver {
	if s, ok := l.State.(ListingArchived); ok {
		return s.By
	}
	return ArchivedByNone
}

// OwnedBy reports whether the dealer owns the listing.
func (l *Listing) OwnedBy(dealerID uuid.UUID) bool {
	return l.DealerID != nil && *l.DealerID == dealerID
}

// PubliclyVisible reports whether the listing belongs in public inventory.
func (l *Listing) PubliclyVisible() bool {
	return l.Status() == ListingStatusApproved && !l.IsSuspended
}

// Label is the human readable asset name used in notifications and audit copies.
func (l *Listing) Label() string {
	return strings.TrimSpace(fmt.Sprintf("%d %s %s", l.Year, l.Make, l.Model))
}

type listingJSON struct {
	ID               uuid.UUID         `json:"id"`
	DealerID         *uuid.UUID        `json:"dealerId"`
	Make             string            `json:"make"`
	Model            string            `json:"model"`
	Year             int               `json:"year"`
	Price            decimal.Decimal   `json:"price"`
	Mileage          int               `json:"mileage"`
	Description      string            `json:"description,omitempty"`
	Specs            map[string]string `json:"specs,omitempty"`
	Categories       []string          `json:"categories"`
	Images           []string          `json:"images"`
	Status           ListingStatus     `json:"status"`
	ModerationReason null.String       `json:"moderationReason"`
	ArchivedBy       Archiver          `json:"archivedBy"`
	IsSuspended      bool              `json:"isSuspended"`
	IsFeatured       bool              `json:"isFeatured"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// MarshalJSON flattens the moderation state into the record shape clients read.
func (l Listing) MarshalJSON() ([]byte, error) {
	return json.Marshal(listingJSON{
		ID:               l.ID,
		DealerID:         l.DealerID,
		Make:             l.Make,
		Model:            l.Model,
		Year:             l.Year,
		Price:            l.Price,
		Mileage:          l.Mileage,
		Description:      l.Description,
		Specs:            l.Specs,
		Categories:       l.Categories,
		Images:           l.Images,
		Status:           l.Status(),
		ModerationReason: l.ModerationReason(),
		ArchivedBy:       l.ArchivedBy(),
		IsSuspended:      l.IsSuspended,
		IsFeatured:       l.IsFeatured,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	})
}

// ListingInput represents input for creating a listing
type ListingInput struct {
	Make        string            `json:"make" validate:"required,max=100"`
	Model       string            `json:"model" validate:"required,max=100"`
	Year        int               `json:"year" validate:"required,gte=1886,lte=2100"`
	Price       decimal.Decimal   `json:"price"`
	Mileage     int               `json:"mileage" validate:"gte=0"`
	Description string            `json:"description" validate:"max=5000"`
	Specs       map[string]string `json:"specs"`
	Categories  []string          `json:"categories" validate:"dive,oneof=New Pre-Owned Rental Auction"`
	Images      []string          `json:"images" validate:"dive,url"`
}

// ListingUpdate carries non-status field edits. Nil fields are left untouched.
type ListingUpdate struct {
	Make        *string           `json:"make,omitempty" validate:"omitempty,max=100"`
	Model       *string           `json:"model,omitempty" validate:"omitempty,max=100"`
	Year        *int              `json:"year,omitempty" validate:"omitempty,gte=1886,lte=2100"`
	Price       *decimal.Decimal  `json:"price,omitempty"`
	Mileage     *int              `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=5000"`
	Specs       map[string]string `json:"specs,omitempty"`
	Categories  []string          `json:"categories,omitempty" validate:"omitempty,dive,oneof=New Pre-Owned Rental Auction"`
	Images      []string          `json:"images,omitempty" validate:"omitempty,dive,url"`
}

// ListingFilter narrows listing queries
type ListingFilter struct {
	DealerID      *uuid.UUID
	Statuses      []ListingStatus
	Category      string
	PublicOnly    bool
	FeaturedFirst bool
	Limit         int
	Offset        int
}
