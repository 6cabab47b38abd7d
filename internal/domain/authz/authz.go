// Package authz is the authorization matrix: a pure function of
// (actor, action, target) that never reads session or store state.
package authz

import (
	"github.com/google/uuid"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
)

// Action is an operation an actor may attempt
type Action string

const (
	ViewListing    Action = "listing.view"
	CreateListing  Action = "listing.create"
	EditListing    Action = "listing.edit"
	ApproveListing Action = "listing.approve"
	RejectListing  Action = "listing.reject"
	ArchiveListing Action = "listing.archive"
	RestoreListing Action = "listing.restore"
	SuspendListing Action = "listing.suspend"
	FeatureListing Action = "listing.feature"
	DeleteListing  Action = "listing.delete"

	CreateFulfillment     Action = "fulfillment.create"
	ViewFulfillment       Action = "fulfillment.view"
	TransitionFulfillment Action = "fulfillment.transition"
	HideFulfillment       Action = "fulfillment.hide"

	CreatePayment Action = "payment.create"
	ViewPayment   Action = "payment.view"
	DecidePayment Action = "payment.decide"

	SubmitKYC Action = "kyc.submit"
	DecideKYC Action = "kyc.decide"

	ToggleFavorite    Action = "user.favorite"
	UpdateProfile     Action = "user.profile"
	ManageUsers       Action = "user.manage"
	ViewNotifications Action = "notification.view"
	Broadcast         Action = "notification.broadcast"
	SubmitInquiry     Action = "inquiry.create"
	ViewInquiries     Action = "inquiry.view"
	ViewStats         Action = "admin.stats"
	UploadBlob        Action = "blob.upload"
)

var readOnly = map[Action]bool{
	ViewListing:       true,
	ViewFulfillment:   true,
	ViewPayment:       true,
	ViewNotifications: true,
	ViewInquiries:     true,
	ViewStats:         true,
}

var adminOnly = map[Action]bool{
	ApproveListing:        true,
	RejectListing:         true,
	SuspendListing:        true,
	FeatureListing:        true,
	DeleteListing:         true,
	TransitionFulfillment: true,
	HideFulfillment:       true,
	DecidePayment:         true,
	DecideKYC:             true,
	ManageUsers:           true,
	Broadcast:             true,
	ViewInquiries:         true,
	ViewStats:             true,
}

// Target describes the record an action is aimed at. Zero fields mean the
// record has no such attribute.
type Target struct {
	// OwnerID is the dealer that owns the listing or fulfillment record.
	OwnerID *uuid.UUID
	// SubjectID is the user the record belongs to: a requester, a payer,
	// or the account being edited.
	SubjectID        *uuid.UUID
	HiddenFromDealer bool
	ListingStatus    entities.ListingStatus
	ArchivedBy       entities.Archiver
	Public           bool
}

// NoTarget is used for actions that create a record owned by the actor.
var NoTarget = Target{}

// ListingTarget describes a stored listing.
func ListingTarget(l *entities.Listing) Target {
	return Target{
		OwnerID:       l.DealerID,
		ListingStatus: l.Status(),
		ArchivedBy:    l.ArchivedBy(),
		Public:        l.PubliclyVisible(),
	}
}

// FulfillmentTarget describes a stored booking or rental.
func FulfillmentTarget(r entities.FulfillmentRecord) Target {
	requester := r.RequesterID()
	return Target{
		OwnerID:          r.OwnerDealerID(),
		SubjectID:        &requester,
		HiddenFromDealer: r.HiddenFromDealer(),
	}
}

// SubjectTarget describes a record that belongs to one user.
func SubjectTarget(userID uuid.UUID) Target {
	return Target{SubjectID: &userID}
}

// Decision is the outcome of an authorization check
type Decision struct {
	Allowed bool
	Reason  domainerrors.DenyReason
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason domainerrors.DenyReason) Decision {
	return Decision{Reason: reason}
}

// Authorize evaluates the matrix.
func Authorize(actor entities.Actor, action Action, target Target) Decision {
	if actor.Suspended && !readOnly[action] {
		return deny(domainerrors.DenyAccountSuspended)
	}
	if actor.IsAdmin() {
		return allow()
	}
	if adminOnly[action] {
		return deny(domainerrors.DenyWrongRole)
	}

	switch action {
	case ViewListing:
		if target.Public || isSelf(target.OwnerID, actor.ID) {
			return allow()
		}
		return deny(domainerrors.DenyNotOwner)

	case CreateListing:
		if !actor.IsDealer() {
			return deny(domainerrors.DenyWrongRole)
		}
		if !actor.Verified {
			return deny(domainerrors.DenyNotVerified)
		}
		return allow()

	case EditListing, ArchiveListing:
		if !actor.IsDealer() {
			return deny(domainerrors.DenyWrongRole)
		}
		if !isSelf(target.OwnerID, actor.ID) {
			return deny(domainerrors.DenyNotOwner)
		}
		return allow()

	case RestoreListing:
		if !actor.IsDealer() {
			return deny(domainerrors.DenyWrongRole)
		}
		if !isSelf(target.OwnerID, actor.ID) {
			return deny(domainerrors.DenyNotOwner)
		}
		if target.ListingStatus == entities.ListingStatusRejected {
			return deny(domainerrors.DenyWrongRole)
		}
		if target.ArchivedBy == entities.ArchivedByAdmin {
			return deny(domainerrors.DenyRecordLocked)
		}
		return allow()

	case CreateFulfillment, CreatePayment, SubmitInquiry, ToggleFavorite:
		if !actor.IsBuyer() {
			return deny(domainerrors.DenyWrongRole)
		}
		return requireSelf(actor, target)

	case ViewFulfillment:
		if actor.IsDealer() {
			if !isSelf(target.OwnerID, actor.ID) {
				return deny(domainerrors.DenyNotOwner)
			}
			if target.HiddenFromDealer {
				return deny(domainerrors.DenyRecordLocked)
			}
			return allow()
		}
		return requireSelf(actor, target)

	case ViewPayment:
		if !actor.IsBuyer() {
			return deny(domainerrors.DenyWrongRole)
		}
		return requireSelf(actor, target)

	case SubmitKYC, UpdateProfile, ViewNotifications, UploadBlob:
		return requireSelf(actor, target)
	}

	return deny(domainerrors.DenyWrongRole)
}

// Require returns an *AuthorizationError when the matrix denies the action.
func Require(actor entities.Actor, action Action, target Target) error {
	d := Authorize(actor, action, target)
	if d.Allowed {
		return nil
	}
	return domainerrors.Denied(string(action), d.Reason)
}

// DealerCanSee is the ownership predicate behind a dealer's "own bookings" and
// "own rentals" views. ViewFulfillment applies the same rule.
func DealerCanSee(dealerID uuid.UUID, r entities.FulfillmentRecord) bool {
	return isSelf(r.OwnerDealerID(), dealerID) && !r.HiddenFromDealer()
}

func requireSelf(actor entities.Actor, target Target) Decision {
	if target.SubjectID == nil || *target.SubjectID == actor.ID {
		return allow()
	}
	return deny(domainerrors.DenyNotOwner)
}

func isSelf(id *uuid.UUID, actorID uuid.UUID) bool {
	return id != nil && *id == actorID
}
