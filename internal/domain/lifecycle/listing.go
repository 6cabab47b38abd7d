package lifecycle

import (
	"fmt"
	"strings"

	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
)

// ListingTransition moves a listing between moderation states
type ListingTransition = Transition[entities.ListingState]

// InitialListingState is the only legal starting state for a listing created
// by the actor: dealers enter moderation, admins publish directly.
func InitialListingState(creator entities.Actor) entities.ListingState {
	if creator.IsAdmin() {
		return entities.ListingApproved{}
	}
	return entities.ListingPending{}
}

// ListingSubmitted tells every admin that moderation work has landed.
func ListingSubmitted(l *entities.Listing) []entities.NotificationIntent {
	if l.Status() != entities.ListingStatusPending {
		return nil
	}
	return []entities.NotificationIntent{
		entities.NotifyAdmins(entities.NotificationInfo, "New Listing Submitted",
			fmt.Sprintf("%s is waiting for moderation.", l.Label())),
	}
}

// ApproveListing publishes a pending listing.
func ApproveListing(l *entities.Listing) (ListingTransition, error) {
	if _, ok := l.State.(entities.ListingPending); !ok {
		return ListingTransition{}, invalidListing(l, "approve")
	}
	return listingMove(l, entities.ListingApproved{}, entities.NotificationSuccess,
		fmt.Sprintf("Your listing %s has been approved and is now live.", l.Label())), nil
}

// RejectListing refuses a pending listing. The reason is mandatory.
func RejectListing(l *entities.Listing, reason string) (ListingTransition, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ListingTransition{}, domainerrors.Invalid("reason", "a rejection reason is required")
	}
	if _, ok := l.State.(entities.ListingPending); !ok {
		return ListingTransition{}, invalidListing(l, "reject")
	}
	return listingMove(l, entities.ListingRejected{Reason: reason}, entities.NotificationWarning,
		fmt.Sprintf("Your listing %s was rejected: %s", l.Label(), reason)), nil
}

// ArchiveListing hides an approved listing and records who did it.
func ArchiveListing(l *entities.Listing, by entities.Archiver) (ListingTransition, error) {
	if by != entities.ArchivedByDealer && by != entities.ArchivedByAdmin {
		return ListingTransition{}, domainerrors.Invalid("archivedBy", "archiver must be dealer or admin")
	}
	if _, ok := l.State.(entities.ListingApproved); !ok {
		return ListingTransition{}, invalidListing(l, "archive")
	}
	who := "the dealer"
	if by == entities.ArchivedByAdmin {
		who = "an administrator"
	}
	return listingMove(l, entities.ListingArchived{By: by}, entities.NotificationInfo,
		fmt.Sprintf("Your listing %s has been archived by %s.", l.Label(), who)), nil
}

// RestoreListing returns an archived listing to approved, or re-opens a
// rejected one. Whether the caller may lift an admin archive is decided by
// the authorization matrix, not here.
func RestoreListing(l *entities.Listing) (ListingTransition, error) {
	switch l.State.(type) {
	case entities.ListingArchived, entities.ListingRejected:
	default:
		return ListingTransition{}, invalidListing(l, "restore")
	}
	t := listingMove(l, entities.ListingApproved{}, entities.NotificationSuccess,
		fmt.Sprintf("Your listing %s has been restored and is live again.", l.Label()))
	t.Effects = rewriteTitle(t.Effects, title("listing", "restored"))
	return t, nil
}

func listingMove(l *entities.Listing, to entities.ListingState, typ entities.NotificationType, message string) ListingTransition {
	t := ListingTransition{Machine: MachineListing, From: l.State, To: to}
	if l.DealerID != nil {
		t.Effects = []entities.NotificationIntent{
			entities.NotifyUser(*l.DealerID, typ, title("listing", string(to.Status())), message),
		}
	}
	return t
}

func rewriteTitle(effects []entities.NotificationIntent, s string) []entities.NotificationIntent {
	for i := range effects {
		effects[i].Title = s
	}
	return effects
}

func invalidListing(l *entities.Listing, command string) error {
	return domainerrors.InvalidTransition(MachineListing, string(l.Status()), command)
}
