package lifecycle

import (
	"fmt"

	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
)

// FulfillmentTransition moves a booking or rental between statuses
type FulfillmentTransition = Transition[entities.FulfillmentStatus]

// MachineFor returns the machine name of a fulfillment kind.
func MachineFor(kind entities.FulfillmentKind) string {
	if kind == entities.FulfillmentBooking {
		return MachineBooking
	}
	return MachineRental
}

// FulfillmentRequested tells every admin about a new booking or rental.
func FulfillmentRequested(r entities.FulfillmentRecord, requesterName string) []entities.NotificationIntent {
	noun := r.FulfillmentKind().Noun()
	return []entities.NotificationIntent{
		entities.NotifyAdmins(entities.NotificationInfo, title("new", noun, "request"),
			fmt.Sprintf("%s requested a %s for %s.", requesterName, noun, r.AssetLabel())),
	}
}

// TransitionFulfillment applies an admin command. hideFromDealer is never
// read or written here.
func TransitionFulfillment(r entities.FulfillmentRecord, cmd entities.FulfillmentCommand) (FulfillmentTransition, error) {
	kind := r.FulfillmentKind()
	from := r.CurrentStatus()
	machine := MachineFor(kind)

	var to entities.FulfillmentStatus
	typ := entities.NotificationInfo
	switch cmd {
	case entities.FulfillmentAccept:
		if from != entities.FulfillmentPending {
			return FulfillmentTransition{}, domainerrors.InvalidTransition(machine, string(from), string(cmd))
		}
		to = kind.AcceptedStatus()
		typ = entities.NotificationSuccess
	case entities.FulfillmentCancel:
		if from != entities.FulfillmentPending {
			return FulfillmentTransition{}, domainerrors.InvalidTransition(machine, string(from), string(cmd))
		}
		to = entities.FulfillmentCancelled
		typ = entities.NotificationWarning
	case entities.FulfillmentRevert:
		if from == entities.FulfillmentPending {
			return FulfillmentTransition{}, domainerrors.InvalidTransition(machine, string(from), string(cmd))
		}
		to = entities.FulfillmentPending
	default:
		return FulfillmentTransition{}, domainerrors.Invalid("command", fmt.Sprintf("unknown command %q", cmd))
	}

	noun := kind.Noun()
	return FulfillmentTransition{
		Machine: machine,
		From:    from,
		To:      to,
		Effects: []entities.NotificationIntent{
			entities.NotifyUser(r.RequesterID(), typ, title(noun, string(to)),
				fmt.Sprintf("Your %s request for %s is now %s.", noun, r.AssetLabel(), to)),
		},
	}, nil
}
