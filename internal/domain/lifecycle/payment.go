package lifecycle

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
)

// PaymentTransition settles a payment proof
type PaymentTransition = Transition[entities.PaymentStatus]

// PaymentSubmitted tells every admin that a proof is waiting for review.
func PaymentSubmitted(p *entities.Payment, payerName string) []entities.NotificationIntent {
	return []entities.NotificationIntent{
		entities.NotifyAdmins(entities.NotificationInfo, "New Payment Proof",
			fmt.Sprintf("%s submitted %s via %s for %s.", payerName, p.Amount.StringFixed(2), p.Method, p.ItemDescription)),
	}
}

// DecidePayment verifies or rejects a pending payment. Verified and Rejected
// are terminal; a second decision is refused.
func DecidePayment(p *entities.Payment, decision entities.PaymentDecision) (PaymentTransition, error) {
	var to entities.PaymentStatus
	typ := entities.NotificationSuccess
	switch decision {
	case entities.PaymentVerify:
		to = entities.PaymentStatusVerified
	case entities.PaymentReject:
		to = entities.PaymentStatusRejected
		typ = entities.NotificationWarning
	default:
		return PaymentTransition{}, domainerrors.Invalid("decision", fmt.Sprintf("unknown decision %q", decision))
	}
	if p.Status != entities.PaymentStatusPending {
		return PaymentTransition{}, domainerrors.InvalidTransition(MachinePayment, string(p.Status), string(decision))
	}

	return PaymentTransition{
		Machine: MachinePayment,
		From:    p.Status,
		To:      to,
		Effects: []entities.NotificationIntent{
			entities.NotifyUser(p.UserID, typ, title("payment", string(to)),
				fmt.Sprintf("Your payment of %s for %s has been %s.", p.Amount.StringFixed(2), p.ItemDescription, strings.ToLower(string(to)))),
		},
	}, nil
}

// VerifiedVolume sums the amount of every verified payment in the set.
func VerifiedVolume(payments []*entities.Payment) entities.PaymentVolume {
	vol := entities.PaymentVolume{Total: decimal.Zero}
	for _, p := range payments {
		if p.Status != entities.PaymentStatusVerified {
			continue
		}
		vol.Total = vol.Total.Add(p.Amount)
		vol.Count++
	}
	return vol
}
