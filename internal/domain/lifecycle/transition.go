// Package lifecycle holds the listing, fulfillment, payment and KYC state
// machines. Each command returns the new state together with the
// notifications to send once it is persisted; nothing here touches the store.
package lifecycle

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"motorhub.backend/internal/domain/entities"
)

// Machine names, also used as metric labels.
const (
	MachineListing = "listing"
	MachineBooking = "booking"
	MachineRental  = "rental"
	MachinePayment = "payment"
	MachineKYC     = "kyc"
)

// Transition is the result of an accepted command
type Transition[S comparable] struct {
	Machine string
	From    S
	To      S
	Effects []entities.NotificationIntent
}

// Changed reports whether the command moved the record to a new state.
func (t Transition[S]) Changed() bool {
	return t.From != t.To
}

func title(words ...string) string {
	return cases.Title(language.English).String(strings.Join(words, " "))
}
