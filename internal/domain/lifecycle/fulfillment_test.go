package lifecycle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"motorhub.backend/internal/domain/entities"
)

func TestTransitionFulfillment_Rental(t *testing.T) {
	dealerID := uuid.New()
	r := &entities.Rental{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		DealerID:     &dealerID,
		Status:       entities.FulfillmentPending,
		ListingLabel: "2022 Ferrari Roma",
	}

	tr, err := TransitionFulfillment(r, entities.FulfillmentAccept)
	require.NoError(t, err)
	assert.Equal(t, MachineRental, tr.Machine)
	assert.Equal(t, entities.FulfillmentAccepted, tr.To)
	require.Len(t, tr.Effects, 1)
	assert.Equal(t, r.UserID, tr.Effects[0].RecipientID)
	assert.Equal(t, "Rental Accepted", tr.Effects[0].Title)
	assert.Contains(t, tr.Effects[0].Message, "2022 Ferrari Roma")
	assert.Contains(t, tr.Effects[0].Message, "Accepted")

	r.Status = tr.To
	_, err = TransitionFulfillment(r, entities.FulfillmentCancel)
	assert.Error(t, err)

	tr, err = TransitionFulfillment(r, entities.FulfillmentRevert)
	require.NoError(t, err)
	assert.Equal(t, entities.FulfillmentPending, tr.To)
}

func TestTransitionFulfillment_Booking(t *testing.T) {
	b := &entities.Booking{ID: uuid.New(), UserID: uuid.New(), Status: entities.FulfillmentPending, ListingLabel: "2021 BMW M4"}

	tr, err := TransitionFulfillment(b, entities.FulfillmentAccept)
	require.NoError(t, err)
	assert.Equal(t, MachineBooking, tr.Machine)
	assert.Equal(t, entities.FulfillmentConfirmed, tr.To)
	assert.Equal(t, "Test Drive Confirmed", tr.Effects[0].Title)

	tr, err = TransitionFulfillment(b, entities.FulfillmentCancel)
	require.NoError(t, err)
	assert.Equal(t, entities.FulfillmentCancelled, tr.To)
	assert.Equal(t, entities.NotificationWarning, tr.Effects[0].Type)

	_, err = TransitionFulfillment(b, entities.FulfillmentRevert)
	assert.Error(t, err)

	_, err = TransitionFulfillment(b, entities.FulfillmentCommand("delete"))
	assert.Error(t, err)
}

func TestTransitionFulfillment_IgnoresHideFlag(t *testing.T) {
	b := &entities.Booking{ID: uuid.New(), UserID: uuid.New(), Status: entities.FulfillmentPending, HideFromDealer: true}

	tr, err := TransitionFulfillment(b, entities.FulfillmentAccept)
	require.NoError(t, err)
	assert.Equal(t, entities.FulfillmentConfirmed, tr.To)
	assert.True(t, b.HideFromDealer)
}

func TestFulfillmentRequested(t *testing.T) {
	r := &entities.Rental{ID: uuid.New(), UserID: uuid.New(), ListingLabel: "2020 Audi R8"}

	effects := FulfillmentRequested(r, "Ava")
	require.Len(t, effects, 1)
	assert.Equal(t, entities.AudienceAdmins, effects[0].Audience)
	assert.Equal(t, "New Rental Request", effects[0].Title)
	assert.Contains(t, effects[0].Message, "Ava")
}
