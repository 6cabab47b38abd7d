package lifecycle

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
)

func TestDecidePayment(t *testing.T) {
	p := &entities.Payment{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		ItemType:        entities.PaymentItemPurchase,
		ItemDescription: "2023 Porsche 911",
		Amount:          decimal.NewFromInt(215000),
		Status:          entities.PaymentStatusPending,
	}

	tr, err := DecidePayment(p, entities.PaymentReject)
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentStatusRejected, tr.To)
	require.Len(t, tr.Effects, 1)
	assert.Equal(t, p.UserID, tr.Effects[0].RecipientID)
	assert.Equal(t, "Payment Rejected", tr.Effects[0].Title)
	assert.Contains(t, tr.Effects[0].Message, "215000.00")

	p.Status = tr.To
	_, err = DecidePayment(p, entities.PaymentVerify)
	var vErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "status", vErr.Field)

	_, err = DecidePayment(&entities.Payment{Status: entities.PaymentStatusPending}, entities.PaymentDecision("refund"))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestVerifiedVolume_RecomputesFromSource(t *testing.T) {
	payments := []*entities.Payment{
		{Amount: decimal.RequireFromString("215000.50"), Status: entities.PaymentStatusVerified},
		{Amount: decimal.RequireFromString("1200.25"), Status: entities.PaymentStatusVerified},
		{Amount: decimal.NewFromInt(999), Status: entities.PaymentStatusRejected},
		{Amount: decimal.NewFromInt(5), Status: entities.PaymentStatusPending},
	}

	first := VerifiedVolume(payments)
	second := VerifiedVolume(payments)
	assert.True(t, first.Total.Equal(decimal.RequireFromString("216200.75")))
	assert.Equal(t, 2, first.Count)
	assert.True(t, first.Total.Equal(second.Total))

	payments[1].Status = entities.PaymentStatusRejected
	assert.True(t, VerifiedVolume(payments).Total.Equal(decimal.RequireFromString("215000.50")))

	assert.True(t, VerifiedVolume(nil).Total.IsZero())
}
