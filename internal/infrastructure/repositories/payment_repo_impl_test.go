package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
)

func TestPaymentRepository_CreateDecideList(t *testing.T) {
	db := newTestDB(t)
	createPaymentTable(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	p := &entities.Payment{
		ID:              uuid.New(),
		UserID:          userID,
		ItemType:        entities.PaymentItemPurchase,
		ItemID:          uuid.New(),
		ItemDescription: "2023 Porsche 911",
		Amount:          decimal.RequireFromString("215000.99"),
		Method:          "wire",
		ReferenceID:     "TX-1",
		Status:          entities.PaymentStatusPending,
	}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, got.Amount.Equal(p.Amount))
	require.False(t, got.DecidedAt.Valid)

	decided := time.Now().UTC()
	require.NoError(t, repo.UpdateStatus(ctx, p.ID, entities.PaymentStatusVerified, decided))

	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusVerified, got.Status)
	require.True(t, got.DecidedAt.Valid)

	verified, err := repo.List(ctx, entities.PaymentFilter{Status: entities.PaymentStatusVerified})
	require.NoError(t, err)
	require.Len(t, verified, 1)

	other := uuid.New()
	mine, err := repo.List(ctx, entities.PaymentFilter{UserID: &other})
	require.NoError(t, err)
	require.Empty(t, mine)

	require.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), entities.PaymentStatusRejected, decided), domainerrors.ErrNotFound)
}
