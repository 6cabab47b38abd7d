package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
)

func TestBookingRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	createFulfillmentTables(t, db)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	dealerID := uuid.New()
	b := &entities.Booking{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		DealerID:     &dealerID,
		ListingID:    uuid.New(),
		ScheduledAt:  time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC),
		Location:     "Showroom",
		Status:       entities.FulfillmentPending,
		ListingLabel: "2023 Porsche 911",
		UserName:     "Ava",
		UserEmail:    "ava@motorhub.io",
	}
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.UpdateStatus(ctx, b.ID, entities.FulfillmentConfirmed))
	require.NoError(t, repo.SetHideFromDealer(ctx, b.ID, true))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, entities.FulfillmentConfirmed, got.Status)
	require.True(t, got.HideFromDealer)
	require.Equal(t, "2023 Porsche 911", got.ListingLabel)

	own, err := repo.List(ctx, entities.FulfillmentFilter{DealerID: &dealerID})
	require.NoError(t, err)
	require.Len(t, own, 1)

	mine, err := repo.List(ctx, entities.FulfillmentFilter{UserID: &b.UserID, Status: entities.FulfillmentPending})
	require.NoError(t, err)
	require.Empty(t, mine)

	require.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), entities.FulfillmentCancelled), domainerrors.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRentalRepository_StatusAndOverlayAreIndependent(t *testing.T) {
	db := newTestDB(t)
	createFulfillmentTables(t, db)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	r := &entities.Rental{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		ListingID:    uuid.New(),
		StartDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DurationDays: 3,
		Location:     "Airport",
		Status:       entities.FulfillmentPending,
	}
	require.NoError(t, repo.Create(ctx, r))

	require.NoError(t, repo.UpdateStatus(ctx, r.ID, entities.FulfillmentAccepted))
	require.NoError(t, repo.SetHideFromDealer(ctx, r.ID, true))
	require.NoError(t, repo.SetHideFromDealer(ctx, r.ID, false))

	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, entities.FulfillmentAccepted, got.Status)
	require.False(t, got.HideFromDealer)
	require.Nil(t, got.DealerID)
	require.Equal(t, 3, got.DurationDays)

	all, err := repo.List(ctx, entities.FulfillmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.ErrorIs(t, repo.SetHideFromDealer(ctx, uuid.New(), true), domainerrors.ErrNotFound)
}
