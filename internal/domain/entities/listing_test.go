package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestRestoreListingState(t *testing.T) {
	s, err := RestoreListingState(ListingStatusRejected, null.StringFrom("no photos"), ArchivedByNone)
	require.NoError(t, err)
	assert.Equal(t, ListingRejected{Reason: "no photos"}, s)

	_, err = RestoreListingState(ListingStatusRejected, null.String{}, ArchivedByNone)
	assert.Error(t, err)

	s, err = RestoreListingState(ListingStatusArchived, null.String{}, ArchivedByAdmin)
	require.NoError(t, err)
	assert.Equal(t, ListingArchived{By: ArchivedByAdmin}, s)

	_, err = RestoreListingState(ListingStatusArchived, null.String{}, ArchivedByNone)
	assert.Error(t, err)

	_, err = RestoreListingState("sold", null.String{}, ArchivedByNone)
	assert.Error(t, err)
}

func TestListing_MarshalJSONFlattensState(t *testing.T) {
	dealerID := uuid.New()
	l := Listing{
		ID:       uuid.New(),
		DealerID: &dealerID,
		Make:     "Porsche",
		Model:    "911",
		Year:     2023,
		Price:    decimal.NewFromInt(215000),
		State:    ListingRejected{Reason: "duplicate"},
	}

	raw, err := json.Marshal(l)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "rejected", out["status"])
	assert.Equal(t, "duplicate", out["moderationReason"])
	assert.Equal(t, "none", out["archivedBy"])
	assert.Equal(t, "215000", out["price"])
}

func TestListing_Visibility(t *testing.T) {
	l := &Listing{State: ListingApproved{}}
	assert.True(t, l.PubliclyVisible())

	l.IsSuspended = true
	assert.False(t, l.PubliclyVisible())
	assert.Equal(t, ListingStatusApproved, l.Status())

	l.IsSuspended = false
	l.State = ListingArchived{By: ArchivedByDealer}
	assert.False(t, l.PubliclyVisible())
	assert.Equal(t, "2023 Porsche 911", (&Listing{Year: 2023, Make: "Porsche", Model: "911"}).Label())
}

func TestUser_VerificationConsistent(t *testing.T) {
	assert.True(t, (&User{}).VerificationConsistent())
	assert.False(t, (&User{IsVerified: true, KYCStatus: KYCPending}).VerificationConsistent())
	assert.True(t, (&User{IsVerified: true, KYCStatus: KYCApproved}).VerificationConsistent())
	assert.True(t, (&User{IsVerified: true, KYCStatus: KYCRejected, VerifiedByAdmin: true}).VerificationConsistent())
}

func TestFulfillmentKind(t *testing.T) {
	assert.Equal(t, FulfillmentConfirmed, FulfillmentBooking.AcceptedStatus())
	assert.Equal(t, FulfillmentAccepted, FulfillmentRental.AcceptedStatus())

	r := &Rental{StartDate: mustDate(t, "2024-06-01"), DurationDays: 3}
	assert.Equal(t, "2024-06-04", r.EndDate().Format("2006-01-02"))
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
