package lifecycle

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"motorhub.backend/internal/domain/entities"
)

var packet = entities.KYCSubmissionInput{
	IDFrontURL: "https://cdn.example.com/front.jpg",
	IDBackURL:  "https://cdn.example.com/back.jpg",
	SelfieURL:  "https://cdn.example.com/selfie.jpg",
}

func newKYCUser() *entities.User {
	return &entities.User{ID: uuid.New(), Name: "Dana", Role: entities.UserRoleDealer, KYCStatus: entities.KYCNone}
}

func TestSubmitKYC_RequiresAllThreeArtifacts(t *testing.T) {
	u := newKYCUser()

	_, err := SubmitKYC(u, entities.KYCSubmissionInput{IDFrontURL: packet.IDFrontURL}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id back")
	assert.Contains(t, err.Error(), "selfie")

	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	out, err := SubmitKYC(u, packet, now)
	require.NoError(t, err)
	assert.Equal(t, entities.KYCPending, out.To)
	assert.False(t, out.IsVerified)
	require.NotNil(t, out.Documents)
	assert.Equal(t, now, out.Documents.SubmittedAt)
	require.Len(t, out.Effects, 1)
	assert.Equal(t, entities.AudienceAdmins, out.Effects[0].Audience)
}

func TestKYC_ApproveThenRejectResubmission(t *testing.T) {
	u := newKYCUser()

	out, err := SubmitKYC(u, packet, time.Now())
	require.NoError(t, err)
	out.Apply(u)

	out, err = ApproveKYC(u)
	require.NoError(t, err)
	out.Apply(u)
	assert.True(t, u.IsVerified)
	assert.Equal(t, entities.KYCApproved, u.KYCStatus)
	assert.Equal(t, "Verification Approved", out.Effects[0].Title)

	out, err = SubmitKYC(u, packet, time.Now())
	require.NoError(t, err)
	out.Apply(u)
	assert.False(t, u.IsVerified)

	out, err = RejectKYC(u, "selfie does not match")
	require.NoError(t, err)
	out.Apply(u)
	assert.False(t, u.IsVerified)
	assert.Equal(t, entities.KYCRejected, u.KYCStatus)
	assert.Equal(t, "selfie does not match", u.KYCRejectionReason.String)
	assert.Contains(t, out.Effects[0].Message, "selfie does not match")
	assert.True(t, u.VerificationConsistent())
}

func TestKYC_DecisionsRequirePending(t *testing.T) {
	u := newKYCUser()

	_, err := ApproveKYC(u)
	assert.Error(t, err)
	_, err = RejectKYC(u, "no packet")
	assert.Error(t, err)

	u.KYCStatus = entities.KYCPending
	_, err = RejectKYC(u, "")
	assert.Error(t, err)
}

func TestKYC_RejectedMayResubmit(t *testing.T) {
	u := newKYCUser()
	u.KYCStatus = entities.KYCRejected

	for i := 0; i < 3; i++ {
		out, err := SubmitKYC(u, packet, time.Now())
		require.NoError(t, err)
		out.Apply(u)
		assert.False(t, u.KYCRejectionReason.Valid)

		out, err = RejectKYC(u, "unreadable")
		require.NoError(t, err)
		out.Apply(u)
	}
	assert.Equal(t, entities.KYCRejected, u.KYCStatus)
}

func TestOverrideVerification(t *testing.T) {
	u := newKYCUser()

	out := OverrideVerification(u, true)
	out.Apply(u)
	assert.True(t, u.IsVerified)
	assert.True(t, u.VerifiedByAdmin)
	assert.Equal(t, entities.KYCNone, u.KYCStatus)
	assert.False(t, out.Changed())
	assert.True(t, u.VerificationConsistent())

	sub, err := SubmitKYC(u, packet, time.Now())
	require.NoError(t, err)
	sub.Apply(u)
	assert.True(t, u.IsVerified)

	rej, err := RejectKYC(u, "expired id")
	require.NoError(t, err)
	rej.Apply(u)
	assert.False(t, u.IsVerified)
	assert.False(t, u.VerifiedByAdmin)
}
