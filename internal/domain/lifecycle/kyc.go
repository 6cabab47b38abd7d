package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
)

// KYCOutcome is a KYC transition plus the verification fields it sets
type KYCOutcome struct {
	Transition[entities.KYCStatus]
	IsVerified      bool
	VerifiedByAdmin bool
	Documents       *entities.KYCDocuments
	RejectionReason null.String
}

// Apply copies the outcome onto the user record.
func (o KYCOutcome) Apply(u *entities.User) {
	u.KYCStatus = o.To
	u.IsVerified = o.IsVerified
	u.VerifiedByAdmin = o.VerifiedByAdmin
	u.KYCDocuments = o.Documents
	u.KYCRejectionReason = o.RejectionReason
}

// SubmitKYC enters pending from any state. All three artifacts are required.
// An existing admin override keeps the user verified while under review.
func SubmitKYC(u *entities.User, docs entities.KYCSubmissionInput, now time.Time) (KYCOutcome, error) {
	var missing []string
	if strings.TrimSpace(docs.IDFrontURL) == "" {
		missing = append(missing, "id front")
	}
	if strings.TrimSpace(docs.IDBackURL) == "" {
		missing = append(missing, "id back")
	}
	if strings.TrimSpace(docs.SelfieURL) == "" {
		missing = append(missing, "selfie")
	}
	if len(missing) > 0 {
		return KYCOutcome{}, domainerrors.Invalid("kycDocuments", "missing "+strings.Join(missing, ", "))
	}

	return KYCOutcome{
		Transition: Transition[entities.KYCStatus]{
			Machine: MachineKYC,
			From:    u.KYCStatus,
			To:      entities.KYCPending,
			Effects: []entities.NotificationIntent{
				entities.NotifyAdmins(entities.NotificationInfo, "New KYC Submission",
					fmt.Sprintf("%s submitted identity documents for review.", u.Name)),
			},
		},
		IsVerified:      u.VerifiedByAdmin,
		VerifiedByAdmin: u.VerifiedByAdmin,
		Documents: &entities.KYCDocuments{
			IDFrontURL:  docs.IDFrontURL,
			IDBackURL:   docs.IDBackURL,
			SelfieURL:   docs.SelfieURL,
			SubmittedAt: now,
		},
	}, nil
}

// ApproveKYC clears a pending packet and verifies the user.
func ApproveKYC(u *entities.User) (KYCOutcome, error) {
	if u.KYCStatus != entities.KYCPending {
		return KYCOutcome{}, domainerrors.InvalidTransition(MachineKYC, string(u.KYCStatus), "approve")
	}
	return KYCOutcome{
		Transition: Transition[entities.KYCStatus]{
			Machine: MachineKYC,
			From:    u.KYCStatus,
			To:      entities.KYCApproved,
			Effects: []entities.NotificationIntent{
				entities.NotifyUser(u.ID, entities.NotificationSuccess, title("verification", "approved"),
					"Your identity has been verified. All account features are now unlocked."),
			},
		},
		IsVerified:      true,
		VerifiedByAdmin: u.VerifiedByAdmin,
		Documents:       u.KYCDocuments,
	}, nil
}

// RejectKYC refuses a pending packet. Rejection always unverifies the user,
// including any admin override.
func RejectKYC(u *entities.User, reason string) (KYCOutcome, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return KYCOutcome{}, domainerrors.Invalid("reason", "a rejection reason is required")
	}
	if u.KYCStatus != entities.KYCPending {
		return KYCOutcome{}, domainerrors.InvalidTransition(MachineKYC, string(u.KYCStatus), "reject")
	}
	return KYCOutcome{
		Transition: Transition[entities.KYCStatus]{
			Machine: MachineKYC,
			From:    u.KYCStatus,
			To:      entities.KYCRejected,
			Effects: []entities.NotificationIntent{
				entities.NotifyUser(u.ID, entities.NotificationWarning, title("verification", "rejected"),
					fmt.Sprintf("Your identity documents were rejected: %s. You may submit a new packet.", reason)),
			},
		},
		IsVerified:      false,
		VerifiedByAdmin: false,
		Documents:       u.KYCDocuments,
		RejectionReason: null.StringFrom(reason),
	}, nil
}

// OverrideVerification is the explicit admin override. It leaves the KYC
// status untouched and records that the flag was set by an admin.
func OverrideVerification(u *entities.User, verified bool) KYCOutcome {
	typ, word := entities.NotificationInfo, "revoked"
	if verified {
		typ, word = entities.NotificationSuccess, "granted"
	}
	return KYCOutcome{
		Transition: Transition[entities.KYCStatus]{
			Machine: MachineKYC,
			From:    u.KYCStatus,
			To:      u.KYCStatus,
			Effects: []entities.NotificationIntent{
				entities.NotifyUser(u.ID, typ, title("verification", word),
					fmt.Sprintf("An administrator has %s your account verification.", word)),
			},
		},
		IsVerified:      verified,
		VerifiedByAdmin: verified,
		Documents:       u.KYCDocuments,
		RejectionReason: u.KYCRejectionReason,
	}
}
