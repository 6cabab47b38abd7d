package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleBuyer  UserRole = "BUYER"
	UserRoleDealer UserRole = "DEALER"
	UserRoleAdmin  UserRole = "ADMIN"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleBuyer, UserRoleDealer, UserRoleAdmin:
		return true
	}
	return false
}

// KYCStatus represents identity verification status
type KYCStatus string

const (
	KYCNone     KYCStatus = "none"
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

// KYCDocuments holds the three mandatory artifacts of a KYC packet.
type KYCDocuments struct {
	IDFrontURL  string    `json:"idFrontUrl"`
	IDBackURL   string    `json:"idBackUrl"`
	SelfieURL   string    `json:"selfieUrl"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// SecuritySettings are self-managed account flags.
type SecuritySettings struct {
	TwoFactorEnabled bool `json:"twoFactorEnabled"`
	LoginAlerts      bool `json:"loginAlerts"`
	HideEmail        bool `json:"hideEmail"`
}

// User represents a user entity
type User struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Email              string           `json:"email"`
	PasswordHash       string           `json:"-"`
	Role               UserRole         `json:"role"`
	IsVerified         bool             `json:"isVerified"`
	VerifiedByAdmin    bool             `json:"verifiedByAdmin"`
	KYCStatus          KYCStatus        `json:"kycStatus"`
	KYCDocuments       *KYCDocuments    `json:"kycDocuments,omitempty"`
	KYCRejectionReason null.String      `json:"kycRejectionReason,omitempty"`
	Favorites          []uuid.UUID      `json:"favorites"`
	SecuritySettings   SecuritySettings `json:"securitySettings"`
	IsSuspended        bool             `json:"isSuspended"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// VerificationConsistent holds when isVerified is backed by an approved KYC
// packet or by an explicit admin override.
func (u *User) VerificationConsistent() bool {
	return !u.IsVerified || u.KYCStatus == KYCApproved || u.VerifiedByAdmin
}

// HasFavorite reports whether the listing is in the user's favorites.
func (u *User) HasFavorite(listingID uuid.UUID) bool {
	for _, id := range u.Favorites {
		if id == listingID {
			return true
		}
	}
	return false
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Name     string   `json:"name" binding:"required,min=2,max=100" validate:"required,min=2,max=100"`
	Email    string   `json:"email" binding:"required,email" validate:"required,email"`
	Password string   `json:"password" binding:"required,min=8" validate:"required,min=8"`
	Role     UserRole `json:"role"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// UpdateProfileInput represents self-service profile edits.
type UpdateProfileInput struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// KYCSubmissionInput carries the artifact references of a KYC packet.
type KYCSubmissionInput struct {
	IDFrontURL string `json:"idFrontUrl" validate:"required,url"`
	IDBackURL  string `json:"idBackUrl" validate:"required,url"`
	SelfieURL  string `json:"selfieUrl" validate:"required,url"`
}
