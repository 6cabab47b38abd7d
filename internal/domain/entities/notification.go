package entities

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType represents the tone of a notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
)

// Notification is a per-user feed entry
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	RecipientID uuid.UUID        `json:"recipientUserId"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"time"`
}

// Audience selects who receives a notification intent
type Audience string

const (
	AudienceUser    Audience = "user"
	AudienceAdmins  Audience = "admins"
	AudienceAll     Audience = "all"
	AudienceDealers Audience = "dealers"
)

// NotificationIntent is an effect emitted by a state transition. The
// dispatcher turns it into notification records after the transition has
// been persisted.
type NotificationIntent struct {
	Audience    Audience
	RecipientID uuid.UUID
	Title       string
	Message     string
	Type        NotificationType
}

// NotifyUser addresses a single user
func NotifyUser(recipientID uuid.UUID, typ NotificationType, title, message string) NotificationIntent {
	return NotificationIntent{Audience: AudienceUser, RecipientID: recipientID, Title: title, Message: message, Type: typ}
}

// NotifyAdmins addresses every admin
func NotifyAdmins(typ NotificationType, title, message string) NotificationIntent {
	return NotificationIntent{Audience: AudienceAdmins, Title: title, Message: message, Type: typ}
}

// BroadcastTarget is the recipient set of an admin broadcast
type BroadcastTarget string

const (
	BroadcastAll     BroadcastTarget = "all"
	BroadcastDealers BroadcastTarget = "dealers"
)

// Audience maps the broadcast target onto a fan-out audience.
func (t BroadcastTarget) Audience() Audience {
	if t == BroadcastDealers {
		return AudienceDealers
	}
	return AudienceAll
}

// Broadcast is a durable message-history entry of an admin broadcast
type Broadcast struct {
	ID        uuid.UUID        `json:"id"`
	AuthorID  uuid.UUID        `json:"authorId"`
	Target    BroadcastTarget  `json:"target"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// BroadcastInput represents a new admin broadcast
type BroadcastInput struct {
	Target  BroadcastTarget  `json:"target" validate:"required,oneof=all dealers"`
	Title   string           `json:"title" validate:"required,max=200"`
	Message string           `json:"message" validate:"required,max=5000"`
	Type    NotificationType `json:"type" validate:"omitempty,oneof=info success warning"`
}

// BroadcastEdit represents an edit of a broadcast history entry
type BroadcastEdit struct {
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}
