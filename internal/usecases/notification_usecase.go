package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"motorhub.backend/internal/domain/authz"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/domain/repositories"
	"motorhub.backend/pkg/utils"
)

// NotificationUsecase serves the per-user feed and the admin broadcast history
type NotificationUsecase struct {
	notificationRepo repositories.NotificationRepository
	broadcastRepo    repositories.BroadcastRepository
	dispatcher       *NotificationDispatcher
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(
	notificationRepo repositories.NotificationRepository,
	broadcastRepo repositories.BroadcastRepository,
	dispatcher *NotificationDispatcher,
) *NotificationUsecase {
	return &NotificationUsecase{
		notificationRepo: notificationRepo,
		broadcastRepo:    broadcastRepo,
		dispatcher:       dispatcher,
	}
}

// List returns the caller's feed, newest first
func (u *NotificationUsecase) List(ctx context.Context, actor entities.Actor) ([]*entities.Notification, error) {
	if err := authz.Require(actor, authz.ViewNotifications, authz.SubjectTarget(actor.ID)); err != nil {
		return nil, err
	}
	return u.notificationRepo.ListByRecipient(ctx, actor.ID)
}

// MarkRead flips one of the caller's notifications to read
func (u *NotificationUsecase) MarkRead(ctx context.Context, actor entities.Actor, id uuid.UUID) error {
	return u.notificationRepo.MarkRead(ctx, id, actor.ID)
}

// MarkAllRead flips every caller notification to read
func (u *NotificationUsecase) MarkAllRead(ctx context.Context, actor entities.Actor) error {
	return u.notificationRepo.MarkAllRead(ctx, actor.ID)
}

// Delete bulk-deletes the caller's notifications. Ids belonging to other
// users are ignored.
func (u *NotificationUsecase) Delete(ctx context.Context, actor entities.Actor, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, domainerrors.Invalid("ids", "at least one id is required")
	}
	return u.notificationRepo.DeleteForRecipient(ctx, actor.ID, ids)
}

// Broadcast records a history entry and delivers it to the target set.
// Delivery is best-effort; the history entry is the durable record.
func (u *NotificationUsecase) Broadcast(ctx context.Context, actor entities.Actor, input *entities.BroadcastInput) (*entities.Broadcast, int, error) {
	if err := authz.Require(actor, authz.Broadcast, authz.NoTarget); err != nil {
		return nil, 0, err
	}
	if err := validateInput(input); err != nil {
		return nil, 0, err
	}
	typ := input.Type
	if typ == "" {
		typ = entities.NotificationInfo
	}

	now := time.Now().UTC()
	b := &entities.Broadcast{
		ID:        utils.NewID(),
		AuthorID:  actor.ID,
		Target:    input.Target,
		Title:     strings.TrimSpace(input.Title),
		Message:   strings.TrimSpace(input.Message),
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.broadcastRepo.Create(ctx, b); err != nil {
		return nil, 0, err
	}

	delivered := u.dispatcher.Dispatch(ctx, entities.NotificationIntent{
		Audience: input.Target.Audience(),
		Title:    b.Title,
		Message:  b.Message,
		Type:     b.Type,
	})
	return b, delivered, nil
}

// ListBroadcasts returns the broadcast history
func (u *NotificationUsecase) ListBroadcasts(ctx context.Context, actor entities.Actor) ([]*entities.Broadcast, error) {
	if err := authz.Require(actor, authz.Broadcast, authz.NoTarget); err != nil {
		return nil, err
	}
	return u.broadcastRepo.List(ctx)
}

// EditBroadcast edits the history entry only; delivered notifications keep
// their original text.
func (u *NotificationUsecase) EditBroadcast(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.BroadcastEdit) (*entities.Broadcast, error) {
	if err := authz.Require(actor, authz.Broadcast, authz.NoTarget); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := u.broadcastRepo.Update(ctx, id, strings.TrimSpace(input.Title), strings.TrimSpace(input.Message)); err != nil {
		return nil, err
	}
	return u.broadcastRepo.GetByID(ctx, id)
}

// DeleteBroadcast removes a history entry
func (u *NotificationUsecase) DeleteBroadcast(ctx context.Context, actor entities.Actor, id uuid.UUID) error {
	if err := authz.Require(actor, authz.Broadcast, authz.NoTarget); err != nil {
		return err
	}
	return u.broadcastRepo.Delete(ctx, id)
}
