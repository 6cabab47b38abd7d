package usecases

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/domain/repositories"
	"motorhub.backend/pkg/logger"
	"motorhub.backend/pkg/metrics"
	"motorhub.backend/pkg/tracing"
	"motorhub.backend/pkg/utils"
)

const dispatchConcurrency = 8

// NotificationDispatcher executes the notification intents returned by the
// state machines. Delivery is best-effort: failures are logged and counted,
// never returned, because the triggering transition has already committed.
type NotificationDispatcher struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	now              func() time.Time
}

// NewNotificationDispatcher creates a new dispatcher
func NewNotificationDispatcher(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		now:              time.Now,
	}
}

// Dispatch delivers every intent and returns the number of notifications written.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, intents ...entities.NotificationIntent) int {
	if len(intents) == 0 {
		return 0
	}
	ctx, span := tracing.Tracer("motorhub/notifications").Start(ctx, "notifications.dispatch")
	defer span.End()

	delivered := 0
	for _, intent := range intents {
		delivered += d.deliver(ctx, intent)
	}
	span.SetAttributes(
		attribute.Int("notifications.intents", len(intents)),
		attribute.Int("notifications.delivered", delivered),
	)
	return delivered
}

func (d *NotificationDispatcher) deliver(ctx context.Context, intent entities.NotificationIntent) int {
	recipients, err := d.recipients(ctx, intent)
	if err != nil {
		metrics.ObserveNotification(string(intent.Audience), "failed")
		logger.Error(ctx, "Failed to resolve notification recipients",
			zap.String("audience", string(intent.Audience)),
			zap.String("title", intent.Title),
			zap.Error(err),
		)
		return 0
	}

	var (
		g         errgroup.Group
		delivered atomic.Int64
	)
	g.SetLimit(dispatchConcurrency)
	for _, recipient := range recipients {
		g.Go(func() error {
			n := &entities.Notification{
				ID:          utils.NewID(),
				RecipientID: recipient,
				Title:       intent.Title,
				Message:     intent.Message,
				Type:        intent.Type,
				CreatedAt:   d.now().UTC(),
			}
			if err := d.notificationRepo.Create(ctx, n); err != nil {
				metrics.ObserveNotification(string(intent.Audience), "failed")
				logger.Error(ctx, "Failed to deliver notification",
					zap.String("audience", string(intent.Audience)),
					zap.String("recipient", recipient.String()),
					zap.String("title", intent.Title),
					zap.Error(err),
				)
				return nil
			}
			metrics.ObserveNotification(string(intent.Audience), "delivered")
			delivered.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	if failed := len(recipients) - int(delivered.Load()); failed > 0 {
		oteltrace.SpanFromContext(ctx).SetStatus(codes.Error, "partial notification delivery")
	}
	return int(delivered.Load())
}

func (d *NotificationDispatcher) recipients(ctx context.Context, intent entities.NotificationIntent) ([]uuid.UUID, error) {
	var (
		users []*entities.User
		err   error
	)
	switch intent.Audience {
	case entities.AudienceUser:
		return []uuid.UUID{intent.RecipientID}, nil
	case entities.AudienceAdmins:
		users, err = d.userRepo.ListByRole(ctx, entities.UserRoleAdmin)
	case entities.AudienceDealers:
		users, err = d.userRepo.ListByRole(ctx, entities.UserRoleDealer)
	case entities.AudienceAll:
		users, err = d.userRepo.List(ctx, "")
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
