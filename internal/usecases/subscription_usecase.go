package usecases

import (
	"context"

	"go.uber.org/zap"
	"motorhub.backend/internal/domain/entities"
	domainerrors "motorhub.backend/internal/domain/errors"
	"motorhub.backend/internal/domain/repositories"
	"motorhub.backend/pkg/logger"
	"motorhub.backend/pkg/metrics"
	"motorhub.backend/pkg/utils"
)

// Subscribe emits the full snapshot returned by load immediately and again
// after every change to the collection. Emissions are complete and
// authoritative; bursts of changes are coalesced into one reload. The
// channel closes when ctx is done or the feed ends.
func Subscribe[T any](
	ctx context.Context,
	feed repositories.ChangeFeed,
	collection entities.Collection,
	load func(context.Context) (T, error),
) (<-chan T, error) {
	ctx, cancel := context.WithCancel(ctx)
	changes, err := feed.Changes(ctx, collection)
	if err != nil {
		cancel()
		return nil, err
	}
	first, err := load(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan T, 1)
	metrics.SubscriptionOpened()
	go func() {
		defer metrics.SubscriptionClosed()
		defer close(out)
		defer cancel()

		snapshot := first
		for {
			select {
			case out <- snapshot:
				metrics.ObserveFeedEmission(string(collection))
			case <-ctx.Done():
				return
			}

			if !waitForChange(ctx, changes) {
				return
			}
			next, err := load(ctx)
			for err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn(ctx, "Snapshot reload failed, waiting for next change",
					zap.String("collection", string(collection)),
					zap.Error(err),
				)
				if !waitForChange(ctx, changes) {
					return
				}
				next, err = load(ctx)
			}
			snapshot = next
		}
	}()
	return out, nil
}

// waitForChange blocks for one change event and drains any queued behind it.
func waitForChange(ctx context.Context, changes <-chan entities.ChangeEvent) bool {
	select {
	case <-ctx.Done():
		return false
	case _, ok := <-changes:
		if !ok {
			return false
		}
	}
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return false
			}
		default:
			return true
		}
	}
}

// SubscriptionUsecase serves role-scoped live snapshots. Each stream reuses
// the usecase query for the collection, so the same authorization and
// visibility rules apply to live views and one-off reads.
type SubscriptionUsecase struct {
	feed          repositories.ChangeFeed
	listings      *ListingUsecase
	fulfillments  *FulfillmentUsecase
	payments      *PaymentUsecase
	notifications *NotificationUsecase
	users         *UserUsecase
	inquiries     *InquiryUsecase
}

// NewSubscriptionUsecase creates a new subscription usecase
func NewSubscriptionUsecase(
	feed repositories.ChangeFeed,
	listings *ListingUsecase,
	fulfillments *FulfillmentUsecase,
	payments *PaymentUsecase,
	notifications *NotificationUsecase,
	users *UserUsecase,
	inquiries *InquiryUsecase,
) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		feed:          feed,
		listings:      listings,
		fulfillments:  fulfillments,
		payments:      payments,
		notifications: notifications,
		users:         users,
		inquiries:     inquiries,
	}
}

// Stream subscribes the actor to a collection
func (u *SubscriptionUsecase) Stream(ctx context.Context, actor entities.Actor, collection entities.Collection) (<-chan interface{}, error) {
	load, err := u.loader(actor, collection)
	if err != nil {
		return nil, err
	}
	return Subscribe(ctx, u.feed, collection, load)
}

func (u *SubscriptionUsecase) loader(actor entities.Actor, collection entities.Collection) (func(context.Context) (interface{}, error), error) {
	all := utils.PaginationParams{Page: 1}
	switch collection {
	case entities.CollectionListings:
		return func(ctx context.Context) (interface{}, error) {
			var (
				page *ListingPage
				err  error
			)
			switch {
			case actor.IsAdmin():
				page, err = u.listings.ListAll(ctx, actor, nil, all)
			case actor.IsDealer():
				page, err = u.listings.ListOwn(ctx, actor, all)
			default:
				page, err = u.listings.ListPublic(ctx, "", all)
			}
			if err != nil {
				return nil, err
			}
			return page.Items, nil
		}, nil
	case entities.CollectionBookings:
		return func(ctx context.Context) (interface{}, error) {
			return u.fulfillments.ListBookings(ctx, actor, "")
		}, nil
	case entities.CollectionRentals:
		return func(ctx context.Context) (interface{}, error) {
			return u.fulfillments.ListRentals(ctx, actor, "")
		}, nil
	case entities.CollectionPayments:
		return func(ctx context.Context) (interface{}, error) {
			return u.payments.List(ctx, actor, "")
		}, nil
	case entities.CollectionNotifications:
		return func(ctx context.Context) (interface{}, error) {
			return u.notifications.List(ctx, actor)
		}, nil
	case entities.CollectionUsers:
		return func(ctx context.Context) (interface{}, error) {
			return u.users.ListUsers(ctx, actor, "")
		}, nil
	case entities.CollectionInquiries:
		return func(ctx context.Context) (interface{}, error) {
			return u.inquiries.List(ctx, actor)
		}, nil
	case entities.CollectionBroadcasts:
		return func(ctx context.Context) (interface{}, error) {
			return u.notifications.ListBroadcasts(ctx, actor)
		}, nil
	}
	return nil, domainerrors.Invalid("collection", "unknown collection "+string(collection))
}
