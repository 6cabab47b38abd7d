package feed

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/domain/repositories"
	"motorhub.backend/pkg/logger"
)

var tableCollections = map[string]entities.Collection{
	"users":         entities.CollectionUsers,
	"listings":      entities.CollectionListings,
	"bookings":      entities.CollectionBookings,
	"rentals":       entities.CollectionRentals,
	"payments":      entities.CollectionPayments,
	"notifications": entities.CollectionNotifications,
	"inquiries":     entities.CollectionInquiries,
	"broadcasts":    entities.CollectionBroadcasts,
}

const afterCommit = "gorm:commit_or_rollback_transaction"

// RegisterCallbacks publishes a change event after every committed create,
// update or delete on a known table. Publish failures are logged only: the
// write has already succeeded.
func RegisterCallbacks(db *gorm.DB, feed repositories.ChangeFeed) error {
	cb := db.Callback()
	if err := cb.Create().After(afterCommit).Register("motorhub:feed_create", publisher(feed, entities.ChangeCreate)); err != nil {
		return err
	}
	if err := cb.Update().After(afterCommit).Register("motorhub:feed_update", publisher(feed, entities.ChangeUpdate)); err != nil {
		return err
	}
	return cb.Delete().After(afterCommit).Register("motorhub:feed_delete", publisher(feed, entities.ChangeDelete))
}

func publisher(feed repositories.ChangeFeed, op entities.ChangeOp) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Error != nil || tx.Statement.RowsAffected == 0 {
			return
		}
		collection, ok := tableCollections[tx.Statement.Table]
		if !ok {
			return
		}

		ctx := context.Background()
		if tx.Statement.Context != nil {
			ctx = context.WithoutCancel(tx.Statement.Context)
		}
		event := entities.ChangeEvent{Collection: collection, Op: op, At: time.Now().UTC()}
		if err := feed.Publish(ctx, event); err != nil {
			logger.Warn(ctx, "Failed to publish change event",
				zap.String("collection", string(collection)),
				zap.String("op", string(op)),
				zap.Error(err),
			)
		}
	}
}
