// Package feed publishes collection change events over redis pub/sub so
// live subscriptions can reload their snapshot after every committed write.
package feed

import (
	"context"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/pkg/logger"
	"motorhub.backend/pkg/redis"
)

// DefaultPrefix namespaces feed channels
const DefaultPrefix = "motorhub:feed:"

// RedisFeed implements repositories.ChangeFeed on the shared redis client
type RedisFeed struct {
	prefix string
}

// NewRedisFeed creates a feed publishing on <prefix><collection>
func NewRedisFeed(prefix string) *RedisFeed {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisFeed{prefix: prefix}
}

// Channel returns the pub/sub channel of a collection
func (f *RedisFeed) Channel(collection entities.Collection) string {
	return f.prefix + string(collection)
}

// Publish announces a change
func (f *RedisFeed) Publish(ctx context.Context, event entities.ChangeEvent) error {
	payload, err := msgpack.Marshal(&event)
	if err != nil {
		return fmt.Errorf("encode change event: %w", err)
	}
	return redis.Publish(ctx, f.Channel(event.Collection), payload)
}

// Changes streams decoded events until ctx is done. The subscription is
// confirmed before returning so no event published afterwards is missed.
func (f *RedisFeed) Changes(ctx context.Context, collection entities.Collection) (<-chan entities.ChangeEvent, error) {
	sub, err := redis.Subscribe(ctx, f.Channel(collection))
	if err != nil {
		return nil, err
	}

	out := make(chan entities.ChangeEvent, 16)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var event entities.ChangeEvent
				if err := msgpack.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logger.Warn(ctx, "Dropping undecodable change event",
						zap.String("channel", msg.Channel),
						zap.Error(err),
					)
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
