package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"motorhub.backend/internal/domain/entities"
	"motorhub.backend/internal/infrastructure/models"
	"motorhub.backend/pkg/redis"
)

func receive(t *testing.T, ch <-chan entities.ChangeEvent) entities.ChangeEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
	return entities.ChangeEvent{}
}

func TestRedisFeed_PublishAndChanges(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Skipf("miniredis unavailable: %v", err)
	}
	defer mr.Close()
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { redis.SetClient(nil) })

	f := NewRedisFeed("")
	assert.Equal(t, "motorhub:feed:listings", f.Channel(entities.CollectionListings))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := f.Changes(ctx, entities.CollectionListings)
	require.NoError(t, err)

	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.Publish(ctx, entities.ChangeEvent{Collection: entities.CollectionPayments, Op: entities.ChangeCreate, At: at}))
	require.NoError(t, f.Publish(ctx, entities.ChangeEvent{Collection: entities.CollectionListings, Op: entities.ChangeUpdate, At: at}))

	ev := receive(t, ch)
	assert.Equal(t, entities.CollectionListings, ev.Collection)
	assert.Equal(t, entities.ChangeUpdate, ev.Op)
	assert.True(t, at.Equal(ev.At))

	mr.Publish("motorhub:feed:listings", "not msgpack")
	require.NoError(t, f.Publish(ctx, entities.ChangeEvent{Collection: entities.CollectionListings, Op: entities.ChangeDelete}))
	assert.Equal(t, entities.ChangeDelete, receive(t, ch).Op)

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-ch
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMemoryFeed_FanOutAndClose(t *testing.T) {
	f := NewMemoryFeed()
	ctx, cancel := context.WithCancel(context.Background())

	a, err := f.Changes(ctx, entities.CollectionRentals)
	require.NoError(t, err)
	b, err := f.Changes(ctx, entities.CollectionRentals)
	require.NoError(t, err)

	require.NoError(t, f.Publish(ctx, entities.ChangeEvent{Collection: entities.CollectionRentals, Op: entities.ChangeUpdate}))
	assert.Equal(t, entities.ChangeUpdate, receive(t, a).Op)
	assert.Equal(t, entities.ChangeUpdate, receive(t, b).Op)

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-a
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRegisterCallbacks_PublishesAfterCommit(t *testing.T) {
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))

	f := NewMemoryFeed()
	require.NoError(t, RegisterCallbacks(db, f))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := f.Changes(ctx, entities.CollectionNotifications)
	require.NoError(t, err)

	n := &models.Notification{ID: uuid.New(), RecipientID: uuid.New(), Title: "t", Message: "m", Type: "info"}
	require.NoError(t, db.Create(n).Error)
	assert.Equal(t, entities.ChangeCreate, receive(t, ch).Op)

	require.NoError(t, db.Model(&models.Notification{}).Where("id = ?", n.ID).Update("read", true).Error)
	assert.Equal(t, entities.ChangeUpdate, receive(t, ch).Op)

	// no rows touched, no event
	require.NoError(t, db.Model(&models.Notification{}).Where("id = ?", uuid.New()).Update("read", true).Error)

	require.NoError(t, db.Delete(&models.Notification{}, "id = ?", n.ID).Error)
	assert.Equal(t, entities.ChangeDelete, receive(t, ch).Op)
}
