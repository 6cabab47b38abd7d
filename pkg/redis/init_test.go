package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_PasswordOverridesURL(t *testing.T) {
	origPing := pingClient
	t.Cleanup(func() {
		pingClient = origPing
		_ = Close()
		SetClient(nil)
	})

	var pinged *goredis.Client
	pingClient = func(_ context.Context, c *goredis.Client) error {
		pinged = c
		return nil
	}

	require.NoError(t, Init("redis://:from-url@127.0.0.1:6390/3", "from-config"))
	require.NotNil(t, pinged)
	assert.Same(t, pinged, GetClient())
	assert.Equal(t, "from-config", GetClient().Options().Password)
	assert.Equal(t, 3, GetClient().Options().DB)

	require.NoError(t, Init("redis://:from-url@127.0.0.1:6390/0", ""))
	assert.Equal(t, "from-url", GetClient().Options().Password)
}

func TestSubscribe_UnreachableServer(t *testing.T) {
	SetClient(goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:0",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}))
	t.Cleanup(func() {
		_ = Close()
		SetClient(nil)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	sub, err := Subscribe(ctx, "motorhub:changes")
	assert.Error(t, err)
	assert.Nil(t, sub)
}

func TestClose_WithoutClient(t *testing.T) {
	SetClient(nil)
	assert.NoError(t, Close())
}
