package redis

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedClient(t *testing.T) (*Client, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	client := &Client{
		opts:   &goredis.UniversalOptions{},
		client: db,
	}
	return client, mock
}

func TestOptions(t *testing.T) {
	client := &Client{opts: &goredis.UniversalOptions{}}

	WithAddrs([]string{"localhost:6379", "localhost:6380"})(client)
	WithUsername("user")(client)
	WithPassword("pass")(client)
	WithDB(3)(client)
	WithPoolSize(25)(client)

	assert.Len(t, client.opts.Addrs, 2)
	assert.Equal(t, "user", client.opts.Username)
	assert.Equal(t, "pass", client.opts.Password)
	assert.Equal(t, 3, client.opts.DB)
	assert.Equal(t, 25, client.opts.PoolSize)
}

func TestOptions_IgnoreEmptyValues(t *testing.T) {
	client := &Client{opts: &goredis.UniversalOptions{Addrs: []string{"seed:6379"}, PoolSize: 10}}

	WithAddrs(nil)(client)
	WithPoolSize(0)(client)

	assert.Equal(t, []string{"seed:6379"}, client.opts.Addrs, "Empty addrs should not override the default")
	assert.Equal(t, 10, client.opts.PoolSize, "Zero pool size should not override the default")
}

func TestSetGet(t *testing.T) {
	client, mock := newMockedClient(t)
	ctx := context.Background()

	mock.ExpectSet("cities:active", `["Lahore"]`, time.Minute).SetVal("OK")
	mock.ExpectGet("cities:active").SetVal(`["Lahore"]`)

	require.NoError(t, client.Set(ctx, "cities:active", `["Lahore"]`, time.Minute))

	val, err := client.Get(ctx, "cities:active")
	require.NoError(t, err)
	assert.Equal(t, `["Lahore"]`, val)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_Miss(t *testing.T) {
	client, mock := newMockedClient(t)

	mock.ExpectGet("missing").RedisNil()

	_, err := client.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, Nil, "Cache miss should surface redis.Nil")
}

func TestDelExists(t *testing.T) {
	client, mock := newMockedClient(t)
	ctx := context.Background()

	mock.ExpectDel("cities:active").SetVal(1)
	mock.ExpectExists("cities:active").SetVal(0)

	require.NoError(t, client.Del(ctx, "cities:active"))

	exists, err := client.Exists(ctx, "cities:active")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}
