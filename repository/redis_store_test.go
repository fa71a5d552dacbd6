package repository_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/models"
	"storefront-service/repository"
)

func newRedisStore(t *testing.T) (*repository.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := repository.NewRedisStore(client)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) repository.Store {
		s, _ := newRedisStore(t)
		return s
	})
}

func TestRedisStore_KeyLayout(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateAccount(ctx, models.Account{Email: "ann@example.com", Password: "pw"}))

	assert.True(t, mr.Exists("account:ann@example.com"))
	cartJSON, err := mr.Get("cart:user:ann@example.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, cartJSON)
	assert.Zero(t, mr.TTL("cart:user:ann@example.com"), "carts must not expire")
}

func TestRedisStore_CorruptCart(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set("cart:user:bad@example.com", "{"))

	_, err := store.GetCart(context.Background(), "bad@example.com")
	assert.ErrorContains(t, err, "decode cart")
}

func TestRedisStore_Unreachable(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.GetCart(context.Background(), "ann@example.com")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}
