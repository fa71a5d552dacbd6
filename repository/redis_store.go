package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"storefront-service/models"
)

const (
	accountKeyPrefix = "account:"
	cartKeyPrefix    = "cart:user:"
)

// RedisStore keeps one JSON value per account and one per cart. Records
// never expire: a cart lives as long as its account.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) accountKey(email string) string {
	return accountKeyPrefix + email
}

func (r *RedisStore) cartKey(email string) string {
	return cartKeyPrefix + email
}

// CreateAccount writes the account and, if absent, an empty cart inside one
// MULTI block guarded by WATCH on the account key.
func (r *RedisStore) CreateAccount(ctx context.Context, account models.Account) error {
	acctData, err := json.Marshal(account)
	if err != nil {
		return err
	}
	cartData, err := json.Marshal(models.EmptyCart())
	if err != nil {
		return err
	}

	key := r.accountKey(account.Email)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrDuplicate
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, acctData, 0)
			pipe.SetNX(ctx, r.cartKey(account.Email), cartData, 0)
			return nil
		})
		return err
	}, key)

	// A concurrent writer touched the key between WATCH and EXEC, so the
	// email has just been taken.
	if errors.Is(err, redis.TxFailedErr) {
		return ErrDuplicate
	}
	return err
}

func (r *RedisStore) FindAccount(ctx context.Context, email string) (*models.Account, error) {
	data, err := r.client.Get(ctx, r.accountKey(email)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var acct models.Account
	if err := json.Unmarshal(data, &acct); err != nil {
		return nil, fmt.Errorf("decode account %s: %w", email, err)
	}
	return &acct, nil
}

func (r *RedisStore) GetCart(ctx context.Context, email string) (models.Cart, error) {
	data, err := r.client.Get(ctx, r.cartKey(email)).Bytes()
	if err == redis.Nil {
		return models.EmptyCart(), nil
	}
	if err != nil {
		return models.Cart{}, err
	}

	var c models.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return models.Cart{}, fmt.Errorf("decode cart %s: %w", email, err)
	}
	return c.Normalize(), nil
}

func (r *RedisStore) ReplaceCart(ctx context.Context, email string, cart models.Cart) error {
	data, err := json.Marshal(cart.Normalize())
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.cartKey(email), data, 0).Err()
}

func (r *RedisStore) Snapshot(ctx context.Context) (models.Document, error) {
	doc := models.NewDocument()

	err := r.scan(ctx, accountKeyPrefix+"*", func(_ string, data []byte) error {
		var acct models.Account
		if err := json.Unmarshal(data, &acct); err != nil {
			return err
		}
		doc.Users = append(doc.Users, acct)
		return nil
	})
	if err != nil {
		return models.Document{}, err
	}

	err = r.scan(ctx, cartKeyPrefix+"*", func(key string, data []byte) error {
		var c models.Cart
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		doc.Carts[strings.TrimPrefix(key, cartKeyPrefix)] = c.Normalize()
		return nil
	})
	if err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) scan(ctx context.Context, match string, fn func(key string, data []byte) error) error {
	iter := r.client.Scan(ctx, 0, match, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := r.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return err
		}
		if err := fn(key, data); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
	}
	return iter.Err()
}
