package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/models"
	"storefront-service/repository"
)

var cmpDecimal = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func sampleCart(qty ...int) models.Cart {
	c := models.EmptyCart()
	for i, q := range qty {
		c.Items = append(c.Items, models.CartItem{
			ID:       i + 1,
			Title:    gofakeit.ProductName(),
			Price:    decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
			Image:    gofakeit.URL(),
			Quantity: q,
		})
	}
	return c
}

// runStoreContract exercises the behaviour every Store backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) repository.Store) {
	ctx := context.Background()

	t.Run("create then find account", func(t *testing.T) {
		s := newStore(t)
		acct := models.Account{Email: gofakeit.Email(), Password: "pw"}

		require.NoError(t, s.CreateAccount(ctx, acct))

		got, err := s.FindAccount(ctx, acct.Email)
		require.NoError(t, err)
		assert.Equal(t, acct, *got)

		c, err := s.GetCart(ctx, acct.Email)
		require.NoError(t, err)
		assert.NotNil(t, c.Items)
		assert.Empty(t, c.Items)
	})

	t.Run("duplicate registration leaves first account and cart", func(t *testing.T) {
		s := newStore(t)
		email := gofakeit.Email()
		require.NoError(t, s.CreateAccount(ctx, models.Account{Email: email, Password: "first"}))
		stored := sampleCart(2)
		require.NoError(t, s.ReplaceCart(ctx, email, stored))

		err := s.CreateAccount(ctx, models.Account{Email: email, Password: "second"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		got, err := s.FindAccount(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, "first", got.Password)

		c, err := s.GetCart(ctx, email)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(stored, c, cmpDecimal))
	})

	t.Run("registration keeps a cart written before it", func(t *testing.T) {
		s := newStore(t)
		email := gofakeit.Email()
		early := sampleCart(1)
		require.NoError(t, s.ReplaceCart(ctx, email, early))

		require.NoError(t, s.CreateAccount(ctx, models.Account{Email: email, Password: "pw"}))

		c, err := s.GetCart(ctx, email)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(early, c, cmpDecimal))
	})

	t.Run("unknown account", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FindAccount(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("missing cart is empty", func(t *testing.T) {
		s := newStore(t)
		c, err := s.GetCart(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.NotNil(t, c.Items)
		assert.Empty(t, c.Items)
	})

	t.Run("replace overwrites whole cart", func(t *testing.T) {
		s := newStore(t)
		email := gofakeit.Email()
		require.NoError(t, s.ReplaceCart(ctx, email, sampleCart(1, 2, 3)))

		next := sampleCart(5)
		require.NoError(t, s.ReplaceCart(ctx, email, next))

		c, err := s.GetCart(ctx, email)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(next, c, cmpDecimal))
	})

	t.Run("carts of different accounts are isolated", func(t *testing.T) {
		s := newStore(t)
		a, b := "a-"+gofakeit.Email(), "b-"+gofakeit.Email()
		cartB := sampleCart(4)
		require.NoError(t, s.ReplaceCart(ctx, b, cartB))

		require.NoError(t, s.ReplaceCart(ctx, a, sampleCart(1)))
		require.NoError(t, s.ReplaceCart(ctx, a, models.EmptyCart()))

		c, err := s.GetCart(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(cartB, c, cmpDecimal))
	})

	t.Run("concurrent writers to different accounts", func(t *testing.T) {
		s := newStore(t)
		emails := make([]string, 8)
		for i := range emails {
			emails[i] = gofakeit.Numerify("user-###-") + gofakeit.Email()
		}

		var wg sync.WaitGroup
		for i, email := range emails {
			wg.Add(1)
			go func(email string, qty int) {
				defer wg.Done()
				assert.NoError(t, s.ReplaceCart(ctx, email, sampleCart(qty)))
			}(email, i+1)
		}
		wg.Wait()

		for i, email := range emails {
			c, err := s.GetCart(ctx, email)
			require.NoError(t, err)
			require.Len(t, c.Items, 1)
			assert.Equal(t, i+1, c.Items[0].Quantity)
		}
	})

	t.Run("snapshot holds accounts and carts", func(t *testing.T) {
		s := newStore(t)
		email := gofakeit.Email()
		require.NoError(t, s.CreateAccount(ctx, models.Account{Email: email, Password: "pw"}))

		doc, err := s.Snapshot(ctx)
		require.NoError(t, err)
		require.Len(t, doc.Users, 1)
		assert.Equal(t, email, doc.Users[0].Email)
		assert.Contains(t, doc.Carts, email)
	})
}
