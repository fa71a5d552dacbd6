package repository

import (
	"context"
	"errors"

	"storefront-service/models"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when creating a record whose key already exists.
	ErrDuplicate = errors.New("record already exists")
)

// AccountRepository stores credential records keyed by email.
type AccountRepository interface {
	// CreateAccount stores account and an empty cart for its email in one
	// step. It returns ErrDuplicate when the email is taken, leaving the
	// existing account and cart untouched.
	CreateAccount(ctx context.Context, account models.Account) error
	FindAccount(ctx context.Context, email string) (*models.Account, error)
}

// CartRepository stores one cart per email. Carts are always read and
// written whole.
type CartRepository interface {
	// GetCart returns an empty cart when none is stored for email.
	GetCart(ctx context.Context, email string) (models.Cart, error)
	ReplaceCart(ctx context.Context, email string, cart models.Cart) error
}

// CatalogRepository reads the product catalog.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProduct(ctx context.Context, id int) (*models.Product, error)
}

// Store is a backend that holds both accounts and carts.
type Store interface {
	AccountRepository
	CartRepository
	// Snapshot returns everything the store holds in the flat-file layout.
	Snapshot(ctx context.Context) (models.Document, error)
	Close() error
}
