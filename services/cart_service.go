package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"storefront-service/cart"
	"storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"
)

// CartService runs the per-request read-modify-write cycle for a user's
// cart. The cycle is not serialised per user: two concurrent mutations of
// the same cart race and the later write wins.
type CartService interface {
	GetCart(ctx context.Context, email string) (models.Cart, error)
	AddItem(ctx context.Context, email string, productID int) (models.Cart, error)
	RemoveItem(ctx context.Context, email string, productID int) (models.Cart, error)
	// ReplaceCart stores a client supplied cart after sanitising it.
	ReplaceCart(ctx context.Context, email string, c models.Cart) (models.Cart, error)
}

type cartServiceImpl struct {
	carts   repository.CartRepository
	catalog repository.CatalogRepository
	logger  *zap.Logger
}

func NewCartService(carts repository.CartRepository, catalog repository.CatalogRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, catalog: catalog, logger: logger}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, email string) (models.Cart, error) {
	if email == "" {
		return models.Cart{}, errors.ErrMissingIdentity
	}

	c, err := s.carts.GetCart(ctx, email)
	if err != nil {
		return models.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	return c, nil
}

// AddItem checks the product's current stock and adds one unit. Nothing is
// written when the product is unknown or out of stock.
func (s *cartServiceImpl) AddItem(ctx context.Context, email string, productID int) (models.Cart, error) {
	current, err := s.GetCart(ctx, email)
	if err != nil {
		return models.Cart{}, err
	}

	product, err := s.catalog.FindProduct(ctx, productID)
	if stderrors.Is(err, repository.ErrNotFound) {
		return current, errors.ErrProductNotFound
	}
	if err != nil {
		return current, fmt.Errorf("load product %d: %w", productID, err)
	}

	next, err := cart.Add(current, *product)
	if err != nil {
		s.logger.Debug("Add rejected",
			zap.String("email", email),
			zap.Int("product_id", productID),
			zap.Int("stock", product.Stock),
			zap.Error(err),
		)
		return current, err
	}

	if err := s.carts.ReplaceCart(ctx, email, next); err != nil {
		return current, fmt.Errorf("save cart: %w", err)
	}
	return next, nil
}

// RemoveItem takes one unit away. A product that is not in the cart leaves
// the stored cart untouched.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, email string, productID int) (models.Cart, error) {
	current, err := s.GetCart(ctx, email)
	if err != nil {
		return models.Cart{}, err
	}
	if !cart.Contains(current, productID) {
		return current, nil
	}

	next := cart.Remove(current, productID)
	if err := s.carts.ReplaceCart(ctx, email, next); err != nil {
		return current, fmt.Errorf("save cart: %w", err)
	}
	return next, nil
}

func (s *cartServiceImpl) ReplaceCart(ctx context.Context, email string, c models.Cart) (models.Cart, error) {
	if email == "" {
		return models.Cart{}, errors.ErrMissingIdentity
	}

	next := cart.Sanitize(c)
	if err := s.carts.ReplaceCart(ctx, email, next); err != nil {
		return models.Cart{}, fmt.Errorf("save cart: %w", err)
	}
	return next, nil
}
