// Package cart holds the cart mutation rules. Every function is pure: it
// takes the freshly loaded cart and returns the next state without touching
// storage, so a failed mutation never reaches the store.
package cart

import (
	"storefront-service/errors"
	"storefront-service/models"
)

// ErrOutOfStock is returned by Add when one more unit would exceed stock.
var ErrOutOfStock = errors.ErrOutOfStock

// Add puts one unit of product into c. The product's stock is authoritative;
// title, price and image are copied onto a new line and never re-synced.
// On ErrOutOfStock the returned cart is c unchanged.
func Add(c models.Cart, product models.Product) (models.Cart, error) {
	idx := indexOf(c, product.ID)

	currentQty := 0
	if idx >= 0 {
		currentQty = c.Items[idx].Quantity
	}
	if currentQty+1 > product.Stock {
		return c, ErrOutOfStock
	}

	next := c.Clone()
	if idx >= 0 {
		next.Items[idx].Quantity++
		return next, nil
	}

	next.Items = append(next.Items, models.CartItem{
		ID:       product.ID,
		Title:    product.Title,
		Price:    product.Price,
		Image:    product.Image,
		Quantity: 1,
	})
	return next, nil
}

// Remove takes one unit of productID out of c, dropping the line when it
// reaches zero. Removing a product that is not in the cart is a no-op.
func Remove(c models.Cart, productID int) models.Cart {
	idx := indexOf(c, productID)
	if idx < 0 {
		return c.Normalize()
	}

	next := c.Clone()
	next.Items[idx].Quantity--
	if next.Items[idx].Quantity <= 0 {
		next.Items = append(next.Items[:idx], next.Items[idx+1:]...)
	}
	return next
}

// Sanitize enforces the stored-cart invariants on client supplied state:
// lines with quantity <= 0 are dropped and duplicate ids are folded into the
// first occurrence.
func Sanitize(c models.Cart) models.Cart {
	next := models.EmptyCart()
	seen := make(map[int]int, len(c.Items))

	for _, item := range c.Items {
		if item.Quantity <= 0 {
			continue
		}
		if pos, ok := seen[item.ID]; ok {
			next.Items[pos].Quantity += item.Quantity
			continue
		}
		seen[item.ID] = len(next.Items)
		next.Items = append(next.Items, item)
	}
	return next
}

// Contains reports whether c has a line for productID.
func Contains(c models.Cart, productID int) bool {
	return indexOf(c, productID) >= 0
}

func indexOf(c models.Cart, productID int) int {
	for i, item := range c.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}
