package models

import "github.com/shopspring/decimal"

// CartItem is one line of a cart. Title, price and image are snapshotted when
// the product is first added.
type CartItem struct {
	ID       int             `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// Cart is the ordered list of lines owned by one account.
type Cart struct {
	Items []CartItem `json:"items"`
}

// EmptyCart returns a cart whose items serialise as [] rather than null.
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}}
}

// Normalize replaces a nil item slice so the cart serialises as {"items":[]}.
func (c Cart) Normalize() Cart {
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	return c
}

// Clone returns a cart that shares no backing array with c.
func (c Cart) Clone() Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

// Total is the sum of price times quantity over all lines.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// CartView is the cart as returned by the API.
type CartView struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func (c Cart) View() CartView {
	c = c.Normalize()
	return CartView{Items: c.Items, Total: c.Total()}
}

// CartAction is an intent submitted to POST /api/cart.
type CartAction string

const (
	CartActionAdd    CartAction = "add"
	CartActionRemove CartAction = "remove"
)

// CartUpdateRequest accepts either an intent (action + productId) or a
// whole cart, wrapped in "cart" or sent bare as {"items": [...]}.
type CartUpdateRequest struct {
	Email     string     `json:"email"`
	Action    CartAction `json:"action"`
	ProductID int        `json:"productId"`
	Cart      *Cart      `json:"cart"`
	Items     []CartItem `json:"items"`
}

// Document is the whole persisted state in the flat-file layout.
type Document struct {
	Users []Account       `json:"users"`
	Carts map[string]Cart `json:"carts"`
}

// NewDocument returns an empty document.
func NewDocument() Document {
	return Document{Users: []Account{}, Carts: map[string]Cart{}}
}
