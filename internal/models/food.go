package models

import "github.com/shopspring/decimal"

// FoodItem represents a single orderable menu item. Catalog items are
// immutable after load; every store copies them by value when they cross a
// store boundary, so a cart line or order can never alias catalog state.
type FoodItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
	PrepTime    string          `json:"prep_time"`
	Ingredients []string        `json:"ingredients"`
	Calories    int             `json:"calories"`
	IsVeg       bool            `json:"is_veg"`
}

// Clone returns a deep copy of the item, detached from the receiver.
func (f FoodItem) Clone() FoodItem {
	c := f
	c.Ingredients = append([]string(nil), f.Ingredients...)
	return c
}

// Category represents a browsable menu category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// CartLine is one (item, quantity) pairing in the active cart. Quantity is
// always >= 1; a line that would reach 0 is removed instead of stored.
type CartLine struct {
	Item     FoodItem `json:"item"`
	Quantity int      `json:"quantity"`
}

// Subtotal returns price * quantity for this line.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Clone returns a deep copy of the line.
func (l CartLine) Clone() CartLine {
	return CartLine{Item: l.Item.Clone(), Quantity: l.Quantity}
}
