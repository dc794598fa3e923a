package entity

import (
	"encoding/json"

	"github.com/dquispe/pos-backoffice/pkg/apperror"
	"github.com/google/uuid"
)

// CartItem is one pending-purchase entry. UnitPrice is the price captured
// when the article was added, in cents; zero means the article had no
// configured price at add time and checkout falls back to the price list.
type CartItem struct {
	ArticleID   uuid.UUID `json:"article_id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
}

// Subtotal returns quantity × unit price in cents
func (i CartItem) Subtotal() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

// Cart is the transient per-session pending-purchase list. It lives in the
// session store only; nothing is written to the database until checkout.
// Items keep insertion order.
type Cart struct {
	Items []CartItem `json:"items"`
}

// NewCart returns an empty cart
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// Add stores quantity units of the article. When replace is true the stored
// quantity is set to quantity; otherwise quantity is added to any existing
// entry. Quantities that are not positive are rejected.
func (c *Cart) Add(item CartItem, replace bool) error {
	if item.Quantity <= 0 {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "quantity must be greater than zero"},
		})
	}
	for i := range c.Items {
		if c.Items[i].ArticleID == item.ArticleID {
			if replace {
				c.Items[i].Quantity = item.Quantity
			} else {
				c.Items[i].Quantity += item.Quantity
			}
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

// Quantity returns the stored quantity for an article, zero if absent
func (c *Cart) Quantity(articleID uuid.UUID) int {
	for _, item := range c.Items {
		if item.ArticleID == articleID {
			return item.Quantity
		}
	}
	return 0
}

// Remove deletes the entry for the article. Removing an absent article is
// a no-op, not an error.
func (c *Cart) Remove(articleID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ArticleID == articleID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties all entries
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
}

// Len returns the count of distinct articles, not total units
func (c *Cart) Len() int {
	return len(c.Items)
}

// IsEmpty reports whether the cart has no entries
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total sums the item subtotals in cents
func (c *Cart) Total() int64 {
	var sum int64
	for _, item := range c.Items {
		sum += item.Subtotal()
	}
	return sum
}

// MarshalJSON exposes decimal prices alongside the cent-based items
func (c Cart) MarshalJSON() ([]byte, error) {
	type itemView struct {
		CartItem
		UnitPriceDecimal float64 `json:"unit_price_decimal"`
		Subtotal         float64 `json:"subtotal"`
	}
	items := make([]itemView, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, itemView{
			CartItem:         item,
			UnitPriceDecimal: float64(item.UnitPrice) / 100,
			Subtotal:         float64(item.Subtotal()) / 100,
		})
	}
	return json.Marshal(struct {
		Items []itemView `json:"items"`
		Count int        `json:"count"`
		Total float64    `json:"total"`
	}{
		Items: items,
		Count: c.Len(),
		Total: float64(c.Total()) / 100,
	})
}
