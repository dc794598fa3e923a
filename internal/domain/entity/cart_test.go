package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(qty int, price int64) CartItem {
	return CartItem{
		ArticleID:   uuid.New(),
		Code:        "A-001",
		Description: "Widget",
		Quantity:    qty,
		UnitPrice:   price,
	}
}

func TestCartAddAccumulatesQuantity(t *testing.T) {
	cart := NewCart()
	item := newTestItem(3, 999)

	require.NoError(t, cart.Add(item, false))
	item.Quantity = 2
	require.NoError(t, cart.Add(item, false))

	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, 5, cart.Quantity(item.ArticleID))
	// 9.99 x 5 = 49.95
	assert.Equal(t, int64(4995), cart.Total())
}

func TestCartAddReplaceOverwritesQuantity(t *testing.T) {
	cart := NewCart()
	item := newTestItem(3, 500)

	require.NoError(t, cart.Add(item, false))
	item.Quantity = 7
	require.NoError(t, cart.Add(item, true))

	assert.Equal(t, 7, cart.Quantity(item.ArticleID))
	assert.Equal(t, int64(3500), cart.Total())
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	cart := NewCart()

	err := cart.Add(newTestItem(0, 100), false)
	assert.Error(t, err)

	err = cart.Add(newTestItem(-2, 100), false)
	assert.Error(t, err)

	assert.True(t, cart.IsEmpty())
}

func TestCartKeepsInsertionOrder(t *testing.T) {
	cart := NewCart()
	first := newTestItem(1, 100)
	second := newTestItem(1, 200)
	third := newTestItem(1, 300)

	require.NoError(t, cart.Add(first, false))
	require.NoError(t, cart.Add(second, false))
	require.NoError(t, cart.Add(third, false))

	// Re-adding an existing article must not move it to the back
	first.Quantity = 4
	require.NoError(t, cart.Add(first, false))

	require.Equal(t, 3, cart.Len())
	assert.Equal(t, first.ArticleID, cart.Items[0].ArticleID)
	assert.Equal(t, second.ArticleID, cart.Items[1].ArticleID)
	assert.Equal(t, third.ArticleID, cart.Items[2].ArticleID)
}

func TestCartRemove(t *testing.T) {
	cart := NewCart()
	keep := newTestItem(1, 100)
	drop := newTestItem(2, 200)

	require.NoError(t, cart.Add(keep, false))
	require.NoError(t, cart.Add(drop, false))

	cart.Remove(drop.ArticleID)
	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, 0, cart.Quantity(drop.ArticleID))

	// Removing an absent article is a no-op
	cart.Remove(uuid.New())
	assert.Equal(t, 1, cart.Len())
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.Add(newTestItem(2, 100), false))
	require.NoError(t, cart.Add(newTestItem(1, 250), false))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, int64(0), cart.Total())
}

func TestCartLenCountsDistinctArticles(t *testing.T) {
	cart := NewCart()
	item := newTestItem(10, 100)
	require.NoError(t, cart.Add(item, false))
	require.NoError(t, cart.Add(newTestItem(1, 100), false))

	assert.Equal(t, 2, cart.Len())
}

func TestCartMarshalJSONExposesDecimals(t *testing.T) {
	cart := NewCart()
	item := newTestItem(3, 999)
	require.NoError(t, cart.Add(item, false))

	data, err := json.Marshal(cart)
	require.NoError(t, err)

	var view struct {
		Items []struct {
			Quantity         int     `json:"quantity"`
			UnitPriceDecimal float64 `json:"unit_price_decimal"`
			Subtotal         float64 `json:"subtotal"`
		} `json:"items"`
		Count int     `json:"count"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(data, &view))

	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.InDelta(t, 9.99, view.Items[0].UnitPriceDecimal, 0.001)
	assert.InDelta(t, 29.97, view.Items[0].Subtotal, 0.001)
	assert.Equal(t, 1, view.Count)
	assert.InDelta(t, 29.97, view.Total, 0.001)
}
