package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartTotalsEmpty(t *testing.T) {
	qty, amount := CartTotals(nil)
	assert.Equal(t, 0, qty)
	assert.Equal(t, 0.0, amount)

	qty, amount = CartTotals([]CartItem{})
	assert.Equal(t, 0, qty)
	assert.Equal(t, 0.0, amount)
}

func TestCartTotalsSumsQuantityTimesPrice(t *testing.T) {
	items := []CartItem{
		{UnitPrice: 100, Quantity: 2},
		{UnitPrice: 250, Quantity: 1},
		{UnitPrice: 50, Quantity: 4},
	}
	qty, amount := CartTotals(items)
	assert.Equal(t, 7, qty)
	assert.Equal(t, 650.0, amount)
}

// Totals are derived, so any sequence of item mutations keeps them consistent
// with the item list.
func TestCartTotalsTrackMutations(t *testing.T) {
	items := []CartItem{{UnitPrice: 300, Quantity: 1}}

	items[0].Quantity += 2 // add same key
	qty, amount := CartTotals(items)
	assert.Equal(t, 3, qty)
	assert.Equal(t, 900.0, amount)

	items = append(items, CartItem{UnitPrice: 120, Quantity: 1})
	qty, amount = CartTotals(items)
	assert.Equal(t, 4, qty)
	assert.Equal(t, 1020.0, amount)

	items[0].Quantity-- // decrement
	qty, amount = CartTotals(items)
	assert.Equal(t, 3, qty)
	assert.Equal(t, 720.0, amount)

	items = items[1:] // remove first item
	qty, amount = CartTotals(items)
	assert.Equal(t, 1, qty)
	assert.Equal(t, 120.0, amount)

	items = nil // clear
	qty, amount = CartTotals(items)
	assert.Equal(t, 0, qty)
	assert.Equal(t, 0.0, amount)
}
