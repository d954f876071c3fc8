package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe-commerce/models"
)

func newTestStore() *CartStore {
	return NewCartStore(nil, 0)
}

func item(productID int, price string, qty int, size, color string) models.CartItem {
	return models.CartItem{
		ProductID: productID,
		Name:      "item",
		UnitPrice: d(price),
		Size:      size,
		Color:     color,
		Quantity:  qty,
	}
}

func TestAddItemMergesByIdentityKey(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.AddItem(ctx, "u1", item(1, "50", 2, "M", "black"))
	cart := store.AddItem(ctx, "u1", item(1, "50", 1, "M", "black"))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, cart.Subtotal().Equal(d("150.00")))
}

func TestAddItemVariantsAreDistinctLines(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.AddItem(ctx, "u1", item(1, "50", 1, "M", "black"))
	store.AddItem(ctx, "u1", item(1, "50", 1, "L", "black"))
	cart := store.AddItem(ctx, "u1", item(1, "50", 1, "M", "white"))

	assert.Len(t, cart.Items, 3)
	assert.Equal(t, 3, cart.TotalItems())
}

func TestAddItemQuantitySumsAcrossManyAdds(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	total := 0
	for _, q := range []int{1, 4, 2, 8} {
		store.AddItem(ctx, "u1", item(7, "10", q, "", ""))
		total += q
	}

	cart := store.Get(ctx, "u1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, total, cart.Items[0].Quantity)
}

func TestAddItemIgnoresNonPositiveQuantity(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	cart := store.AddItem(ctx, "u1", item(1, "50", 0, "", ""))
	assert.Empty(t, cart.Items)

	cart = store.AddItem(ctx, "u1", item(1, "50", -2, "", ""))
	assert.Empty(t, cart.Items)
}

func TestSubtotalInvariantUnderReordering(t *testing.T) {
	ctx := context.Background()
	items := []models.CartItem{
		item(1, "19.99", 2, "S", "red"),
		item(2, "5.25", 3, "", ""),
		item(3, "120.00", 1, "", "blue"),
	}

	forward := newTestStore()
	for _, it := range items {
		forward.AddItem(ctx, "u1", it)
	}

	reversed := newTestStore()
	for i := len(items) - 1; i >= 0; i-- {
		reversed.AddItem(ctx, "u1", items[i])
	}

	a := forward.Get(ctx, "u1")
	b := reversed.Get(ctx, "u1")
	assert.True(t, a.Subtotal().Equal(b.Subtotal()))
	assert.Equal(t, a.TotalItems(), b.TotalItems())
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	key := models.CartKey{ProductID: 1, Size: "M", Color: "black"}

	t.Run("sets quantity", func(t *testing.T) {
		store := newTestStore()
		store.AddItem(ctx, "u1", item(1, "50", 2, "M", "black"))
		cart := store.UpdateQuantity(ctx, "u1", key, 5)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		store := newTestStore()
		store.AddItem(ctx, "u1", item(1, "50", 2, "M", "black"))
		cart := store.UpdateQuantity(ctx, "u1", key, 0)

		assert.Empty(t, cart.Items)
	})

	t.Run("negative removes the line", func(t *testing.T) {
		store := newTestStore()
		store.AddItem(ctx, "u1", item(1, "50", 2, "M", "black"))
		cart := store.UpdateQuantity(ctx, "u1", key, -3)

		assert.Empty(t, cart.Items)
	})

	t.Run("absent key is a no-op", func(t *testing.T) {
		store := newTestStore()
		store.AddItem(ctx, "u1", item(1, "50", 2, "M", "black"))
		cart := store.UpdateQuantity(ctx, "u1", models.CartKey{ProductID: 99}, 5)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	store.AddItem(ctx, "u1", item(1, "50", 2, "M", "black"))

	cart := store.RemoveItem(ctx, "u1", models.CartKey{ProductID: 99})
	require.Len(t, cart.Items, 1)

	cart = store.RemoveItem(ctx, "u1", models.CartKey{ProductID: 1, Size: "M", Color: "black"})
	assert.Empty(t, cart.Items)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	store.AddItem(ctx, "u1", item(1, "50", 2, "", ""))
	store.AddItem(ctx, "u1", item(2, "25", 1, "", ""))

	store.Clear(ctx, "u1")

	cart := store.Get(ctx, "u1")
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalItems())
	assert.True(t, cart.Subtotal().IsZero())
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	store.AddItem(ctx, "u1", item(1, "50", 2, "", ""))
	store.AddItem(ctx, "u2", item(2, "10", 1, "", ""))

	assert.Equal(t, 2, store.Get(ctx, "u1").TotalItems())
	assert.Equal(t, 1, store.Get(ctx, "u2").TotalItems())
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	store.AddItem(ctx, "u1", item(1, "50", 2, "", ""))

	cart := store.Get(ctx, "u1")
	cart.Items[0].Quantity = 99

	assert.Equal(t, 2, store.Get(ctx, "u1").Items[0].Quantity)
}
