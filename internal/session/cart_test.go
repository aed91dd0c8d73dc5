package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCartStore() *CartStore {
	return NewCartStore(NewMemoryPort(), testLogger())
}

func TestCartStore_AddNewItem(t *testing.T) {
	store := newTestCartStore()
	ctx := context.Background()

	cart, err := store.Add(ctx, "sess-1", CartItem{
		ProductID: "p1",
		Name:      "Fountain Pen",
		Price:     1200,
		Quantity:  2,
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "Fountain Pen added to cart", cart.Message)
}

func TestCartStore_AddMergesSameIdentity(t *testing.T) {
	store := newTestCartStore()
	ctx := context.Background()

	item := CartItem{ProductID: "p1", Size: "M", Name: "Notebook", Quantity: 1}
	_, err := store.Add(ctx, "sess-1", item)
	require.NoError(t, err)

	cart, err := store.Add(ctx, "sess-1", item)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "Notebook quantity updated in cart", cart.Message)
}

func TestCartStore_DifferentSizeIsSeparateLine(t *testing.T) {
	store := newTestCartStore()
	ctx := context.Background()

	_, err := store.Add(ctx, "sess-1", CartItem{ProductID: "p1", Size: "A5", Quantity: 1})
	require.NoError(t, err)

	cart, err := store.Add(ctx, "sess-1", CartItem{ProductID: "p1", Size: "A4", Quantity: 1})
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
	assert.True(t, cart.Contains("p1", "", "A5", ""))
	assert.True(t, cart.Contains("p1", "", "A4", ""))
	assert.False(t, cart.Contains("p1", "", "A3", ""))
}

func TestCartStore_UpdateQuantity(t *testing.T) {
	store := newTestCartStore()
	ctx := context.Background()

	_, err := store.Add(ctx, "sess-1", CartItem{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	cart, err := store.UpdateQuantity(ctx, "sess-1", "p1", "", 5)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartStore_UpdateQuantityZeroRemoves(t *testing.T) {
	store := newTestCartStore()
	ctx := context.Background()

	_, err := store.Add(ctx, "sess-1", CartItem{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	cart, err := store.UpdateQuantity(ctx, "sess-1", "p1", "", 0)
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Equal(t, "Item removed from cart", cart.Message)
}

func TestCartStore_RemoveByVariation(t *testing.T) {
	store := newTestCartStore()
	ctx := context.Background()

	_, err := store.Add(ctx, "sess-1", CartItem{ProductID: "p1", VariationID: "v1", Quantity: 1})
	require.NoError(t, err)
	_, err = store.Add(ctx, "sess-1", CartItem{ProductID: "p1", VariationID: "v2", Quantity: 1})
	require.NoError(t, err)

	cart, err := store.Remove(ctx, "sess-1", "p1", "v1")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "v2", cart.Items[0].VariationID)
}

func TestCartStore_ClearAndPersistence(t *testing.T) {
	port := NewMemoryPort()
	store := NewCartStore(port, testLogger())
	ctx := context.Background()

	_, err := store.Add(ctx, "sess-1", CartItem{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	// A second store over the same port sees the persisted cart.
	other := NewCartStore(port, testLogger())
	cart, err := other.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, cart.ItemCount())

	require.NoError(t, store.Clear(ctx, "sess-1"))

	cart, err = store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartStore_SubscribersNotified(t *testing.T) {
	store := newTestCartStore()
	ctx := context.Background()

	var notifications []Cart
	unsubscribe := store.Subscribe(func(cartID string, cart Cart) {
		assert.Equal(t, "sess-1", cartID)
		notifications = append(notifications, cart)
	})

	_, err := store.Add(ctx, "sess-1", CartItem{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	unsubscribe()
	_, err = store.Add(ctx, "sess-1", CartItem{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}
