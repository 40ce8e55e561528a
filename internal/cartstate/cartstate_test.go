package cartstate

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *Store {
	store, err := NewStore(nil)
	require.NoError(t, err)
	return store
}

func TestStore_AddToCart(t *testing.T) {
	store := newMemoryStore(t)

	require.NoError(t, store.AddToCart(1, 2))
	require.NoError(t, store.AddToCart(2, 1))

	snapshot := store.Snapshot()
	require.Len(t, snapshot.Cart, 2)
	assert.Equal(t, Line{ProductID: 1, Quantity: 2}, snapshot.Cart[0])

	t.Run("Merges quantities for the same product", func(t *testing.T) {
		require.NoError(t, store.AddToCart(1, 3))

		snapshot := store.Snapshot()
		require.Len(t, snapshot.Cart, 2)
		assert.Equal(t, 5, snapshot.Cart[0].Quantity)
	})

	t.Run("Rejects non-positive quantities", func(t *testing.T) {
		assert.ErrorIs(t, store.AddToCart(1, 0), ErrInvalidQuantity)
		assert.ErrorIs(t, store.AddToCart(1, -2), ErrInvalidQuantity)
	})
}

func TestStore_SetQuantity(t *testing.T) {
	store := newMemoryStore(t)
	require.NoError(t, store.AddToCart(1, 2))

	require.NoError(t, store.SetQuantity(1, 7))
	assert.Equal(t, 7, store.Snapshot().Cart[0].Quantity)

	t.Run("Zero removes the line", func(t *testing.T) {
		require.NoError(t, store.SetQuantity(1, 0))
		assert.Empty(t, store.Snapshot().Cart)
	})

	t.Run("Unknown product appends a line", func(t *testing.T) {
		require.NoError(t, store.SetQuantity(9, 1))
		require.Len(t, store.Snapshot().Cart, 1)
		assert.Equal(t, uint(9), store.Snapshot().Cart[0].ProductID)
	})

	t.Run("Negative quantity is rejected", func(t *testing.T) {
		assert.ErrorIs(t, store.SetQuantity(9, -1), ErrInvalidQuantity)
	})
}

func TestStore_RemoveAndClear(t *testing.T) {
	store := newMemoryStore(t)
	require.NoError(t, store.AddToCart(1, 1))
	require.NoError(t, store.AddToCart(2, 1))

	require.NoError(t, store.RemoveFromCart(1))
	require.Len(t, store.Snapshot().Cart, 1)

	require.NoError(t, store.ClearCart())
	assert.Empty(t, store.Snapshot().Cart)
}

func TestStore_ToggleWishlist(t *testing.T) {
	store := newMemoryStore(t)

	present, err := store.ToggleWishlist(3)
	require.NoError(t, err)
	assert.True(t, present)

	present, err = store.ToggleWishlist(3)
	require.NoError(t, err)
	assert.False(t, present)
	assert.Empty(t, store.Snapshot().Wishlist)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := newMemoryStore(t)
	require.NoError(t, store.AddToCart(1, 1))

	snapshot := store.Snapshot()
	snapshot.Cart[0].Quantity = 99

	assert.Equal(t, 1, store.Snapshot().Cart[0].Quantity)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	store := newMemoryStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.AddToCart(1, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.Snapshot().Cart[0].Quantity)
}

func TestFilePersister_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "cart.json")
	persister := NewFilePersister(path)

	store, err := NewStore(persister)
	require.NoError(t, err)
	require.NoError(t, store.AddToCart(1, 2))
	_, err = store.ToggleWishlist(5)
	require.NoError(t, err)

	restored, err := NewStore(NewFilePersister(path))
	require.NoError(t, err)

	snapshot := restored.Snapshot()
	require.Len(t, snapshot.Cart, 1)
	assert.Equal(t, Line{ProductID: 1, Quantity: 2}, snapshot.Cart[0])
	assert.Equal(t, []uint{5}, snapshot.Wishlist)
}

func TestFilePersister_MissingFileIsEmptyState(t *testing.T) {
	persister := NewFilePersister(filepath.Join(t.TempDir(), "nope.json"))

	state, err := persister.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Cart)
	assert.Empty(t, state.Wishlist)
}
