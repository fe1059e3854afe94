package cartControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obimbo07/mohacollection-api/models"
	"github.com/obimbo07/mohacollection-api/pkg/testdb"
)

func TestMergeAddsQuantitiesForMatchingKeys(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Ankara Dress", 2500, 10)

	// User already has 2 in the cart; the guest cart holds 3 of the same key.
	_, err := AddItem(db, userID, CartItemInput{ProductID: product.ID, Quantity: 2, Size: "M"})
	require.NoError(t, err)

	guestID := "guest_merge_test"
	_, err = AddToGuestCart(db, guestID, CartItemInput{ProductID: product.ID, Quantity: 3, Size: "M"})
	require.NoError(t, err)

	merged, err := MergeGuestCart(db, guestID, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, merged)

	items, err := CartItems(db, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestMergeInsertsNewKeysWithCurrentPrice(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Kitenge Shirt", 1200, 10)

	guestID := "guest_insert_test"
	_, err := AddToGuestCart(db, guestID, CartItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	// The price changed after the guest added the item; the merge snapshots
	// the price at merge time, not add time.
	require.NoError(t, db.Model(&product).Update("price", 1500).Error)

	merged, err := MergeGuestCart(db, guestID, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, merged)

	items, err := CartItems(db, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1500.0, items[0].UnitPrice)
	assert.Equal(t, 2, items[0].Quantity)
}

// The merge itself is additive, not idempotent. Running it twice without
// clearing the guest cart doubles quantities; the caller owns the clear.
func TestMergeTwiceWithoutClearDoubles(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Leso Wrap", 800, 20)

	guestID := "guest_double_test"
	_, err := AddToGuestCart(db, guestID, CartItemInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	_, err = MergeGuestCart(db, guestID, userID)
	require.NoError(t, err)
	_, err = MergeGuestCart(db, guestID, userID)
	require.NoError(t, err)

	items, err := CartItems(db, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)
}

func TestMergeThenClearIsSafeToRepeat(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Beaded Necklace", 950, 20)

	guestID := "guest_clear_test"
	_, err := AddToGuestCart(db, guestID, CartItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	merged, err := MergeGuestCart(db, guestID, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, merged)
	require.NoError(t, ClearGuestCart(db, guestID))

	// Second round finds an empty guest cart and merges nothing.
	merged, err = MergeGuestCart(db, guestID, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, merged)

	items, err := CartItems(db, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestMergeSkipsRemovedProducts(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	kept := createProduct(t, db, "Sisal Bag", 2000, 10)
	removed := createProduct(t, db, "Discontinued Hat", 500, 10)

	guestID := "guest_removed_test"
	_, err := AddToGuestCart(db, guestID, CartItemInput{ProductID: kept.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = AddToGuestCart(db, guestID, CartItemInput{ProductID: removed.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Product{}, removed.ID).Error)

	merged, err := MergeGuestCart(db, guestID, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, merged)

	items, err := CartItems(db, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ProductID)
}

func TestMergeWithNoGuestCartIsNoop(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)

	merged, err := MergeGuestCart(db, "guest_never_existed", userID)
	require.NoError(t, err)
	assert.Equal(t, 0, merged)
}

func TestBestEffortMergeClearsGuestCartOnSuccess(t *testing.T) {
	db := testdb.Open(t)
	userID := createUser(t, db)
	product := createProduct(t, db, "Batik Scarf", 600, 10)

	guestID := "guest_best_effort"
	_, err := AddToGuestCart(db, guestID, CartItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	MergeGuestCartBestEffort(db, guestID, userID)

	items, err := CartItems(db, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	entries, err := GuestCartEntries(db, guestID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Repeating after the clear cannot double anything.
	MergeGuestCartBestEffort(db, guestID, userID)
	items, err = CartItems(db, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}
