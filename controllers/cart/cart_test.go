package cartControllers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	"github.com/AgentGrom/autoshop/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Part{},
		&models.Image{},
		&models.Cart{},
		&models.CartItem{},
	))
	return db
}

func seedPart(t *testing.T, db *gorm.DB, name string, stock int) models.Part {
	t.Helper()
	category := models.Category{Name: "Misc " + name}
	require.NoError(t, db.Create(&category).Error)
	part := models.Part{
		Name:       name,
		Price:      decimal.NewFromInt(30),
		StockCount: stock,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&part).Error)
	return part
}

func TestUpsertItemSetsQuantity(t *testing.T) {
	db := newTestDB(t)
	part := seedPart(t, db, "air filter", 10)

	item, err := UpsertItem(db, 1, CartItemInput{PartID: part.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	// Re-adding replaces the quantity, it is not additive.
	item, err = UpsertItem(db, 1, CartItemInput{PartID: part.ID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	items, err := GetCartItems(db, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpsertItemAdvisoryStockCheck(t *testing.T) {
	db := newTestDB(t)
	part := seedPart(t, db, "battery", 1)

	_, err := UpsertItem(db, 1, CartItemInput{PartID: part.ID, Quantity: 3})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInsufficientStock, apperrors.KindOf(err))

	_, err = UpsertItem(db, 1, CartItemInput{PartID: 999, Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	db := newTestDB(t)
	part := seedPart(t, db, "bulb", 10)

	_, err := UpsertItem(db, 1, CartItemInput{PartID: part.ID, Quantity: 1})
	require.NoError(t, err)

	items, err := GetCartItems(db, 2)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSyncCartReplacesSnapshot(t *testing.T) {
	db := newTestDB(t)
	old := seedPart(t, db, "old part", 10)
	kept := seedPart(t, db, "kept part", 10)
	added := seedPart(t, db, "added part", 10)

	_, err := UpsertItem(db, 1, CartItemInput{PartID: old.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = UpsertItem(db, 1, CartItemInput{PartID: kept.ID, Quantity: 1})
	require.NoError(t, err)

	items, err := SyncCart(db, 1, []CartItemInput{
		{PartID: kept.ID, Quantity: 4},
		{PartID: added.ID, Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	byPart := map[uint]int{}
	for _, item := range items {
		byPart[item.PartID] = item.Quantity
	}
	assert.Equal(t, 4, byPart[kept.ID])
	assert.Equal(t, 2, byPart[added.ID])
	assert.NotContains(t, byPart, old.ID)
}

func TestSyncCartRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	part := seedPart(t, db, "hose", 10)

	_, err := SyncCart(db, 1, []CartItemInput{{PartID: part.ID, Quantity: 0}})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = SyncCart(db, 1, []CartItemInput{{PartID: 999, Quantity: 1}})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestRemoveItem(t *testing.T) {
	db := newTestDB(t)
	part := seedPart(t, db, "belt", 10)

	_, err := UpsertItem(db, 1, CartItemInput{PartID: part.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, RemoveItem(db, 1, part.ID))

	err = RemoveItem(db, 1, part.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	part := seedPart(t, db, "plug", 10)

	_, err := UpsertItem(db, 1, CartItemInput{PartID: part.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, ClearCart(db, 1))
	items, err := GetCartItems(db, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Clearing a cart that never existed is a no-op.
	require.NoError(t, ClearCart(db, 77))
}
