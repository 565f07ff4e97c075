package settingscontroller

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))
	return db
}

func TestGetValueFallback(t *testing.T) {
	db := newTestDB(t)

	v, err := GetValue(db, "missing", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", v)

	_, err = Set(db, "greeting", "hello", "")
	require.NoError(t, err)
	v, err = GetValue(db, "greeting", "default")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestSetUpserts(t *testing.T) {
	db := newTestDB(t)

	_, err := Set(db, KeyPartServiceFee, "500", "flat fee per parts order")
	require.NoError(t, err)
	_, err = Set(db, KeyPartServiceFee, "750", "")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	v, err := GetValue(db, KeyPartServiceFee, "")
	require.NoError(t, err)
	assert.Equal(t, "750", v)
}

func TestGetFloat(t *testing.T) {
	db := newTestDB(t)
	_, err := Set(db, KeyCarDeliveryCost, "1500.50", "")
	require.NoError(t, err)

	v, err := GetFloat(db, KeyCarDeliveryCost, 0)
	require.NoError(t, err)
	assert.Equal(t, 1500.50, v)

	v, err = GetFloat(db, "missing", 42)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestGetDecimalBadValueFallsBack(t *testing.T) {
	db := newTestDB(t)
	_, err := Set(db, KeyCarServiceFee, "not a number", "")
	require.NoError(t, err)

	fallback := decimal.NewFromInt(5000)
	v, err := GetDecimal(db, KeyCarServiceFee, fallback)
	require.NoError(t, err)
	assert.True(t, v.Equal(fallback), "a bad setting row must not break order placement")

	_, err = Set(db, KeyCarServiceFee, "4999.99", "")
	require.NoError(t, err)
	v, err = GetDecimal(db, KeyCarServiceFee, fallback)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.RequireFromString("4999.99")))
}
