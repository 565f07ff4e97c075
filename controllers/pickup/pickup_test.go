package pickupcontroller

import (
	"testing"

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
		&models.PickupPoint{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func berlinPoint(name string) PickupPointRequest {
	return PickupPointRequest{
		Name: name, Country: "DE", City: "Berlin",
		Street: "Hauptstrasse", House: "1",
	}
}

func TestListPickupPointsFiltersInactive(t *testing.T) {
	db := newTestDB(t)
	active, err := CreatePickupPoint(db, berlinPoint("Depot A"))
	require.NoError(t, err)
	retired, err := CreatePickupPoint(db, berlinPoint("Depot B"))
	require.NoError(t, err)
	_, err = SetPickupPointActive(db, retired.ID, false)
	require.NoError(t, err)

	points, err := ListPickupPoints(db, false)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, active.ID, points[0].ID)

	points, err = ListPickupPoints(db, true)
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestUpdatePickupPoint(t *testing.T) {
	db := newTestDB(t)
	point, err := CreatePickupPoint(db, berlinPoint("Depot"))
	require.NoError(t, err)

	req := berlinPoint("Depot")
	req.City = "Hamburg"
	updated, err := UpdatePickupPoint(db, point.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Hamburg", updated.City)

	_, err = UpdatePickupPoint(db, 999, req)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeletePickupPointWithHistoryRefused(t *testing.T) {
	db := newTestDB(t)
	point, err := CreatePickupPoint(db, berlinPoint("Depot"))
	require.NoError(t, err)

	order := models.Order{
		UserID: 1, Status: models.OrderStatusProcessing,
		PaymentMethod: models.PaymentCard, Reference: "ref-1",
		PickupPointID: &point.ID,
	}
	require.NoError(t, db.Create(&order).Error)

	err = DeletePickupPoint(db, point.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidOperation, apperrors.KindOf(err))

	fresh, err := CreatePickupPoint(db, berlinPoint("Unused"))
	require.NoError(t, err)
	require.NoError(t, DeletePickupPoint(db, fresh.ID))

	err = DeletePickupPoint(db, fresh.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
