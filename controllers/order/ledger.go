package orderControllers

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AgentGrom/autoshop/apperrors"
	"github.com/AgentGrom/autoshop/models"
)

// The inventory ledger: the only mutators of Part.StockCount and
// Car.IsVisible outside direct administrative edits. Every function
// here runs on the transaction handle of the order mutation it belongs
// to, and re-reads rows under a row lock so two customers racing for
// the same stock or the same car cannot both win.

// lockForUpdate takes a row lock on backends that support it. SQLite
// serializes writers on its own and rejects FOR UPDATE.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// reservePart locks the part row and decrements stock by quantity.
// The whole surrounding transaction fails if any line is short.
func reservePart(tx *gorm.DB, partID uint, quantity int) (*models.Part, error) {
	var part models.Part
	if err := lockForUpdate(tx).
		First(&part, partID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("part %d not found", partID)
		}
		return nil, err
	}
	if part.StockCount < quantity {
		return nil, apperrors.InsufficientStock(
			"part %q: requested %d, %d in stock", part.Name, quantity, part.StockCount)
	}
	part.StockCount -= quantity
	if err := tx.Save(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

// reserveCar locks the car row and hides it from listings. The car
// must be visible, priced and not referenced by another active order.
func reserveCar(tx *gorm.DB, carID uint) (*models.Car, error) {
	var car models.Car
	if err := lockForUpdate(tx).
		First(&car, carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("car %d not found", carID)
		}
		return nil, err
	}
	if !car.IsVisible {
		return nil, apperrors.Unavailable("car %d is not available for order", carID)
	}
	if car.Price == nil {
		return nil, apperrors.Unavailable("car %d has no price and cannot be ordered", carID)
	}

	var active int64
	if err := tx.Model(&models.CarOrder{}).
		Joins("JOIN orders ON orders.id = car_orders.order_id").
		Where("car_orders.car_id = ? AND orders.status <> ?", carID, models.OrderStatusCancelled).
		Count(&active).Error; err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, apperrors.Unavailable("car %d is already reserved by another order", carID)
	}

	car.IsVisible = false
	if err := tx.Save(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// releaseFromOrder restores the inventory an order holds: part stock
// incremented by the ordered quantities, the car made visible again.
// The state machine guarantees this runs exactly once, on the single
// transition into Cancelled.
func releaseFromOrder(tx *gorm.DB, order *models.Order) error {
	for _, item := range order.Items {
		var part models.Part
		err := lockForUpdate(tx).
			First(&part, item.PartID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Part removed from the catalog since the order was placed;
			// nothing to restore.
			continue
		}
		if err != nil {
			return err
		}
		part.StockCount += item.Quantity
		if err := tx.Save(&part).Error; err != nil {
			return err
		}
	}

	if order.CarOrder != nil {
		if err := tx.Model(&models.Car{}).
			Where("id = ?", order.CarOrder.CarID).
			Update("is_visible", true).Error; err != nil {
			return err
		}
	}
	return nil
}
