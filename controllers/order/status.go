package orderControllers

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	"github.com/AgentGrom/autoshop/models"
)

// CanTransition reports whether the status change is legal. Forward
// progress only (processing -> shipped -> delivered); cancellation is
// allowed until the goods are delivered; terminal states accept
// nothing.
func CanTransition(from, to models.OrderStatus) bool {
	switch from {
	case models.OrderStatusProcessing:
		return to == models.OrderStatusShipped || to == models.OrderStatusCancelled
	case models.OrderStatusShipped:
		return to == models.OrderStatusDelivered || to == models.OrderStatusCancelled
	default:
		return false
	}
}

// IsTerminal reports whether no further status change is possible.
func IsTerminal(s models.OrderStatus) bool {
	return s == models.OrderStatusDelivered || s == models.OrderStatusCancelled
}

// TransitionStatus moves an order to a new status. The order row is
// locked for the duration so concurrent transitions serialize; the
// transition into Cancelled releases the order's inventory in the same
// transaction, so an order can never end up cancelled with its stock
// still held.
func TransitionStatus(db *gorm.DB, orderID uint, to models.OrderStatus) (*models.Order, error) {
	switch to {
	case models.OrderStatusProcessing, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		return nil, apperrors.Validation("unknown order status %q", to)
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Preload("Items").Preload("CarOrder").
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order %d not found", orderID)
			}
			return err
		}
		if !CanTransition(order.Status, to) {
			return apperrors.InvalidTransition(
				"order %d cannot go from %s to %s", orderID, order.Status, to)
		}

		if to == models.OrderStatusCancelled {
			if err := releaseFromOrder(tx, &order); err != nil {
				return err
			}
		}

		from := order.Status
		order.Status = to
		order.StatusUpdated = time.Now()
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"status":         to,
				"status_updated": order.StatusUpdated,
			}).Error; err != nil {
			return err
		}

		zap.S().Infow("order status changed",
			"order_id", orderID, "reference", order.Reference,
			"from", from, "to", to)
		return nil
	})
	if err != nil {
		return nil, err
	}

	broadcastStatusChange(&order)
	return &order, nil
}

// CancelOrder cancels on behalf of the owning user. Foreign orders
// read as not found so order ids cannot be probed.
func CancelOrder(db *gorm.DB, orderID, userID uint) (*models.Order, error) {
	var order models.Order
	if err := db.Select("id", "user_id").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order %d not found", orderID)
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("order %d not found", orderID)
	}
	return TransitionStatus(db, orderID, models.OrderStatusCancelled)
}

// SetPaid flips the payment flag. Payment state is orthogonal to the
// status machine but frozen once the order reaches a terminal state.
func SetPaid(db *gorm.DB, orderID uint, paid bool) (*models.Order, error) {
	order, err := loadOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if IsTerminal(order.Status) {
		return nil, apperrors.InvalidOperation(
			"order %d is %s and can no longer change", orderID, order.Status)
	}
	if paid && order.IsPaid {
		return nil, apperrors.AlreadyPaid("order %d is already paid", orderID)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("is_paid", paid).Error; err != nil {
		return nil, err
	}
	order.IsPaid = paid
	return order, nil
}

// UpdateAdminNotes replaces the staff notes on a non-terminal order.
func UpdateAdminNotes(db *gorm.DB, orderID uint, notes string) (*models.Order, error) {
	order, err := loadOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if IsTerminal(order.Status) {
		return nil, apperrors.InvalidOperation(
			"order %d is %s and can no longer change", orderID, order.Status)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("admin_notes", notes).Error; err != nil {
		return nil, err
	}
	order.AdminNotes = notes
	return order, nil
}

// statusPriorityExpr mirrors models.StatusPriority in SQL so the
// management listing sorts in the database.
const statusPriorityExpr = `CASE status
	WHEN 'shipped' THEN 0
	WHEN 'processing' THEN 1
	WHEN 'delivered' THEN 2
	WHEN 'cancelled' THEN 3
	ELSE 4 END`

// ListOrders returns all orders for the management view: actionable
// statuses first, newest first within a status.
func ListOrders(db *gorm.DB, offset, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	var orders []models.Order
	err := db.Preload("User").Preload("Items.Part").Preload("CarOrder.Car.Trim").
		Order(statusPriorityExpr + ", order_date DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

// ListUserOrders returns the account's own orders, newest first.
func ListUserOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("user_id = ?", userID).
		Preload("Items.Part").Preload("CarOrder.Car.Trim").
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}
