package cartControllers

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	"github.com/AgentGrom/autoshop/models"
)

type CartItemInput struct {
	PartID   uint `json:"part_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// ensureCart returns the user's cart, creating it on first use.
func ensureCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cart = models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func GetCartItems(db *gorm.DB, userID uint) ([]models.CartItem, error) {
	cart, err := ensureCart(db, userID)
	if err != nil {
		return nil, err
	}
	var items []models.CartItem
	err = db.Where("cart_id = ?", cart.ID).
		Preload("Part").
		Preload("Part.Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Find(&items).Error
	return items, err
}

// UpsertItem sets the quantity of a part in the cart, creating the line
// on first add. The stock check here is advisory only: order placement
// is the authoritative gate.
func UpsertItem(db *gorm.DB, userID uint, input CartItemInput) (*models.CartItem, error) {
	var part models.Part
	if err := db.First(&part, input.PartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("part %d not found", input.PartID)
		}
		return nil, err
	}
	if part.StockCount < input.Quantity {
		return nil, apperrors.InsufficientStock(
			"only %d of part %q in stock", part.StockCount, part.Name)
	}

	cart, err := ensureCart(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND part_id = ?", cart.ID, input.PartID).First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			CartID:   cart.ID,
			PartID:   input.PartID,
			Quantity: input.Quantity,
			AddedAt:  time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		item.Quantity = input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
	}
	return &item, nil
}

// SyncCart replaces the whole cart with the client's snapshot.
func SyncCart(db *gorm.DB, userID uint, inputs []CartItemInput) ([]models.CartItem, error) {
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, apperrors.Validation("quantity must be positive")
		}
	}

	cart, err := ensureCart(db, userID)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for _, in := range inputs {
			var part models.Part
			if err := tx.First(&part, in.PartID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("part %d not found", in.PartID)
				}
				return err
			}
			item := models.CartItem{
				CartID:   cart.ID,
				PartID:   in.PartID,
				Quantity: in.Quantity,
				AddedAt:  time.Now(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetCartItems(db, userID)
}

func RemoveItem(db *gorm.DB, userID, partID uint) error {
	cart, err := ensureCart(db, userID)
	if err != nil {
		return err
	}
	result := db.Where("cart_id = ? AND part_id = ?", cart.ID, partID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("part %d is not in the cart", partID)
	}
	return nil
}

// ClearCart runs against the passed handle so order placement can clear
// inside its own transaction.
func ClearCart(db *gorm.DB, userID uint) error {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
}
