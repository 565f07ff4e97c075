package orderControllers

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	cartControllers "github.com/AgentGrom/autoshop/controllers/cart"
	settingscontroller "github.com/AgentGrom/autoshop/controllers/settings"
	"github.com/AgentGrom/autoshop/models"
)

const (
	DeliveryHome   = "home"
	DeliveryPickup = "pickup"
)

type AddressInput struct {
	PostalCode string `json:"postal_code"`
	Country    string `json:"country" binding:"required"`
	Region     string `json:"region"`
	City       string `json:"city" binding:"required"`
	Street     string `json:"street" binding:"required"`
	House      string `json:"house" binding:"required"`
	Apartment  string `json:"apartment"`
}

type PlacePartOrderRequest struct {
	DeliveryMethod    string        `json:"delivery_method" binding:"required,oneof=home pickup"`
	ShippingAddressID *uint         `json:"shipping_address_id"`
	Address           *AddressInput `json:"address"`
	SaveAddress       bool          `json:"save_address"`
	PickupPointID     *uint         `json:"pickup_point_id"`
	PaymentMethod     string        `json:"payment_method" binding:"required"`
	CustomerNotes     string        `json:"customer_notes"`
}

type PlaceCarOrderRequest struct {
	CarID         uint   `json:"car_id" binding:"required"`
	PickupPointID uint   `json:"pickup_point_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	CustomerNotes string `json:"customer_notes"`
}

// generateOrderRef builds the human-facing order reference shown in
// confirmations and the account page.
func generateOrderRef() string {
	return time.Now().Format("20060102") + "-" + uuid.NewString()[:8]
}

func requireActiveUser(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user %d not found", userID)
		}
		return nil, err
	}
	if user.Status != models.UserActive {
		return nil, apperrors.InvalidOperation("account is not activated")
	}
	return &user, nil
}

func requireActivePickupPoint(db *gorm.DB, id uint) (*models.PickupPoint, error) {
	var point models.PickupPoint
	if err := db.First(&point, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("pickup point %d not found", id)
		}
		return nil, err
	}
	if !point.IsActive {
		return nil, apperrors.Unavailable("pickup point %q is not accepting orders", point.Name)
	}
	return &point, nil
}

// resolveShippingAddress returns the address id for a home delivery:
// either a verified saved address of the user, or a new row created
// from the inline payload.
func resolveShippingAddress(tx *gorm.DB, userID uint, req *PlacePartOrderRequest) (uint, error) {
	if req.ShippingAddressID != nil {
		var addr models.UserAddress
		err := tx.Where("id = ? AND user_id = ?", *req.ShippingAddressID, userID).
			First(&addr).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.NotFound("shipping address %d not found", *req.ShippingAddressID)
		}
		if err != nil {
			return 0, err
		}
		if !addr.IsActive {
			return 0, apperrors.Unavailable("shipping address %d is no longer active", addr.ID)
		}
		return addr.ID, nil
	}

	if req.Address == nil {
		return 0, apperrors.Validation("home delivery requires a shipping address")
	}
	addr := models.UserAddress{
		UserID:     userID,
		PostalCode: req.Address.PostalCode,
		Country:    req.Address.Country,
		Region:     req.Address.Region,
		City:       req.Address.City,
		Street:     req.Address.Street,
		House:      req.Address.House,
		Apartment:  req.Address.Apartment,
		IsActive:   req.SaveAddress,
	}
	if err := tx.Create(&addr).Error; err != nil {
		return 0, err
	}
	return addr.ID, nil
}

// PlacePartOrder converts the user's cart into an order. Stock for
// every line is reserved inside one transaction; a single short line
// fails the whole order and leaves stock untouched.
func PlacePartOrder(db *gorm.DB, userID uint, req PlacePartOrderRequest) (*models.Order, error) {
	if _, err := requireActiveUser(db, userID); err != nil {
		return nil, err
	}
	if !models.PaymentMethod(req.PaymentMethod).IsValid() {
		return nil, apperrors.Validation("unknown payment method %q", req.PaymentMethod)
	}
	switch req.DeliveryMethod {
	case DeliveryHome:
		if req.PickupPointID != nil {
			return nil, apperrors.Validation("home delivery cannot name a pickup point")
		}
	case DeliveryPickup:
		if req.PickupPointID == nil {
			return nil, apperrors.Validation("pickup delivery requires a pickup point")
		}
		if req.ShippingAddressID != nil || req.Address != nil {
			return nil, apperrors.Validation("pickup delivery cannot name a shipping address")
		}
	default:
		return nil, apperrors.Validation("unknown delivery method %q", req.DeliveryMethod)
	}

	items, err := cartControllers.GetCartItems(db, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.Validation("cart is empty")
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			UserID:        userID,
			PaymentMethod: models.PaymentMethod(req.PaymentMethod),
			Status:        models.OrderStatusProcessing,
			Reference:     generateOrderRef(),
			OrderDate:     time.Now(),
			StatusUpdated: time.Now(),
			CustomerNotes: req.CustomerNotes,
		}

		switch req.DeliveryMethod {
		case DeliveryHome:
			addrID, err := resolveShippingAddress(tx, userID, &req)
			if err != nil {
				return err
			}
			order.ShippingAddressID = &addrID
			order.ShippingCost, err = settingscontroller.GetDecimal(
				tx, settingscontroller.KeyPartDeliveryCost, decimal.NewFromInt(500))
			if err != nil {
				return err
			}
		case DeliveryPickup:
			point, err := requireActivePickupPoint(tx, *req.PickupPointID)
			if err != nil {
				return err
			}
			order.PickupPointID = &point.ID
			order.ShippingCost = decimal.Zero
		}
		var err error
		order.ServiceFee, err = settingscontroller.GetDecimal(
			tx, settingscontroller.KeyPartServiceFee, decimal.NewFromInt(500))
		if err != nil {
			return err
		}

		for _, item := range items {
			part, err := reservePart(tx, item.PartID, item.Quantity)
			if err != nil {
				return err
			}
			order.Items = append(order.Items, models.OrderItem{
				PartID:    part.ID,
				Quantity:  item.Quantity,
				UnitPrice: part.Price,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return cartControllers.ClearCart(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	zap.S().Infow("part order placed",
		"order_id", order.ID, "reference", order.Reference,
		"user_id", userID, "items", len(order.Items))
	broadcastNewOrder(&order)
	return &order, nil
}

// PlaceCarOrder reserves a single car: the order row, the car_orders
// link and the visibility flip commit together, so at most one active
// order can ever hold the car.
func PlaceCarOrder(db *gorm.DB, userID uint, req PlaceCarOrderRequest) (*models.Order, error) {
	if _, err := requireActiveUser(db, userID); err != nil {
		return nil, err
	}
	if !models.PaymentMethod(req.PaymentMethod).IsValid() {
		return nil, apperrors.Validation("unknown payment method %q", req.PaymentMethod)
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		point, err := requireActivePickupPoint(tx, req.PickupPointID)
		if err != nil {
			return err
		}
		car, err := reserveCar(tx, req.CarID)
		if err != nil {
			return err
		}

		serviceFee, err := settingscontroller.GetDecimal(
			tx, settingscontroller.KeyCarServiceFee, decimal.NewFromInt(5000))
		if err != nil {
			return err
		}
		shippingCost, err := settingscontroller.GetDecimal(
			tx, settingscontroller.KeyCarDeliveryCost, decimal.Zero)
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:        userID,
			PickupPointID: &point.ID,
			PaymentMethod: models.PaymentMethod(req.PaymentMethod),
			Status:        models.OrderStatusProcessing,
			Reference:     generateOrderRef(),
			OrderDate:     time.Now(),
			StatusUpdated: time.Now(),
			ServiceFee:    serviceFee,
			ShippingCost:  shippingCost,
			CustomerNotes: req.CustomerNotes,
			CarOrder: &models.CarOrder{
				CarID:    car.ID,
				CarPrice: *car.Price,
			},
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	zap.S().Infow("car order placed",
		"order_id", order.ID, "reference", order.Reference,
		"user_id", userID, "car_id", req.CarID)
	broadcastNewOrder(&order)
	return &order, nil
}

// OrderTotal sums the order: part lines at their snapshot prices, the
// car at its snapshot price, plus fees, minus discount.
func OrderTotal(order *models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, item := range order.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if order.CarOrder != nil {
		total = total.Add(order.CarOrder.CarPrice)
	}
	return total.Add(order.ShippingCost).Add(order.ServiceFee).Sub(order.Discount)
}

func loadOrder(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items.Part").Preload("CarOrder.Car.Trim").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("order %d not found", orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder returns one order. When requesterID is non-nil the order
// must belong to that user; foreign orders read as not found.
func GetOrder(db *gorm.DB, orderID uint, requesterID *uint) (*models.Order, error) {
	order, err := loadOrder(db, orderID)
	if err != nil {
		return nil, err
	}
	if requesterID != nil && order.UserID != *requesterID {
		return nil, apperrors.NotFound("order %d not found", orderID)
	}
	return order, nil
}
