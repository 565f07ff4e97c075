package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing" // initial: placed, awaiting shipment
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered" // terminal
	OrderStatusCancelled  OrderStatus = "cancelled" // terminal
)

type PaymentMethod string

const (
	PaymentCard          PaymentMethod = "card" // online payment
	PaymentCardOnReceive PaymentMethod = "card_on_receive"
	PaymentCash          PaymentMethod = "cash"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCard, PaymentCardOnReceive, PaymentCash:
		return true
	}
	return false
}

// StatusPriority orders management views so orders needing action come
// first: shipped, processing, delivered, cancelled, anything else last.
func StatusPriority(s OrderStatus) int {
	switch s {
	case OrderStatusShipped:
		return 0
	case OrderStatusProcessing:
		return 1
	case OrderStatusDelivered:
		return 2
	case OrderStatusCancelled:
		return 3
	default:
		return 4
	}
}

// Order holds part line items and/or one car line; never neither.
// Line items are kept for history even after cancellation — only the
// status changes and the referenced inventory is restored.
type Order struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`

	// Delivery target: exactly one of the two is set.
	ShippingAddressID *uint        `json:"shipping_address_id"`
	ShippingAddress   *UserAddress `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`
	PickupPointID     *uint        `json:"pickup_point_id"`
	PickupPoint       *PickupPoint `gorm:"foreignKey:PickupPointID" json:"pickup_point,omitempty"`

	PaymentMethod PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	IsPaid        bool          `gorm:"not null;default:false" json:"is_paid"`
	Status        OrderStatus   `gorm:"size:20;not null;default:'processing'" json:"status"`

	Reference     string    `gorm:"size:60;uniqueIndex" json:"reference"`
	OrderDate     time.Time `json:"order_date"`
	StatusUpdated time.Time `json:"status_updated"`

	ShippingCost decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"shipping_cost"`
	ServiceFee   decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"service_fee"`
	Discount     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"discount"`

	CustomerNotes string `gorm:"type:text" json:"customer_notes"`
	AdminNotes    string `gorm:"type:text" json:"admin_notes"`

	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CarOrder *CarOrder   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"car_order,omitempty"`
}

// OrderItem is an immutable snapshot of ordered part intent.
type OrderItem struct {
	ID       uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  uint `gorm:"index;not null" json:"order_id"`
	PartID   uint `gorm:"index;not null" json:"part_id"`
	Part     Part `gorm:"foreignKey:PartID" json:"part"`
	Quantity int  `gorm:"not null;default:1" json:"quantity"`

	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"` // price at purchase
}

// CarOrder links an order to the single car it reserves, with the price
// frozen at purchase time. At most one active (non-cancelled) order may
// reference a given car.
type CarOrder struct {
	ID       uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID  uint            `gorm:"uniqueIndex;not null" json:"order_id"`
	CarID    uint            `gorm:"index;not null" json:"car_id"`
	Car      Car             `gorm:"foreignKey:CarID" json:"car"`
	CarPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"car_price"`
}
