package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	CartID   uint `gorm:"index;uniqueIndex:idx_cart_part" json:"cart_id"`
	PartID   uint `gorm:"uniqueIndex:idx_cart_part" json:"part_id"`
	Part     Part `gorm:"foreignKey:PartID" json:"part"`
	Quantity int  `gorm:"not null" json:"quantity"`

	AddedAt time.Time `json:"added_at"`
}
