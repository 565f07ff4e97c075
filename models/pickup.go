package models

// PickupPoint is a staffed location where car and part orders can be
// collected. Inactive points reject new orders.
type PickupPoint struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	Country string `gorm:"size:50;not null" json:"country"`
	Region  string `gorm:"size:50" json:"region"`
	City    string `gorm:"size:50;not null" json:"city"`
	Street  string `gorm:"size:100;not null" json:"street"`
	House   string `gorm:"size:10;not null" json:"house"`

	Phone    string `gorm:"size:20" json:"phone"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}
