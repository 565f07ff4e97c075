package models

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleManager  UserRole = "manager"
	RoleAdmin    UserRole = "admin"
)

type UserStatus string

const (
	UserActive              UserStatus = "active"
	UserSuspended           UserStatus = "suspended"
	UserPendingVerification UserStatus = "pending_verification"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	FirstName    string `gorm:"size:50" json:"first_name"`
	LastName     string `gorm:"size:50" json:"last_name"`
	Phone        string `gorm:"size:20" json:"phone"`

	Role   UserRole   `gorm:"size:20;default:'customer'" json:"role"`
	Status UserStatus `gorm:"size:30;default:'pending_verification'" json:"status"`

	EmailVerified bool      `gorm:"default:false" json:"email_verified"`
	RegisteredAt  time.Time `json:"registered_at"`

	Addresses []UserAddress `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	Orders    []Order       `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	Cart      *Cart         `gorm:"foreignKey:UserID" json:"cart,omitempty"`
}

type UserAddress struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	PostalCode string `gorm:"size:20" json:"postal_code"`
	Country    string `gorm:"size:50;not null" json:"country"`
	Region     string `gorm:"size:50" json:"region"`
	City       string `gorm:"size:50;not null" json:"city"`
	Street     string `gorm:"size:100;not null" json:"street"`
	House      string `gorm:"size:10;not null" json:"house"`
	Apartment  string `gorm:"size:10" json:"apartment"`

	RecipientName  string `gorm:"size:100" json:"recipient_name"`
	RecipientPhone string `gorm:"size:20" json:"recipient_phone"`

	IsDefault bool `gorm:"default:false" json:"is_default"`
	IsActive  bool `gorm:"default:true" json:"is_active"`
}
