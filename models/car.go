package models

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
	FuelGas      FuelType = "gas"
)

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
	TransmissionRobot     Transmission = "robot"
	TransmissionCVT       Transmission = "cvt"
)

type DriveType string

const (
	DriveFWD    DriveType = "fwd"
	DriveRWD    DriveType = "rwd"
	DriveAWD    DriveType = "awd"
	DriveFourWD DriveType = "4wd"
)

type BodyType string

const (
	BodySedan     BodyType = "sedan"
	BodyHatchback BodyType = "hatchback"
	BodyWagon     BodyType = "wagon"
	BodyCoupe     BodyType = "coupe"
	BodySUV       BodyType = "suv"
	BodyMinivan   BodyType = "minivan"
	BodyPickup    BodyType = "pickup"
	BodyVan       BodyType = "van"
)

// VIN alphabet excludes I, O and Q.
var vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

func IsValidVIN(vin string) bool {
	return vinPattern.MatchString(vin)
}

func (c Condition) IsValid() bool {
	return c == ConditionNew || c == ConditionUsed
}

// Car is a single physical unit for sale. A car with a nil price or
// is_visible=false can be browsed by staff but never ordered.
type Car struct {
	ID             uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	TrimID         uint             `gorm:"index;not null" json:"trim_id"`
	VIN            string           `gorm:"size:17;uniqueIndex;not null" json:"vin"`
	ProductionYear int              `gorm:"not null" json:"production_year"`
	Condition      Condition        `gorm:"size:20;not null" json:"condition"`
	Mileage        int              `gorm:"not null;default:0" json:"mileage"`
	Color          string           `gorm:"size:30" json:"color"`
	Price          *decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	IsVisible      bool             `gorm:"not null;default:true" json:"is_visible"`

	Trim   CarTrim `gorm:"foreignKey:TrimID" json:"trim"`
	Images []Image `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE" json:"images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CarTrim is a normalized attribute bundle shared by several physical cars.
type CarTrim struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TrimName  string `gorm:"size:100" json:"trim_name"`
	BrandName string `gorm:"size:50;not null" json:"brand_name"`
	ModelName string `gorm:"size:100" json:"model_name"`

	EngineVolume *float64 `json:"engine_volume"` // litres
	EnginePower  *int     `json:"engine_power"`  // hp
	EngineTorque *int     `json:"engine_torque"` // Nm

	FuelType     FuelType     `gorm:"size:20" json:"fuel_type"`
	Transmission Transmission `gorm:"size:20" json:"transmission"`
	DriveType    DriveType    `gorm:"size:20" json:"drive_type"`
	BodyType     BodyType     `gorm:"size:20" json:"body_type"`

	Doors *int `json:"doors"`
	Seats *int `json:"seats"`

	Cars []Car `gorm:"foreignKey:TrimID" json:"-"`
}
