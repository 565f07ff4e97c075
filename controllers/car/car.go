package carcontroller

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	"github.com/AgentGrom/autoshop/models"
)

type CreateCarRequest struct {
	TrimID         uint             `json:"trim_id" binding:"required"`
	VIN            string           `json:"vin" binding:"required"`
	ProductionYear int              `json:"production_year" binding:"required"`
	Condition      models.Condition `json:"condition" binding:"required"`
	Mileage        int              `json:"mileage"`
	Color          string           `json:"color"`
	Price          *decimal.Decimal `json:"price"`
}

type UpdateCarRequest struct {
	TrimID         *uint             `json:"trim_id"`
	ProductionYear *int              `json:"production_year"`
	Condition      *models.Condition `json:"condition"`
	Mileage        *int              `json:"mileage"`
	Color          *string           `json:"color"`
	Price          *decimal.Decimal  `json:"price"`
	IsVisible      *bool             `json:"is_visible"`
}

type TrimRequest struct {
	TrimName  string `json:"trim_name"`
	BrandName string `json:"brand_name" binding:"required"`
	ModelName string `json:"model_name"`

	EngineVolume *float64 `json:"engine_volume"`
	EnginePower  *int     `json:"engine_power"`
	EngineTorque *int     `json:"engine_torque"`

	FuelType     models.FuelType     `json:"fuel_type"`
	Transmission models.Transmission `json:"transmission"`
	DriveType    models.DriveType    `json:"drive_type"`
	BodyType     models.BodyType     `json:"body_type"`

	Doors *int `json:"doors"`
	Seats *int `json:"seats"`
}

func GetCar(db *gorm.DB, id uint) (*models.Car, error) {
	var car models.Car
	err := db.
		Preload("Trim").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		First(&car, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("car %d not found", id)
		}
		return nil, err
	}
	return &car, nil
}

// CreateCar validates the trim reference and VIN (17 characters from
// the VIN alphabet, globally unique).
func CreateCar(db *gorm.DB, req CreateCarRequest) (*models.Car, error) {
	if !models.IsValidVIN(req.VIN) {
		return nil, apperrors.Validation("VIN must be exactly 17 characters from the VIN alphabet")
	}
	if !req.Condition.IsValid() {
		return nil, apperrors.Validation("condition must be %q or %q", models.ConditionNew, models.ConditionUsed)
	}
	if req.Mileage < 0 {
		return nil, apperrors.Validation("mileage must not be negative")
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, apperrors.Validation("price must not be negative")
	}

	var trim models.CarTrim
	if err := db.First(&trim, req.TrimID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("trim %d not found", req.TrimID)
		}
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Car{}).Where("vin = ?", req.VIN).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.Validation("car with VIN %s already exists", req.VIN)
	}

	car := models.Car{
		TrimID:         req.TrimID,
		VIN:            req.VIN,
		ProductionYear: req.ProductionYear,
		Condition:      req.Condition,
		Mileage:        req.Mileage,
		Color:          req.Color,
		Price:          req.Price,
		IsVisible:      true,
	}
	if err := db.Create(&car).Error; err != nil {
		return nil, err
	}
	return GetCar(db, car.ID)
}

func UpdateCar(db *gorm.DB, id uint, req UpdateCarRequest) (*models.Car, error) {
	var car models.Car
	if err := db.First(&car, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("car %d not found", id)
		}
		return nil, err
	}

	if req.TrimID != nil {
		var trim models.CarTrim
		if err := db.First(&trim, *req.TrimID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("trim %d not found", *req.TrimID)
			}
			return nil, err
		}
		car.TrimID = *req.TrimID
	}
	if req.ProductionYear != nil {
		car.ProductionYear = *req.ProductionYear
	}
	if req.Condition != nil {
		if !req.Condition.IsValid() {
			return nil, apperrors.Validation("condition must be %q or %q", models.ConditionNew, models.ConditionUsed)
		}
		car.Condition = *req.Condition
	}
	if req.Mileage != nil {
		if *req.Mileage < 0 {
			return nil, apperrors.Validation("mileage must not be negative")
		}
		car.Mileage = *req.Mileage
	}
	if req.Color != nil {
		car.Color = *req.Color
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperrors.Validation("price must not be negative")
		}
		car.Price = req.Price
	}
	if req.IsVisible != nil {
		car.IsVisible = *req.IsVisible
	}

	if err := db.Save(&car).Error; err != nil {
		return nil, err
	}
	return GetCar(db, id)
}

func DeleteCar(db *gorm.DB, id uint) error {
	var car models.Car
	if err := db.First(&car, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("car %d not found", id)
		}
		return err
	}

	// A car referenced by an active order cannot be removed.
	var active int64
	if err := db.Model(&models.CarOrder{}).
		Joins("JOIN orders ON orders.id = car_orders.order_id").
		Where("car_orders.car_id = ? AND orders.status <> ?", id, models.OrderStatusCancelled).
		Count(&active).Error; err != nil {
		return err
	}
	if active > 0 {
		return apperrors.InvalidOperation("car %d is referenced by an active order", id)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("car_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&car).Error
	})
}

func CreateTrim(db *gorm.DB, req TrimRequest) (*models.CarTrim, error) {
	trim := models.CarTrim{
		TrimName:     req.TrimName,
		BrandName:    req.BrandName,
		ModelName:    req.ModelName,
		EngineVolume: req.EngineVolume,
		EnginePower:  req.EnginePower,
		EngineTorque: req.EngineTorque,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		DriveType:    req.DriveType,
		BodyType:     req.BodyType,
		Doors:        req.Doors,
		Seats:        req.Seats,
	}
	if err := db.Create(&trim).Error; err != nil {
		return nil, err
	}
	return &trim, nil
}
