package pickupcontroller

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/apperrors"
	"github.com/AgentGrom/autoshop/models"
)

type PickupPointRequest struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country" binding:"required"`
	Region  string `json:"region"`
	City    string `json:"city" binding:"required"`
	Street  string `json:"street" binding:"required"`
	House   string `json:"house" binding:"required"`
	Phone   string `json:"phone"`
}

// ListPickupPoints returns points customers can choose at checkout.
// Staff views pass includeInactive to see retired points too.
func ListPickupPoints(db *gorm.DB, includeInactive bool) ([]models.PickupPoint, error) {
	var points []models.PickupPoint
	q := db.Order("city, name")
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func CreatePickupPoint(db *gorm.DB, req PickupPointRequest) (*models.PickupPoint, error) {
	point := models.PickupPoint{
		Name:     req.Name,
		Country:  req.Country,
		Region:   req.Region,
		City:     req.City,
		Street:   req.Street,
		House:    req.House,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := db.Create(&point).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

func UpdatePickupPoint(db *gorm.DB, id uint, req PickupPointRequest) (*models.PickupPoint, error) {
	var point models.PickupPoint
	if err := db.First(&point, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("pickup point %d not found", id)
		}
		return nil, err
	}
	point.Name = req.Name
	point.Country = req.Country
	point.Region = req.Region
	point.City = req.City
	point.Street = req.Street
	point.House = req.House
	point.Phone = req.Phone
	if err := db.Save(&point).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

// SetPickupPointActive retires or reinstates a point. Orders already
// referencing it keep their link; only new checkout choices change.
func SetPickupPointActive(db *gorm.DB, id uint, active bool) (*models.PickupPoint, error) {
	var point models.PickupPoint
	if err := db.First(&point, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("pickup point %d not found", id)
		}
		return nil, err
	}
	point.IsActive = active
	if err := db.Save(&point).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

// DeletePickupPoint removes a point outright; refused while any order
// still references it, to keep order history resolvable.
func DeletePickupPoint(db *gorm.DB, id uint) error {
	var referenced int64
	if err := db.Model(&models.Order{}).
		Where("pickup_point_id = ?", id).Count(&referenced).Error; err != nil {
		return err
	}
	if referenced > 0 {
		return apperrors.InvalidOperation(
			"pickup point %d has order history; deactivate it instead", id)
	}
	res := db.Delete(&models.PickupPoint{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("pickup point %d not found", id)
	}
	return nil
}
