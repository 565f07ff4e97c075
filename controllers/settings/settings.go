package settingscontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/models"
)

// Keys for the commerce knobs consumed by order placement.
const (
	KeyCarServiceFee    = "car_service_fee"
	KeyCarDeliveryCost  = "car_delivery_cost"
	KeyPartServiceFee   = "part_service_fee"
	KeyPartDeliveryCost = "part_delivery_cost"
)

func GetValue(db *gorm.DB, key, fallback string) (string, error) {
	var setting models.Setting
	err := db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	return setting.Value, nil
}

func GetFloat(db *gorm.DB, key string, fallback float64) (float64, error) {
	raw, err := GetValue(db, key, "")
	if err != nil {
		return fallback, err
	}
	if raw == "" {
		return fallback, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return fallback, nil
	}
	return v, nil
}

// GetDecimal reads a monetary knob; unparseable values fall back so a
// bad setting row never breaks order placement.
func GetDecimal(db *gorm.DB, key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw, err := GetValue(db, key, "")
	if err != nil {
		return fallback, err
	}
	if raw == "" {
		return fallback, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback, nil
	}
	return v, nil
}

func Set(db *gorm.DB, key, value, description string) (*models.Setting, error) {
	var setting models.Setting
	err := db.Where("key = ?", key).First(&setting).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.Setting{Key: key, Value: value, Description: description}
		if err := db.Create(&setting).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		setting.Value = value
		if description != "" {
			setting.Description = description
		}
		if err := db.Save(&setting).Error; err != nil {
			return nil, err
		}
	}
	return &setting, nil
}

type SetSettingRequest struct {
	Key         string `json:"key" binding:"required"`
	Value       string `json:"value" binding:"required"`
	Description string `json:"description"`
}

// PUT /api/v1/admin/settings
func SetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetSettingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		setting, err := Set(db, req.Key, req.Value, req.Description)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save setting"})
			return
		}
		c.JSON(http.StatusOK, setting)
	}
}

// GET /api/v1/admin/settings
func ListHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings []models.Setting
		if err := db.Order("key").Find(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
