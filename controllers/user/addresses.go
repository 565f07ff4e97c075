package userControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/middleware"
	"github.com/AgentGrom/autoshop/models"
)

type AddressInput struct {
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country" binding:"required"`
	Region         string `json:"region"`
	City           string `json:"city" binding:"required"`
	Street         string `json:"street" binding:"required"`
	House          string `json:"house" binding:"required"`
	Apartment      string `json:"apartment"`
	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`
	IsDefault      bool   `json:"is_default"`
}

// GET /api/v1/users/me/addresses
func ListAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		var addresses []models.UserAddress
		if err := db.Where("user_id = ? AND is_active = ?", userID, true).
			Order("is_default desc, id").
			Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch addresses"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"addresses": addresses})
	}
}

// POST /api/v1/users/me/addresses
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		addr := models.UserAddress{
			UserID:         userID,
			PostalCode:     input.PostalCode,
			Country:        input.Country,
			Region:         input.Region,
			City:           input.City,
			Street:         input.Street,
			House:          input.House,
			Apartment:      input.Apartment,
			RecipientName:  input.RecipientName,
			RecipientPhone: input.RecipientPhone,
			IsDefault:      input.IsDefault,
			IsActive:       true,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault {
				if err := tx.Model(&models.UserAddress{}).
					Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&addr).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create address"})
			return
		}
		c.JSON(http.StatusCreated, addr)
	}
}

// DELETE /api/v1/users/me/addresses/:id
// Orders may still reference the row, so it is deactivated rather than
// removed.
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
			return
		}

		res := db.Model(&models.UserAddress{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]interface{}{"is_active": false, "is_default": false})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete address"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "address removed"})
	}
}
