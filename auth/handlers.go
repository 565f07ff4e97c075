package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/models"
)

// POST /api/v1/auth/verification/request
// Issues a code for a registered, still-unverified account. Delivery
// is out of band; the code is only written to the server log.
func RequestCodeHandler(db *gorm.DB, store *VerificationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		err := db.Where("email = ?", req.Email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same response as success so emails cannot be enumerated.
			c.JSON(http.StatusOK, gin.H{"status": "sent"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		if user.EmailVerified {
			c.JSON(http.StatusOK, gin.H{"status": "already_verified"})
			return
		}

		code := store.Issue(user.Email)
		zap.S().Infow("verification code issued", "user_id", user.ID, "code", code)
		c.JSON(http.StatusOK, gin.H{"status": "sent"})
	}
}

// POST /api/v1/auth/verification/confirm
func ConfirmCodeHandler(db *gorm.DB, store *VerificationStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
			Code  string `json:"code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !store.Consume(req.Email, req.Code) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired code"})
			return
		}

		err := db.Model(&models.User{}).Where("email = ?", req.Email).
			Updates(map[string]interface{}{
				"email_verified": true,
				"status":         models.UserActive,
			}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "verified"})
	}
}
